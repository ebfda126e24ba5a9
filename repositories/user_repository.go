package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/playleague/league-api/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserEmailConflict = errors.New("user email conflict")
	ErrUserTeamInvalid   = errors.New("user team conflict or invalid")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ListCaptains(ctx context.Context) ([]models.User, error)
	ListFreeAgents(ctx context.Context, poolTeamID int) ([]models.User, error)
	ListByTeamID(ctx context.Context, teamID int) ([]models.User, error)
	AssignTeam(ctx context.Context, userID, teamID int) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `id, admin, captain, date_created, first, last, dob, email, password_hash, bio, available, phone, team_id`

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (admin, captain, date_created, first, last, dob, email, password_hash, bio, available, phone, team_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	var dob interface{}
	if user.DOB != nil {
		dob = user.DOB.Time
	}
	var phone interface{}
	if user.Phone != nil {
		phone = *user.Phone
	}

	err := r.db.QueryRowContext(ctx, query,
		user.Admin,
		user.Captain,
		user.DateCreated.Time,
		user.First,
		user.Last,
		dob,
		user.Email,
		user.PasswordHash,
		user.Bio,
		user.Available,
		phone,
		user.TeamID,
	).Scan(&user.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "users_email_key" {
					return ErrUserEmailConflict
				}
			case "23503": // foreign_key_violation
				if pqErr.Constraint == "users_team_id_fkey" {
					return ErrUserTeamInvalid
				}
			}
		}
		return err
	}
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(ctx, query, id)
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(ctx, query, email)
}

func (r *postgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			admin = $1,
			captain = $2,
			first = $3,
			last = $4,
			dob = $5,
			email = $6,
			password_hash = $7,
			bio = $8,
			available = $9,
			phone = $10,
			team_id = $11
		WHERE id = $12`

	var dob interface{}
	if user.DOB != nil {
		dob = user.DOB.Time
	}
	var phone interface{}
	if user.Phone != nil {
		phone = *user.Phone
	}

	result, err := r.db.ExecContext(ctx, query,
		user.Admin,
		user.Captain,
		user.First,
		user.Last,
		dob,
		user.Email,
		user.PasswordHash,
		user.Bio,
		user.Available,
		phone,
		user.TeamID,
		user.ID,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "users_email_key" {
					return ErrUserEmailConflict
				}
			case "23503":
				if pqErr.Constraint == "users_team_id_fkey" {
					return ErrUserTeamInvalid
				}
			}
		}
		return err
	}

	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) ListCaptains(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE captain = true ORDER BY last ASC, first ASC`
	return r.listUsers(ctx, query)
}

// ListFreeAgents возвращает пользователей без команды.
// Свободный агент — это не-капитан, состоящий в команде-пуле (оба условия
// через AND). Капитан формально может оказаться в пуле, но в списке
// свободных агентов он не появится.
func (r *postgresUserRepository) ListFreeAgents(ctx context.Context, poolTeamID int) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE captain = false AND team_id = $1 ORDER BY last ASC, first ASC`
	return r.listUsers(ctx, query, poolTeamID)
}

func (r *postgresUserRepository) ListByTeamID(ctx context.Context, teamID int) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE team_id = $1 ORDER BY last ASC, first ASC`
	return r.listUsers(ctx, query, teamID)
}

func (r *postgresUserRepository) AssignTeam(ctx context.Context, userID, teamID int) error {
	query := `UPDATE users SET team_id = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, teamID, userID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			if pqErr.Constraint == "users_team_id_fkey" {
				return ErrUserTeamInvalid
			}
		}
		return err
	}

	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) listUsers(ctx context.Context, query string, args ...interface{}) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, scanErr := scanUserRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		users = append(users, *user)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *postgresUserRepository) scanUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, query, args...)
	user, err := scanUserRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUserRow(row rowScanner) (*models.User, error) {
	user := &models.User{}

	var dob sql.NullTime
	var phone sql.NullInt64
	var bio sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Admin,
		&user.Captain,
		&user.DateCreated,
		&user.First,
		&user.Last,
		&dob,
		&user.Email,
		&user.PasswordHash,
		&bio,
		&user.Available,
		&phone,
		&user.TeamID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	if dob.Valid {
		d := models.Date{Time: dob.Time}
		user.DOB = &d
	}
	if phone.Valid {
		p := phone.Int64
		user.Phone = &p
	}
	if bio.Valid {
		user.Bio = bio.String
	}

	return user, nil
}
