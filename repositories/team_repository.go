package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/playleague/league-api/models"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name conflict")
	ErrTeamNotEmpty     = errors.New("team cannot be deleted as it still has members")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetAll(ctx context.Context) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateRecord(ctx context.Context, id, win, loss, draw int) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, date_created, win, loss, draw)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		team.Name,
		team.DateCreated.Time,
		team.Win,
		team.Loss,
		team.Draw,
	).Scan(&team.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "teams_name_key" {
				return ErrTeamNameConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, name, date_created, win, loss, draw, logo_key FROM teams WHERE id = $1`

	var team models.Team
	var logoKey sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.DateCreated,
		&team.Win,
		&team.Loss,
		&team.Draw,
		&logoKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if logoKey.Valid {
		team.LogoKey = &logoKey.String
	}
	return &team, nil
}

func (r *postgresTeamRepository) GetAll(ctx context.Context) ([]models.Team, error) {
	query := `SELECT id, name, date_created, win, loss, draw, logo_key FROM teams ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		var logoKey sql.NullString
		if scanErr := rows.Scan(&team.ID, &team.Name, &team.DateCreated, &team.Win, &team.Loss, &team.Draw, &logoKey); scanErr != nil {
			return nil, scanErr
		}
		if logoKey.Valid {
			team.LogoKey = &logoKey.String
		}
		teams = append(teams, team)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return teams, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `UPDATE teams SET name = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, team.Name, team.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "teams_name_key" {
				return ErrTeamNameConflict
			}
		}
		return err
	}

	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateRecord(ctx context.Context, id, win, loss, draw int) error {
	query := `UPDATE teams SET win = $1, loss = $2, draw = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, win, loss, draw, id)
	if err != nil {
		return err
	}

	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	query := `UPDATE teams SET logo_key = $1 WHERE id = $2`

	var key interface{}
	if logoKey != nil {
		key = *logoKey
	}

	result, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return err
	}

	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM teams WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		// Участники ссылаются на команду через users_team_id_fkey (ON DELETE RESTRICT).
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTeamNotEmpty
		}
		return err
	}

	return checkAffectedRows(result, ErrTeamNotFound)
}
