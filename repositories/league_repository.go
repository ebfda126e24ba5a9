package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/playleague/league-api/models"
)

var (
	ErrLeagueNotFound     = errors.New("league not found")
	ErrLeagueNameConflict = errors.New("league name conflict")
	ErrLeagueDataInvalid  = errors.New("league data rejected by storage")
)

type LeagueRepository interface {
	Create(ctx context.Context, league *models.League) error
	GetByID(ctx context.Context, id int) (*models.League, error)
	GetAll(ctx context.Context) ([]models.League, error)
	Update(ctx context.Context, league *models.League) error
	Delete(ctx context.Context, id int) error
}

type postgresLeagueRepository struct {
	db *sql.DB
}

func NewPostgresLeagueRepository(db *sql.DB) LeagueRepository {
	return &postgresLeagueRepository{db: db}
}

func (r *postgresLeagueRepository) Create(ctx context.Context, league *models.League) error {
	query := `
		INSERT INTO leagues (name, start_date, end_date, sport)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		league.Name,
		league.StartDate.Time,
		league.EndDate.Time,
		league.Sport,
	).Scan(&league.ID)

	if err != nil {
		return translateLeagueError(err)
	}
	return nil
}

func (r *postgresLeagueRepository) GetByID(ctx context.Context, id int) (*models.League, error) {
	query := `SELECT id, name, start_date, end_date, sport FROM leagues WHERE id = $1`

	var league models.League
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&league.ID,
		&league.Name,
		&league.StartDate,
		&league.EndDate,
		&league.Sport,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, err
	}
	return &league, nil
}

func (r *postgresLeagueRepository) GetAll(ctx context.Context) ([]models.League, error) {
	query := `SELECT id, name, start_date, end_date, sport FROM leagues ORDER BY sport ASC, name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leagues := make([]models.League, 0)
	for rows.Next() {
		var league models.League
		if scanErr := rows.Scan(&league.ID, &league.Name, &league.StartDate, &league.EndDate, &league.Sport); scanErr != nil {
			return nil, scanErr
		}
		leagues = append(leagues, league)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return leagues, nil
}

func (r *postgresLeagueRepository) Update(ctx context.Context, league *models.League) error {
	// sport намеренно не обновляется: вид спорта фиксируется при создании.
	query := `
		UPDATE leagues SET
			name = $1,
			start_date = $2,
			end_date = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		league.Name,
		league.StartDate.Time,
		league.EndDate.Time,
		league.ID,
	)
	if err != nil {
		return translateLeagueError(err)
	}

	return checkAffectedRows(result, ErrLeagueNotFound)
}

func (r *postgresLeagueRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM leagues WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return checkAffectedRows(result, ErrLeagueNotFound)
}

// translateLeagueError переводит ошибки postgres в доменные.
// Нарушение составного уникального ключа (name, sport) и ошибка данных
// (класс 22) различаются, чтобы клиент получил разные сообщения.
func translateLeagueError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23505" && pqErr.Constraint == "leagues_name_sport_key" {
			return ErrLeagueNameConflict
		}
		if isDataError(pqErr) {
			return ErrLeagueDataInvalid
		}
	}
	return err
}
