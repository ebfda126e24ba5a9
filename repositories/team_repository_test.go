package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/playleague/league-api/models"
	"github.com/stretchr/testify/require"
)

func newTeamRepoMock(t *testing.T) (TeamRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresTeamRepository(db), mock
}

func TestTeamRepository_Create_NameConflict(t *testing.T) {
	repo, mock := newTeamRepoMock(t)

	mock.ExpectQuery(`INSERT INTO teams`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "teams_name_key"})

	err := repo.Create(context.Background(), &models.Team{Name: "Rovers", DateCreated: models.Today()})
	require.ErrorIs(t, err, ErrTeamNameConflict)
}

func TestTeamRepository_GetByID(t *testing.T) {
	repo, mock := newTeamRepoMock(t)

	created := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, name, date_created, win, loss, draw, logo_key FROM teams`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "date_created", "win", "loss", "draw", "logo_key"}).
			AddRow(2, "Rovers", created, 3, 1, 2, nil))

	team, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, "Rovers", team.Name)
	require.Equal(t, 3, team.Win)
	require.Equal(t, 1, team.Loss)
	require.Equal(t, 2, team.Draw)
	require.Nil(t, team.LogoKey)
}

func TestTeamRepository_UpdateRecord(t *testing.T) {
	repo, mock := newTeamRepoMock(t)

	mock.ExpectExec(`UPDATE teams SET win`).
		WithArgs(4, 1, 2, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateRecord(context.Background(), 2, 4, 1, 2))

	mock.ExpectExec(`UPDATE teams SET win`).
		WithArgs(4, 1, 2, 99999).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.UpdateRecord(context.Background(), 99999, 4, 1, 2), ErrTeamNotFound)
}

func TestTeamRepository_Delete_Restricted(t *testing.T) {
	repo, mock := newTeamRepoMock(t)

	// Команду с участниками удалить нельзя: users_team_id_fkey.
	mock.ExpectExec(`DELETE FROM teams`).
		WithArgs(2).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "users_team_id_fkey"})

	require.ErrorIs(t, repo.Delete(context.Background(), 2), ErrTeamNotEmpty)
}
