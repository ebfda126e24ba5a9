package services

import (
	"context"
	"testing"

	"github.com/playleague/league-api/models"
	"github.com/playleague/league-api/repositories"
	"github.com/stretchr/testify/require"
)

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func newFakeTeamRepo(ids ...int) *fakeTeamRepo {
	repo := &fakeTeamRepo{teams: make(map[int]*models.Team)}
	for _, id := range ids {
		repo.teams[id] = &models.Team{ID: id, Name: "team", DateCreated: models.Today()}
	}
	return repo
}

func (f *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	team.ID = len(f.teams) + 1
	stored := *team
	f.teams[team.ID] = &stored
	return nil
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (f *fakeTeamRepo) GetAll(_ context.Context) ([]models.Team, error) {
	all := make([]models.Team, 0, len(f.teams))
	for _, team := range f.teams {
		all = append(all, *team)
	}
	return all, nil
}

func (f *fakeTeamRepo) Update(_ context.Context, team *models.Team) error {
	if _, ok := f.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	stored := *team
	f.teams[team.ID] = &stored
	return nil
}

func (f *fakeTeamRepo) UpdateRecord(_ context.Context, id, win, loss, draw int) error {
	team, ok := f.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.Win, team.Loss, team.Draw = win, loss, draw
	return nil
}

func (f *fakeTeamRepo) UpdateLogoKey(_ context.Context, id int, logoKey *string) error {
	team, ok := f.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.LogoKey = logoKey
	return nil
}

func (f *fakeTeamRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(f.teams, id)
	return nil
}

func seedUser(repo *fakeUserRepo, email string, captain bool, teamID int) *models.User {
	user := &models.User{
		First:        "First",
		Last:         "Last",
		Email:        email,
		PasswordHash: "hash",
		Captain:      captain,
		Available:    true,
		TeamID:       teamID,
		DateCreated:  models.Today(),
	}
	_ = repo.Create(context.Background(), user)
	return user
}

func TestUserService_ListFreeAgents_ExcludesCaptains(t *testing.T) {
	userRepo := newFakeUserRepo()
	teamRepo := newFakeTeamRepo(testPoolTeamID, 2)
	svc := NewUserService(userRepo, teamRepo, testPoolTeamID)

	seedUser(userRepo, "agent@x.com", false, testPoolTeamID)
	seedUser(userRepo, "captain-in-pool@x.com", true, testPoolTeamID)
	seedUser(userRepo, "assigned@x.com", false, 2)

	agents, err := svc.ListFreeAgents(context.Background())
	require.NoError(t, err)

	require.Len(t, agents, 1)
	require.Equal(t, "agent@x.com", agents[0].Email)
	for _, agent := range agents {
		require.False(t, agent.Captain)
		require.Equal(t, testPoolTeamID, agent.TeamID)
	}
}

func TestUserService_ListCaptains(t *testing.T) {
	userRepo := newFakeUserRepo()
	teamRepo := newFakeTeamRepo(testPoolTeamID)
	svc := NewUserService(userRepo, teamRepo, testPoolTeamID)

	seedUser(userRepo, "captain@x.com", true, 2)
	seedUser(userRepo, "player@x.com", false, 2)

	captains, err := svc.ListCaptains(context.Background())
	require.NoError(t, err)
	require.Len(t, captains, 1)
	require.Equal(t, "captain@x.com", captains[0].Email)
}

func TestUserService_AssignToTeam(t *testing.T) {
	userRepo := newFakeUserRepo()
	teamRepo := newFakeTeamRepo(testPoolTeamID, 2)
	svc := NewUserService(userRepo, teamRepo, testPoolTeamID)

	agent := seedUser(userRepo, "agent@x.com", false, testPoolTeamID)

	user, err := svc.AssignToTeam(context.Background(), agent.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, user.TeamID)
}

func TestUserService_AssignToTeam_NotFreeAgent(t *testing.T) {
	userRepo := newFakeUserRepo()
	teamRepo := newFakeTeamRepo(testPoolTeamID, 2, 3)
	svc := NewUserService(userRepo, teamRepo, testPoolTeamID)

	assigned := seedUser(userRepo, "assigned@x.com", false, 2)

	_, err := svc.AssignToTeam(context.Background(), assigned.ID, 3)
	require.ErrorIs(t, err, ErrUserNotFreeAgent)
}

func TestUserService_AssignToTeam_TeamMissing(t *testing.T) {
	userRepo := newFakeUserRepo()
	teamRepo := newFakeTeamRepo(testPoolTeamID)
	svc := NewUserService(userRepo, teamRepo, testPoolTeamID)

	agent := seedUser(userRepo, "agent@x.com", false, testPoolTeamID)

	_, err := svc.AssignToTeam(context.Background(), agent.ID, 42)
	require.ErrorIs(t, err, ErrTeamNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	userRepo := newFakeUserRepo()
	teamRepo := newFakeTeamRepo(testPoolTeamID)
	svc := NewUserService(userRepo, teamRepo, testPoolTeamID)

	user := seedUser(userRepo, "player@x.com", false, testPoolTeamID)

	available := false
	bio := "Looking forward to the season"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{
		Available: &available,
		Bio:       &bio,
	})
	require.NoError(t, err)
	require.False(t, updated.Available)
	require.Equal(t, bio, updated.Bio)
	// Не переданные поля не меняются.
	require.Equal(t, user.Email, updated.Email)
}

func TestUserService_GetProfile_IncludesTeam(t *testing.T) {
	userRepo := newFakeUserRepo()
	teamRepo := newFakeTeamRepo(testPoolTeamID, 2)
	svc := NewUserService(userRepo, teamRepo, testPoolTeamID)

	user := seedUser(userRepo, "player@x.com", false, 2)

	profile, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.Team)
	require.Equal(t, 2, profile.Team.ID)
}
