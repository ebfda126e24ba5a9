package services

import (
	"context"
	"testing"

	"github.com/playleague/league-api/models"
	"github.com/playleague/league-api/repositories"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPoolTeamID = 1

// fakeUserRepo хранит пользователей в памяти и имитирует поведение
// postgres-репозитория, включая конфликт уникальности email.
type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*models.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) ListCaptains(_ context.Context) ([]models.User, error) {
	captains := make([]models.User, 0)
	for _, user := range f.users {
		if user.Captain {
			captains = append(captains, *user)
		}
	}
	return captains, nil
}

func (f *fakeUserRepo) ListFreeAgents(_ context.Context, poolTeamID int) ([]models.User, error) {
	agents := make([]models.User, 0)
	for _, user := range f.users {
		if !user.Captain && user.TeamID == poolTeamID {
			agents = append(agents, *user)
		}
	}
	return agents, nil
}

func (f *fakeUserRepo) ListByTeamID(_ context.Context, teamID int) ([]models.User, error) {
	members := make([]models.User, 0)
	for _, user := range f.users {
		if user.TeamID == teamID {
			members = append(members, *user)
		}
	}
	return members, nil
}

func (f *fakeUserRepo) AssignTeam(_ context.Context, userID, teamID int) error {
	user, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.TeamID = teamID
	return nil
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		First:    "Jo",
		Last:     "Doe",
		Email:    "jo@x.com",
		Password: "Abc123!",
	}
}

func TestAuthService_Register(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testPoolTeamID)

	user, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	require.NotZero(t, user.ID)
	require.False(t, user.Admin)
	require.False(t, user.Captain)
	require.True(t, user.Available)
	require.Equal(t, testPoolTeamID, user.TeamID)

	// Пароль хранится только как bcrypt-хеш.
	require.NotEqual(t, "Abc123!", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Abc123!")))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testPoolTeamID)

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegisterInput())
	require.ErrorIs(t, err, ErrUserEmailConflict)
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testPoolTeamID)

	input := validRegisterInput()
	input.Email = "  Jo@X.Com "
	user, err := svc.Register(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, "jo@x.com", user.Email)
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testPoolTeamID)

	input := validRegisterInput()
	input.First = ""
	input.Password = "abc123!"

	_, err := svc.Register(context.Background(), input)

	var violations ValidationError
	require.ErrorAs(t, err, &violations)
	require.Equal(t, "first name is required", violations["first"])
	require.Equal(t, "password must contain at least one uppercase letter", violations["password"])
	require.Empty(t, repo.users, "no user should be persisted on validation failure")
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testPoolTeamID)

	registered, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), LoginInput{Email: "jo@x.com", Password: "Abc123!"})
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testPoolTeamID)

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{Email: "jo@x.com", Password: "Wrong123!"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testPoolTeamID)

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@x.com", Password: "Abc123!"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
