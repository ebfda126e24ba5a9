package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/playleague/league-api/models"
	"github.com/playleague/league-api/repositories"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
}

type RegisterInput struct {
	First     string       `json:"first"`
	Last      string       `json:"last"`
	Email     string       `json:"email"`
	Password  string       `json:"password"`
	DOB       *models.Date `json:"dob,omitempty"`
	Bio       string       `json:"bio,omitempty"`
	Available *bool        `json:"available,omitempty"`
	Phone     *int64       `json:"phone,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authService struct {
	userRepo        repositories.UserRepository
	freeAgentTeamID int
}

func NewAuthService(userRepo repositories.UserRepository, freeAgentTeamID int) AuthService {
	return &authService{
		userRepo:        userRepo,
		freeAgentTeamID: freeAgentTeamID,
	}
}

// Register создаёт пользователя. Регистрация всегда даёт обычного игрока:
// admin и captain назначаются отдельно, новый игрок попадает в пул
// свободных агентов.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := validateRegisterInput(&input); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}

	user := &models.User{
		Admin:        false,
		Captain:      false,
		DateCreated:  models.Today(),
		First:        strings.TrimSpace(input.First),
		Last:         strings.TrimSpace(input.Last),
		DOB:          input.DOB,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hashedPassword),
		Bio:          input.Bio,
		Available:    available,
		Phone:        input.Phone,
		TeamID:       s.freeAgentTeamID,
	}

	err = s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrUserEmailConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login проверяет учётные данные. Отсутствующий пользователь и неверный
// пароль дают одну и ту же ошибку, чтобы не раскрывать, какой email
// зарегистрирован.
func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	return user, nil
}

func validateRegisterInput(input *RegisterInput) error {
	violations := ValidationError{}

	if strings.TrimSpace(input.First) == "" {
		violations["first"] = "first name is required"
	}
	if strings.TrimSpace(input.Last) == "" {
		violations["last"] = "last name is required"
	}
	if msg, ok := validateEmail(strings.TrimSpace(input.Email)); !ok {
		violations["email"] = msg
	}
	if msg, ok := validatePassword(input.Password); !ok {
		violations["password"] = msg
	}
	if input.Phone != nil && *input.Phone <= 0 {
		violations["phone"] = "phone must be a positive number"
	}

	if len(violations) > 0 {
		return violations
	}
	return nil
}
