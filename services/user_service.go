package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/playleague/league-api/models"
	"github.com/playleague/league-api/repositories"
	"golang.org/x/sync/errgroup"
)

type UserService interface {
	ListCaptains(ctx context.Context) ([]models.User, error)
	ListFreeAgents(ctx context.Context) ([]models.User, error)
	GetProfile(ctx context.Context, id int) (*models.User, error)
	UpdateProfile(ctx context.Context, id int, input UpdateProfileInput) (*models.User, error)
	AssignToTeam(ctx context.Context, userID, teamID int) (*models.User, error)
}

// UpdateProfileInput — частичное обновление собственной анкеты.
// Игроки обновляют доступность каждую игровую неделю.
type UpdateProfileInput struct {
	Bio       *string `json:"bio"`
	Available *bool   `json:"available"`
	Phone     *int64  `json:"phone"`
}

type userService struct {
	userRepo        repositories.UserRepository
	teamRepo        repositories.TeamRepository
	freeAgentTeamID int
}

func NewUserService(userRepo repositories.UserRepository, teamRepo repositories.TeamRepository, freeAgentTeamID int) UserService {
	return &userService{
		userRepo:        userRepo,
		teamRepo:        teamRepo,
		freeAgentTeamID: freeAgentTeamID,
	}
}

func (s *userService) ListCaptains(ctx context.Context) ([]models.User, error) {
	captains, err := s.userRepo.ListCaptains(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list captains: %w", err)
	}
	return captains, nil
}

// ListFreeAgents возвращает не-капитанов из команды-пула.
// Семантика условий (AND, не OR) зафиксирована на уровне репозитория.
func (s *userService) ListFreeAgents(ctx context.Context) ([]models.User, error) {
	agents, err := s.userRepo.ListFreeAgents(ctx, s.freeAgentTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list free agents: %w", err)
	}
	return agents, nil
}

// GetProfile собирает профиль пользователя вместе с его командой двумя
// явными запросами, чтобы стоимость выборки связанных записей оставалась
// на виду.
func (s *userService) GetProfile(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id %d: %w", id, err)
	}

	team, err := s.teamRepo.GetByID(ctx, user.TeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			// Команда могла быть удалена; профиль без неё остаётся валидным.
			return user, nil
		}
		return nil, fmt.Errorf("failed to get team %d for user %d: %w", user.TeamID, id, err)
	}
	user.Team = team

	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id int, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id %d: %w", id, err)
	}

	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Available != nil {
		user.Available = *input.Available
	}
	if input.Phone != nil {
		if *input.Phone <= 0 {
			return nil, ValidationError{"phone": "phone must be a positive number"}
		}
		user.Phone = input.Phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}

	return user, nil
}

// AssignToTeam переводит свободного агента в команду. Пользователь и
// целевая команда проверяются параллельно перед записью.
func (s *userService) AssignToTeam(ctx context.Context, userID, teamID int) (*models.User, error) {
	var user *models.User

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.userRepo.GetByID(gctx, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to get user by id %d: %w", userID, err)
		}
		user = u
		return nil
	})
	g.Go(func() error {
		if _, err := s.teamRepo.GetByID(gctx, teamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("failed to get team by id %d: %w", teamID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if user.TeamID != s.freeAgentTeamID && user.TeamID != teamID {
		return nil, ErrUserNotFreeAgent
	}

	if err := s.userRepo.AssignTeam(ctx, userID, teamID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrUserTeamInvalid):
			return nil, ErrTeamNotFound
		default:
			return nil, fmt.Errorf("failed to assign user %d to team %d: %w", userID, teamID, err)
		}
	}

	user.TeamID = teamID
	return user, nil
}
