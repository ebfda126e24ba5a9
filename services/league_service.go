package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/playleague/league-api/models"
	"github.com/playleague/league-api/repositories"
)

type LeagueService interface {
	CreateLeague(ctx context.Context, input CreateLeagueInput) (*models.League, error)
	GetLeagueByID(ctx context.Context, id int) (*models.League, error)
	GetAllLeagues(ctx context.Context) ([]models.League, error)
	UpdateLeague(ctx context.Context, id int, input UpdateLeagueInput) (*models.League, error)
	DeleteLeague(ctx context.Context, id int) error
}

type CreateLeagueInput struct {
	Name      string       `json:"name"`
	StartDate *models.Date `json:"start_date"`
	EndDate   *models.Date `json:"end_date"`
	Sport     string       `json:"sport"`
}

// UpdateLeagueInput описывает частичное обновление: применяются только
// переданные поля. Вид спорта после создания лиги не меняется.
type UpdateLeagueInput struct {
	Name      *string      `json:"name"`
	StartDate *models.Date `json:"start_date"`
	EndDate   *models.Date `json:"end_date"`
}

type leagueService struct {
	leagueRepo repositories.LeagueRepository
}

func NewLeagueService(leagueRepo repositories.LeagueRepository) LeagueService {
	return &leagueService{
		leagueRepo: leagueRepo,
	}
}

func (s *leagueService) CreateLeague(ctx context.Context, input CreateLeagueInput) (*models.League, error) {
	name := strings.TrimSpace(input.Name)
	sport := strings.TrimSpace(input.Sport)

	if name == "" {
		return nil, ErrLeagueNameRequired
	}
	if sport == "" {
		return nil, ErrLeagueSportRequired
	}
	if input.StartDate == nil || input.EndDate == nil {
		return nil, ErrLeagueDatesRequired
	}
	if input.EndDate.Before(input.StartDate.Time) {
		return nil, ErrLeagueInvalidDateRange
	}

	league := &models.League{
		Name:      name,
		StartDate: *input.StartDate,
		EndDate:   *input.EndDate,
		Sport:     sport,
	}

	err := s.leagueRepo.Create(ctx, league)
	if err != nil {
		return nil, translateLeagueRepoError(err, "failed to create league")
	}

	return league, nil
}

func (s *leagueService) GetLeagueByID(ctx context.Context, id int) (*models.League, error) {
	league, err := s.leagueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrLeagueNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to get league by id %d: %w", id, err)
	}
	return league, nil
}

func (s *leagueService) GetAllLeagues(ctx context.Context) ([]models.League, error) {
	leagues, err := s.leagueRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all leagues: %w", err)
	}
	if leagues == nil {
		return []models.League{}, nil
	}
	return leagues, nil
}

// UpdateLeague сливает переданные поля с текущей записью: не указанные
// в запросе поля сохраняют прежние значения.
func (s *leagueService) UpdateLeague(ctx context.Context, id int, input UpdateLeagueInput) (*models.League, error) {
	league, err := s.leagueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrLeagueNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to get league by id %d: %w", id, err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrLeagueNameRequired
		}
		league.Name = name
	}
	if input.StartDate != nil {
		league.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		league.EndDate = *input.EndDate
	}
	if league.EndDate.Before(league.StartDate.Time) {
		return nil, ErrLeagueInvalidDateRange
	}

	err = s.leagueRepo.Update(ctx, league)
	if err != nil {
		if errors.Is(err, repositories.ErrLeagueNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, translateLeagueRepoError(err, fmt.Sprintf("failed to update league %d", id))
	}

	return league, nil
}

func (s *leagueService) DeleteLeague(ctx context.Context, id int) error {
	err := s.leagueRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrLeagueNotFound) {
			return ErrLeagueNotFound
		}
		return fmt.Errorf("failed to delete league %d: %w", id, err)
	}
	return nil
}

func translateLeagueRepoError(err error, context string) error {
	switch {
	case errors.Is(err, repositories.ErrLeagueNameConflict):
		return ErrLeagueNameConflict
	case errors.Is(err, repositories.ErrLeagueDataInvalid):
		return ErrLeagueDataInvalid
	default:
		return fmt.Errorf("%s: %w", context, err)
	}
}
