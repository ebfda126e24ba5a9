package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/playleague/league-api/models"
	"github.com/playleague/league-api/repositories"
	"github.com/playleague/league-api/storage"
	"golang.org/x/sync/errgroup"
)

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	GetAllTeams(ctx context.Context) ([]models.Team, error)
	GetRoster(ctx context.Context, id int) (*models.Team, error)
	UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	UpdateRecord(ctx context.Context, id int, input UpdateRecordInput) (*models.Team, error)
	UploadLogo(ctx context.Context, id int, file io.Reader, contentType string) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
}

type CreateTeamInput struct {
	Name string `json:"name"`
}

type UpdateTeamInput struct {
	Name string `json:"name"`
}

type UpdateRecordInput struct {
	Win  int `json:"win"`
	Loss int `json:"loss"`
	Draw int `json:"draw"`
}

type teamService struct {
	teamRepo repositories.TeamRepository
	userRepo repositories.UserRepository
	uploader storage.FileUploader // nil, если загрузка логотипов не настроена
}

func NewTeamService(teamRepo repositories.TeamRepository, userRepo repositories.UserRepository, uploader storage.FileUploader) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{
		Name:        name,
		DateCreated: models.Today(),
	}

	err := s.teamRepo.Create(ctx, team)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team by id %d: %w", id, err)
	}
	s.fillLogoURL(team)
	return team, nil
}

func (s *teamService) GetAllTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all teams: %w", err)
	}
	for i := range teams {
		s.fillLogoURL(&teams[i])
	}
	return teams, nil
}

// GetRoster собирает команду вместе с составом. Запись команды и список
// игроков выбираются двумя явными параллельными запросами.
func (s *teamService) GetRoster(ctx context.Context, id int) (*models.Team, error) {
	var (
		team  *models.Team
		users []models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.teamRepo.GetByID(gctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("failed to get team by id %d: %w", id, err)
		}
		team = t
		return nil
	})
	g.Go(func() error {
		u, err := s.userRepo.ListByTeamID(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to list team %d members: %w", id, err)
		}
		users = u
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	team.Users = users
	s.fillLogoURL(team)
	return team, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team by id %d: %w", id, err)
	}
	team.Name = name

	err = s.teamRepo.Update(ctx, team)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		default:
			return nil, fmt.Errorf("failed to update team %d: %w", id, err)
		}
	}

	s.fillLogoURL(team)
	return team, nil
}

func (s *teamService) UpdateRecord(ctx context.Context, id int, input UpdateRecordInput) (*models.Team, error) {
	if input.Win < 0 || input.Loss < 0 || input.Draw < 0 {
		return nil, ErrTeamInvalidRecord
	}

	err := s.teamRepo.UpdateRecord(ctx, id, input.Win, input.Loss, input.Draw)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update team %d record: %w", id, err)
	}

	return s.GetTeamByID(ctx, id)
}

// UploadLogo загружает логотип в объектное хранилище и запоминает ключ.
// Прежний объект удаляется после успешной загрузки нового.
func (s *teamService) UploadLogo(ctx context.Context, id int, file io.Reader, contentType string) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrLogoUploadsDisabled
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team by id %d: %w", id, err)
	}

	ext := extensionForContentType(contentType)
	if ext == "" {
		return nil, ValidationError{"logo": "unsupported logo content type, expected png, jpeg or webp"}
	}

	key := fmt.Sprintf("teams/%d/logo%s", id, ext)
	if err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload team %d logo: %w", id, err)
	}

	oldKey := team.LogoKey
	if err := s.teamRepo.UpdateLogoKey(ctx, id, &key); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to store team %d logo key: %w", id, err)
	}

	if oldKey != nil && *oldKey != key {
		// Ошибка удаления старого объекта не фатальна для запроса.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	team.LogoKey = &key
	s.fillLogoURL(team)
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	err := s.teamRepo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamNotEmpty):
			return ErrTeamNotEmpty
		default:
			return fmt.Errorf("failed to delete team %d: %w", id, err)
		}
	}
	return nil
}

func (s *teamService) fillLogoURL(team *models.Team) {
	if s.uploader == nil || team.LogoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*team.LogoKey)
	if url != "" {
		team.LogoURL = &url
	}
}

func extensionForContentType(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
