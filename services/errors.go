package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден
	ErrUserNotFound   = errors.New("user not found")
	ErrLeagueNotFound = errors.New("League not found")
	ErrTeamNotFound   = errors.New("team not found")

	// Ошибки валидации и бизнес-правил
	ErrLeagueNameRequired     = errors.New("league name is required")
	ErrLeagueSportRequired    = errors.New("league sport is required")
	ErrLeagueDatesRequired    = errors.New("league start and end dates are required")
	ErrLeagueInvalidDateRange = errors.New("league end date must be after start date")
	ErrTeamNameRequired       = errors.New("team name is required")
	ErrTeamInvalidRecord      = errors.New("team record counters must not be negative")
	ErrUserNotFreeAgent       = errors.New("user is already assigned to a team")

	// Ошибки конфликтов
	ErrUserEmailConflict  = errors.New("email address already exists")
	ErrLeagueNameConflict = errors.New("league name already exists for this sport")
	ErrLeagueDataInvalid  = errors.New("league data rejected by storage")
	ErrTeamNameConflict   = errors.New("team name is already in use")
	ErrTeamNotEmpty       = errors.New("team still has members and cannot be deleted")

	// Ошибки аутентификации и авторизации
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// Инфраструктура
	ErrLogoUploadsDisabled = errors.New("logo uploads are not configured")
)
