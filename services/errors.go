package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound        = errors.New("requested resource not found")
	ErrInvalidArgument = errors.New("invalid argument")

	// Ошибки, специфичные для сущностей
	ErrTournamentNotFound    = errors.New("tournament not found")
	ErrEventNotFound         = errors.New("event not found")
	ErrKnockoutStageNotFound = errors.New("knockout stage not found")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrPlayerRankNotFound    = errors.New("player is not registered in this event")
	ErrUserNotFound          = errors.New("user not found")

	// Ошибки турниров
	ErrTournamentNameRequired     = errors.New("tournament name is required")
	ErrTournamentDatesRequired    = errors.New("tournament registration and tournament dates are required")
	ErrTournamentInvalidRegDate   = errors.New("tournament registration end date must not precede its start date")
	ErrTournamentRegAfterStart    = errors.New("tournament registration must close before the tournament starts")
	ErrTournamentInvalidDateRange = errors.New("tournament end date must not precede its start date")

	// Ошибки событий
	ErrEventTournamentChange = errors.New("tournament of an event cannot be changed")
	// "today" is the UTC calendar day, whatever the client's time zone.
	ErrEventStartNotInFuture = errors.New("event start date must be after today (UTC)")
	ErrEventInvalidGender    = errors.New("invalid event gender")
	ErrEventInvalidWeapon    = errors.New("invalid event weapon")
	ErrEventInvalidDateRange = errors.New("event end date must not precede its start date")
	ErrStageEventMismatch    = errors.New("knockout stage cannot be moved to another event")

	// Ошибки игроков и рейтингов
	ErrPlayerUsernameRequired = errors.New("player username is required")
	ErrPlayerUsernameConflict = errors.New("player username is already in use")
	ErrPlayerAlreadyInEvent   = errors.New("player is already registered in this event")
	ErrInvalidScore           = errors.New("score must not be negative")

	// Ошибки аутентификации и авторизации
	ErrAuthenticationFailed   = errors.New("authentication failed")
	ErrAuthInvalidCredentials = errors.New("invalid username or password")
	ErrAuthUsernameTaken      = errors.New("username is already taken")
	ErrUsernameRequired       = errors.New("username is required")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrInvalidEmail           = errors.New("email address is invalid")
	ErrInvalidRole            = errors.New("invalid user role")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Хранилище файлов
	ErrStorageUnavailable     = errors.New("file storage is not configured")
	ErrUnsupportedContentType = errors.New("unsupported image content type")
)
