package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/fencing-tournament/models"
	"github.com/Dosada05/fencing-tournament/repositories"
)

type TournamentService interface {
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	GetTournament(ctx context.Context, id int) (*models.Tournament, error)
	TournamentExists(ctx context.Context, id int) (bool, error)
	AddTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	UpdateTournament(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id int) error
	FindTournamentsByDate(ctx context.Context, day time.Time) ([]models.Tournament, error)
}

type CreateTournamentInput struct {
	Name                  string
	RegistrationStartDate time.Time
	RegistrationEndDate   time.Time
	TournamentStartDate   time.Time
	TournamentEndDate     time.Time
	Venue                 *string
}

// UpdateTournamentInput: nil fields keep their stored value.
type UpdateTournamentInput struct {
	Name                  *string
	RegistrationStartDate *time.Time
	RegistrationEndDate   *time.Time
	TournamentStartDate   *time.Time
	TournamentEndDate     *time.Time
	Venue                 *string
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	logger         *slog.Logger
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository, logger *slog.Logger) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		logger:         logger,
	}
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	if tournaments == nil {
		return []models.Tournament{}, nil
	}
	return tournaments, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, id int) (*models.Tournament, error) {
	if id <= 0 {
		return nil, ErrTournamentNotFound
	}
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament by id %d: %w", id, err)
	}
	return tournament, nil
}

func (s *tournamentService) TournamentExists(ctx context.Context, id int) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	exists, err := s.tournamentRepo.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check tournament %d: %w", id, err)
	}
	return exists, nil
}

func (s *tournamentService) AddTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}

	tournament := &models.Tournament{
		Name:                  name,
		RegistrationStartDate: models.DateOf(input.RegistrationStartDate),
		RegistrationEndDate:   models.DateOf(input.RegistrationEndDate),
		TournamentStartDate:   models.DateOf(input.TournamentStartDate),
		TournamentEndDate:     models.DateOf(input.TournamentEndDate),
		Venue:                 normalizeOptional(input.Venue),
	}
	if err := validateTournamentDates(tournament.RegistrationStartDate, tournament.RegistrationEndDate, tournament.TournamentStartDate, tournament.TournamentEndDate); err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament created", slog.Int("tournament_id", tournament.ID), slog.String("name", tournament.Name))
	return tournament, nil
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTournamentNameRequired
		}
		tournament.Name = name
	}
	if input.RegistrationStartDate != nil {
		tournament.RegistrationStartDate = models.DateOf(*input.RegistrationStartDate)
	}
	if input.RegistrationEndDate != nil {
		tournament.RegistrationEndDate = models.DateOf(*input.RegistrationEndDate)
	}
	if input.TournamentStartDate != nil {
		tournament.TournamentStartDate = models.DateOf(*input.TournamentStartDate)
	}
	if input.TournamentEndDate != nil {
		tournament.TournamentEndDate = models.DateOf(*input.TournamentEndDate)
	}
	if input.Venue != nil {
		tournament.Venue = normalizeOptional(input.Venue)
	}

	if err := validateTournamentDates(tournament.RegistrationStartDate, tournament.RegistrationEndDate, tournament.TournamentStartDate, tournament.TournamentEndDate); err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to update tournament %d: %w", id, err)
	}
	return tournament, nil
}

// DeleteTournament succeeds whether or not the tournament exists.
func (s *tournamentService) DeleteTournament(ctx context.Context, id int) error {
	if id <= 0 {
		return nil
	}
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	s.logger.InfoContext(ctx, "tournament deleted", slog.Int("tournament_id", id))
	return nil
}

func (s *tournamentService) FindTournamentsByDate(ctx context.Context, day time.Time) ([]models.Tournament, error) {
	if day.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidArgument)
	}
	tournaments, err := s.tournamentRepo.ListByDate(ctx, models.DateOf(day))
	if err != nil {
		return nil, fmt.Errorf("failed to find tournaments on %s: %w", day.Format(time.DateOnly), err)
	}
	if tournaments == nil {
		return []models.Tournament{}, nil
	}
	return tournaments, nil
}
