package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/fencing-tournament/models"
	"github.com/Dosada05/fencing-tournament/repositories"
)

// RankingsPublisher pushes a fresh standings snapshot to live subscribers of an event.
type RankingsPublisher interface {
	PublishRankings(eventID int, rankings []models.PlayerRank)
}

type EventService interface {
	AddEvent(ctx context.Context, tournamentID int, event *models.Event) (*models.Event, error)
	GetAllEventsByTournamentID(ctx context.Context, tournamentID int) ([]models.Event, error)
	GetEvent(ctx context.Context, eventID int) (*models.Event, error)
	UpdateEvent(ctx context.Context, tournamentID, eventID int, newEvent *models.Event) (*models.Event, error)
	DeleteEvent(ctx context.Context, tournamentID, eventID int) error

	AddPlayerToEvent(ctx context.Context, eventID, playerID int) (*models.Event, error)
	RemovePlayerFromEvent(ctx context.Context, eventID, playerID int) error
	UpdatePlayerScore(ctx context.Context, eventID, playerID, score int) (*models.PlayerRank, error)
	ListRankings(ctx context.Context, eventID int) ([]models.PlayerRank, error)
}

type eventService struct {
	tx             repositories.Transactor
	eventRepo      repositories.EventRepository
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	rankRepo       repositories.PlayerRankRepository
	stageRepo      repositories.KnockoutStageRepository
	publisher      RankingsPublisher
	logger         *slog.Logger
	now            func() time.Time
}

func NewEventService(
	tx repositories.Transactor,
	eventRepo repositories.EventRepository,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	rankRepo repositories.PlayerRankRepository,
	stageRepo repositories.KnockoutStageRepository,
	publisher RankingsPublisher,
	logger *slog.Logger,
) EventService {
	return &eventService{
		tx:             tx,
		eventRepo:      eventRepo,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		rankRepo:       rankRepo,
		stageRepo:      stageRepo,
		publisher:      publisher,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *eventService) AddEvent(ctx context.Context, tournamentID int, event *models.Event) (*models.Event, error) {
	if tournamentID <= 0 {
		return nil, ErrTournamentNotFound
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event is required", ErrNotFound)
	}
	if err := validateEventFields(event); err != nil {
		return nil, err
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", tournamentID, err)
	}

	event.TournamentID = tournament.ID
	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, repositories.ErrEventTournamentInvalid) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create event for tournament %d: %w", tournamentID, err)
	}
	event.Tournament = tournament

	s.logger.InfoContext(ctx, "event created",
		slog.Int("event_id", event.ID),
		slog.Int("tournament_id", tournament.ID),
		slog.String("gender", string(event.Gender)),
		slog.String("weapon", string(event.Weapon)),
	)
	return event, nil
}

func (s *eventService) GetAllEventsByTournamentID(ctx context.Context, tournamentID int) ([]models.Event, error) {
	if tournamentID <= 0 {
		return nil, ErrTournamentNotFound
	}
	exists, err := s.tournamentRepo.Exists(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check tournament %d: %w", tournamentID, err)
	}
	if !exists {
		return nil, ErrTournamentNotFound
	}

	events, err := s.eventRepo.ListByTournamentID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events of tournament %d: %w", tournamentID, err)
	}
	if events == nil {
		return []models.Event{}, nil
	}
	return events, nil
}

// GetEvent returns the event with its rankings and knockout stages.
func (s *eventService) GetEvent(ctx context.Context, eventID int) (*models.Event, error) {
	event, err := s.getEventRecord(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.loadEventDetails(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// loadEventDetails fills in the rankings and knockout stages of event in parallel.
func (s *eventService) loadEventDetails(ctx context.Context, event *models.Event) error {
	eventID := event.ID
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rankings, err := s.rankRepo.ListByEventID(gCtx, eventID)
		if err != nil {
			return fmt.Errorf("failed to load rankings of event %d: %w", eventID, err)
		}
		event.Rankings = rankings
		return nil
	})

	g.Go(func() error {
		stages, err := s.stageRepo.ListByEventID(gCtx, eventID)
		if err != nil {
			return fmt.Errorf("failed to load knockout stages of event %d: %w", eventID, err)
		}
		event.KnockoutStages = stages
		return nil
	})

	return g.Wait()
}

// UpdateEvent overwrites gender, weapon, dates and (when newEvent.KnockoutStages
// is non-nil) the knockout stage set. Rankings are left untouched.
func (s *eventService) UpdateEvent(ctx context.Context, tournamentID, eventID int, newEvent *models.Event) (*models.Event, error) {
	if tournamentID <= 0 || eventID <= 0 || newEvent == nil {
		return nil, fmt.Errorf("%w: tournament id, event id and updated event are required", ErrInvalidArgument)
	}

	existing, err := s.getEventRecord(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if existing.TournamentID != newEvent.TournamentID {
		return nil, ErrEventTournamentChange
	}

	today := models.DateOf(s.now())
	if !models.DateOf(newEvent.StartDate).After(today) {
		return nil, fmt.Errorf("%w: start %s, today %s", ErrEventStartNotInFuture, newEvent.StartDate.Format(time.DateOnly), today.Format(time.DateOnly))
	}
	if err := validateEventFields(newEvent); err != nil {
		return nil, err
	}

	var keepIDs []int
	if newEvent.KnockoutStages != nil {
		current, err := s.stageRepo.ListByEventID(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("failed to load knockout stages of event %d: %w", eventID, err)
		}
		owned := make(map[int]bool, len(current))
		for _, st := range current {
			owned[st.ID] = true
		}
		for _, st := range newEvent.KnockoutStages {
			if st.ID == 0 {
				continue
			}
			if !owned[st.ID] {
				return nil, fmt.Errorf("%w: stage %d does not belong to event %d", ErrKnockoutStageNotFound, st.ID, eventID)
			}
			keepIDs = append(keepIDs, st.ID)
		}
	}

	existing.Gender = newEvent.Gender
	existing.Weapon = newEvent.Weapon
	existing.StartDate = newEvent.StartDate
	existing.EndDate = newEvent.EndDate

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.eventRepo.Update(ctx, exec, existing); err != nil {
			return err
		}
		if newEvent.KnockoutStages == nil {
			return nil
		}
		if err := s.stageRepo.DeleteByEventIDExcept(ctx, exec, eventID, keepIDs); err != nil {
			return err
		}
		for _, st := range newEvent.KnockoutStages {
			if st.ID != 0 {
				continue
			}
			stage := models.KnockoutStage{EventID: eventID}
			if err := s.stageRepo.Create(ctx, exec, &stage); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event %d: %w", eventID, err)
	}

	if err := s.loadEventDetails(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteEvent removes the event only if it belongs to tournamentID; otherwise nothing happens.
func (s *eventService) DeleteEvent(ctx context.Context, tournamentID, eventID int) error {
	if tournamentID <= 0 || eventID <= 0 {
		return fmt.Errorf("%w: tournament id and event id are required", ErrInvalidArgument)
	}
	if err := s.eventRepo.DeleteByTournamentIDAndID(ctx, tournamentID, eventID); err != nil {
		return fmt.Errorf("failed to delete event %d of tournament %d: %w", eventID, tournamentID, err)
	}
	return nil
}

// AddPlayerToEvent registers the player with a zero score.
func (s *eventService) AddPlayerToEvent(ctx context.Context, eventID, playerID int) (*models.Event, error) {
	event, err := s.getEventRecord(ctx, eventID)
	if err != nil {
		return nil, err
	}
	player, err := s.getPlayerRecord(ctx, playerID)
	if err != nil {
		return nil, err
	}

	rankings, err := s.rankRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rankings of event %d: %w", eventID, err)
	}
	event.Rankings = rankings

	rank := models.PlayerRank{
		EventID:  event.ID,
		PlayerID: player.ID,
		Score:    0,
	}
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.rankRepo.Create(ctx, exec, &rank)
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerRankConflict):
			return nil, ErrPlayerAlreadyInEvent
		case errors.Is(err, repositories.ErrPlayerRankReference):
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to add player %d to event %d: %w", playerID, eventID, err)
	}
	rank.Player = player
	event.Rankings = append(event.Rankings, rank)

	s.logger.InfoContext(ctx, "player added to event", slog.Int("event_id", eventID), slog.Int("player_id", playerID))
	s.publishRankings(ctx, eventID)
	return event, nil
}

func (s *eventService) RemovePlayerFromEvent(ctx context.Context, eventID, playerID int) error {
	if err := s.rankRepo.Delete(ctx, eventID, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerRankNotFound) {
			return ErrPlayerRankNotFound
		}
		return fmt.Errorf("failed to remove player %d from event %d: %w", playerID, eventID, err)
	}
	s.publishRankings(ctx, eventID)
	return nil
}

func (s *eventService) UpdatePlayerScore(ctx context.Context, eventID, playerID, score int) (*models.PlayerRank, error) {
	if score < 0 {
		return nil, ErrInvalidScore
	}
	if err := s.rankRepo.UpdateScore(ctx, eventID, playerID, score); err != nil {
		if errors.Is(err, repositories.ErrPlayerRankNotFound) {
			return nil, ErrPlayerRankNotFound
		}
		return nil, fmt.Errorf("failed to update score of player %d in event %d: %w", playerID, eventID, err)
	}

	rank, err := s.rankRepo.GetByEventIDAndPlayerID(ctx, eventID, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerRankNotFound) {
			return nil, ErrPlayerRankNotFound
		}
		return nil, fmt.Errorf("failed to reload rank of player %d in event %d: %w", playerID, eventID, err)
	}
	s.publishRankings(ctx, eventID)
	return rank, nil
}

func (s *eventService) ListRankings(ctx context.Context, eventID int) ([]models.PlayerRank, error) {
	if _, err := s.getEventRecord(ctx, eventID); err != nil {
		return nil, err
	}
	rankings, err := s.rankRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rankings of event %d: %w", eventID, err)
	}
	if rankings == nil {
		return []models.PlayerRank{}, nil
	}
	return rankings, nil
}

func (s *eventService) getEventRecord(ctx context.Context, eventID int) (*models.Event, error) {
	if eventID <= 0 {
		return nil, ErrEventNotFound
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %d: %w", eventID, err)
	}
	return event, nil
}

func (s *eventService) getPlayerRecord(ctx context.Context, playerID int) (*models.Player, error) {
	if playerID <= 0 {
		return nil, ErrPlayerNotFound
	}
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", playerID, err)
	}
	return player, nil
}

func (s *eventService) publishRankings(ctx context.Context, eventID int) {
	if s.publisher == nil {
		return
	}
	rankings, err := s.rankRepo.ListByEventID(ctx, eventID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load rankings for live update", slog.Int("event_id", eventID), slog.Any("error", err))
		return
	}
	s.publisher.PublishRankings(eventID, rankings)
}
