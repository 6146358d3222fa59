package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/fencing-tournament/models"
	"github.com/Dosada05/fencing-tournament/repositories"
)

type KnockoutStageService interface {
	AddKnockoutStage(ctx context.Context, eventID int, stage *models.KnockoutStage) (*models.KnockoutStage, error)
	GetKnockoutStage(ctx context.Context, stageID int) (*models.KnockoutStage, error)
	ListKnockoutStages(ctx context.Context, eventID int) ([]models.KnockoutStage, error)
	UpdateKnockoutStage(ctx context.Context, eventID, stageID int, stage *models.KnockoutStage) (*models.KnockoutStage, error)
	DeleteKnockoutStage(ctx context.Context, eventID, stageID int) error
}

type knockoutStageService struct {
	stageRepo repositories.KnockoutStageRepository
	eventRepo repositories.EventRepository
	logger    *slog.Logger
}

func NewKnockoutStageService(stageRepo repositories.KnockoutStageRepository, eventRepo repositories.EventRepository, logger *slog.Logger) KnockoutStageService {
	return &knockoutStageService{
		stageRepo: stageRepo,
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func (s *knockoutStageService) AddKnockoutStage(ctx context.Context, eventID int, stage *models.KnockoutStage) (*models.KnockoutStage, error) {
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	if stage == nil {
		stage = &models.KnockoutStage{}
	}
	stage.ID = 0
	stage.EventID = eventID

	if err := s.stageRepo.Create(ctx, nil, stage); err != nil {
		if errors.Is(err, repositories.ErrKnockoutStageEventInvalid) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to create knockout stage for event %d: %w", eventID, err)
	}

	s.logger.InfoContext(ctx, "knockout stage created", slog.Int("stage_id", stage.ID), slog.Int("event_id", eventID))
	return stage, nil
}

func (s *knockoutStageService) GetKnockoutStage(ctx context.Context, stageID int) (*models.KnockoutStage, error) {
	if stageID <= 0 {
		return nil, ErrKnockoutStageNotFound
	}
	stage, err := s.stageRepo.GetByID(ctx, stageID)
	if err != nil {
		if errors.Is(err, repositories.ErrKnockoutStageNotFound) {
			return nil, ErrKnockoutStageNotFound
		}
		return nil, fmt.Errorf("failed to get knockout stage %d: %w", stageID, err)
	}
	return stage, nil
}

func (s *knockoutStageService) ListKnockoutStages(ctx context.Context, eventID int) ([]models.KnockoutStage, error) {
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	stages, err := s.stageRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list knockout stages of event %d: %w", eventID, err)
	}
	if stages == nil {
		return []models.KnockoutStage{}, nil
	}
	return stages, nil
}

// UpdateKnockoutStage verifies the stage belongs to eventID. A stage carries no
// mutable attributes beyond its event, which cannot be reassigned.
func (s *knockoutStageService) UpdateKnockoutStage(ctx context.Context, eventID, stageID int, stage *models.KnockoutStage) (*models.KnockoutStage, error) {
	if eventID <= 0 || stageID <= 0 {
		return nil, ErrKnockoutStageNotFound
	}
	existing, err := s.stageRepo.GetByEventIDAndID(ctx, eventID, stageID)
	if err != nil {
		if errors.Is(err, repositories.ErrKnockoutStageNotFound) {
			return nil, ErrKnockoutStageNotFound
		}
		return nil, fmt.Errorf("failed to get knockout stage %d of event %d: %w", stageID, eventID, err)
	}
	if stage != nil && stage.EventID != 0 && stage.EventID != eventID {
		return nil, ErrStageEventMismatch
	}
	return existing, nil
}

func (s *knockoutStageService) DeleteKnockoutStage(ctx context.Context, eventID, stageID int) error {
	if eventID <= 0 || stageID <= 0 {
		return ErrKnockoutStageNotFound
	}
	if err := s.stageRepo.Delete(ctx, eventID, stageID); err != nil {
		if errors.Is(err, repositories.ErrKnockoutStageNotFound) {
			return ErrKnockoutStageNotFound
		}
		return fmt.Errorf("failed to delete knockout stage %d of event %d: %w", stageID, eventID, err)
	}
	s.logger.InfoContext(ctx, "knockout stage deleted", slog.Int("stage_id", stageID), slog.Int("event_id", eventID))
	return nil
}

func (s *knockoutStageService) ensureEvent(ctx context.Context, eventID int) error {
	if eventID <= 0 {
		return ErrEventNotFound
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to get event %d: %w", eventID, err)
	}
	return nil
}
