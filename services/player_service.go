package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Dosada05/fencing-tournament/models"
	"github.com/Dosada05/fencing-tournament/repositories"
	"github.com/Dosada05/fencing-tournament/storage"
)

type PlayerService interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
	GetPlayer(ctx context.Context, id int) (*models.Player, error)
	GetPlayerByUsername(ctx context.Context, username string) (*models.Player, error)
	AddPlayer(ctx context.Context, input PlayerInput) (*models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input PlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
	UploadPlayerPhoto(ctx context.Context, id int, file io.Reader, contentType string) (*models.Player, error)
}

type PlayerInput struct {
	Username string
	Email    *string
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
}

// NewPlayerService accepts a nil uploader when object storage is not configured.
func NewPlayerService(playerRepo repositories.PlayerRepository, uploader storage.FileUploader, logger *slog.Logger) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		uploader:   uploader,
		logger:     logger,
	}
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	for i := range players {
		populatePlayerPhotoURLFunc(&players[i], s.uploader)
	}
	return players, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	if id <= 0 {
		return nil, ErrPlayerNotFound
	}
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPlayerRepoError(err, id)
	}
	populatePlayerPhotoURLFunc(player, s.uploader)
	return player, nil
}

func (s *playerService) GetPlayerByUsername(ctx context.Context, username string) (*models.Player, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrPlayerUsernameRequired
	}
	player, err := s.playerRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %q: %w", username, err)
	}
	populatePlayerPhotoURLFunc(player, s.uploader)
	return player, nil
}

func (s *playerService) AddPlayer(ctx context.Context, input PlayerInput) (*models.Player, error) {
	player := &models.Player{
		Username: strings.TrimSpace(input.Username),
		Email:    normalizeOptional(input.Email),
	}
	if player.Username == "" {
		return nil, ErrPlayerUsernameRequired
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerUsernameConflict) {
			return nil, ErrPlayerUsernameConflict
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created", slog.Int("player_id", player.ID), slog.String("username", player.Username))
	return player, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input PlayerInput) (*models.Player, error) {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrPlayerUsernameRequired
	}
	player.Username = username
	player.Email = normalizeOptional(input.Email)

	if err := s.playerRepo.Update(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerUsernameConflict) {
			return nil, ErrPlayerUsernameConflict
		}
		return nil, mapPlayerRepoError(err, id)
	}
	return player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return err
	}
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		return mapPlayerRepoError(err, id)
	}

	if player.PhotoKey != nil && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *player.PhotoKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete player photo", slog.Int("player_id", id), slog.String("key", *player.PhotoKey), slog.Any("error", err))
		}
	}
	s.logger.InfoContext(ctx, "player deleted", slog.Int("player_id", id))
	return nil
}

// UploadPlayerPhoto stores the image under players/{id}/ and replaces the previous one.
func (s *playerService) UploadPlayerPhoto(ctx context.Context, id int, file io.Reader, contentType string) (*models.Player, error) {
	if s.uploader == nil {
		return nil, ErrStorageUnavailable
	}
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("players/%d/%s%s", id, uuid.NewString(), ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload photo for player %d: %w", id, err)
	}

	oldKey := player.PhotoKey
	if err := s.playerRepo.UpdatePhotoKey(ctx, id, &key); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to clean up uploaded photo", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, mapPlayerRepoError(err, id)
	}

	if oldKey != nil && *oldKey != "" && *oldKey != key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous player photo", slog.Int("player_id", id), slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	player.PhotoKey = &key
	player.PhotoURL = nil
	populatePlayerPhotoURLFunc(player, s.uploader)
	return player, nil
}

func mapPlayerRepoError(err error, id int) error {
	if errors.Is(err, repositories.ErrPlayerNotFound) {
		return ErrPlayerNotFound
	}
	return fmt.Errorf("player %d: %w", id, err)
}
