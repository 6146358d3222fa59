package services

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Dosada05/fencing-tournament/models"
	"github.com/Dosada05/fencing-tournament/storage"
)

// normalizeOptional trims s and turns blank values into nil.
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// validateTournamentDates enforces regStart <= regEnd <= start <= end.
func validateTournamentDates(regStart, regEnd, start, end time.Time) error {
	if regStart.IsZero() || regEnd.IsZero() || start.IsZero() || end.IsZero() {
		return ErrTournamentDatesRequired
	}
	if regEnd.Before(regStart) {
		return fmt.Errorf("%w: registration end (%s) is before registration start (%s)", ErrTournamentInvalidRegDate, regEnd.Format(time.DateOnly), regStart.Format(time.DateOnly))
	}
	if start.Before(regEnd) {
		return fmt.Errorf("%w: registration end (%s) is after tournament start (%s)", ErrTournamentRegAfterStart, regEnd.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	if end.Before(start) {
		return fmt.Errorf("%w: start date (%s), end date (%s)", ErrTournamentInvalidDateRange, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return nil
}

func validateEventFields(e *models.Event) error {
	if !e.Gender.Valid() {
		return fmt.Errorf("%w: %q", ErrEventInvalidGender, e.Gender)
	}
	if !e.Weapon.Valid() {
		return fmt.Errorf("%w: %q", ErrEventInvalidWeapon, e.Weapon)
	}
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidArgument)
	}
	if e.EndDate.Before(e.StartDate) {
		return ErrEventInvalidDateRange
	}
	return nil
}

func populatePlayerPhotoURLFunc(player *models.Player, uploader storage.FileUploader) {
	if player != nil && player.PhotoKey != nil && *player.PhotoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*player.PhotoKey)
		if url != "" {
			player.PhotoURL = &url
		}
	}
}

func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
