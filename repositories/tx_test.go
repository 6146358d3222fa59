package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Dosada05/fencing-tournament/db"
	"github.com/Dosada05/fencing-tournament/models"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := db.Connect("sqlite", "file::memory:?_pragma=foreign_keys(1)", 5*time.Second)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := database.Migrate(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return database.SQL
}

func seedEvent(t *testing.T, conn *sqlx.DB) *models.Event {
	t.Helper()
	ctx := context.Background()

	tournament := &models.Tournament{
		Name:                  "Winter Open",
		RegistrationStartDate: time.Date(2099, time.January, 1, 0, 0, 0, 0, time.UTC),
		RegistrationEndDate:   time.Date(2099, time.January, 20, 0, 0, 0, 0, time.UTC),
		TournamentStartDate:   time.Date(2099, time.February, 1, 0, 0, 0, 0, time.UTC),
		TournamentEndDate:     time.Date(2099, time.February, 2, 0, 0, 0, 0, time.UTC),
	}
	if err := NewTournamentRepository(conn).Create(ctx, tournament); err != nil {
		t.Fatalf("Failed to create tournament: %v", err)
	}

	event := &models.Event{
		TournamentID: tournament.ID,
		Gender:       models.GenderMale,
		Weapon:       models.WeaponFoil,
		StartDate:    time.Date(2099, time.February, 1, 9, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2099, time.February, 1, 18, 0, 0, 0, time.UTC),
	}
	if err := NewEventRepository(conn).Create(ctx, event); err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}
	return event
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)
	event := seedEvent(t, conn)

	eventRepo := NewEventRepository(conn)
	stageRepo := NewKnockoutStageRepository(conn)
	errAbort := errors.New("abort")

	err := NewTransactor(conn).WithinTx(ctx, func(exec SQLExecutor) error {
		changed := *event
		changed.Gender = models.GenderFemale
		if err := eventRepo.Update(ctx, exec, &changed); err != nil {
			return err
		}
		stage := models.KnockoutStage{EventID: event.ID}
		if err := stageRepo.Create(ctx, exec, &stage); err != nil {
			return err
		}
		return errAbort
	})
	if !errors.Is(err, errAbort) {
		t.Fatalf("Expected the callback error, got %v", err)
	}

	stored, err := eventRepo.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("Expected event to exist, got %v", err)
	}
	if stored.Gender != models.GenderMale {
		t.Errorf("Expected gender update to be rolled back, got %s", stored.Gender)
	}
	stages, err := stageRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		t.Fatalf("Expected no error listing stages, got %v", err)
	}
	if len(stages) != 0 {
		t.Errorf("Expected stage insert to be rolled back, got %d stages", len(stages))
	}
}

func TestWithinTx_Commits(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)
	event := seedEvent(t, conn)

	stageRepo := NewKnockoutStageRepository(conn)
	err := NewTransactor(conn).WithinTx(ctx, func(exec SQLExecutor) error {
		stage := models.KnockoutStage{EventID: event.ID}
		return stageRepo.Create(ctx, exec, &stage)
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	stages, _ := stageRepo.ListByEventID(ctx, event.ID)
	if len(stages) != 1 {
		t.Errorf("Expected 1 committed stage, got %d", len(stages))
	}
}

func TestKnockoutStageRepository_DeleteByEventIDExcept(t *testing.T) {
	tests := []struct {
		name     string
		keep     func(ids []int) []int
		wantLeft int
	}{
		{"empty keep list removes all", func(ids []int) []int { return nil }, 0},
		{"keeps listed stages", func(ids []int) []int { return []int{ids[0], ids[2]} }, 2},
		{"keeps every stage", func(ids []int) []int { return ids }, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			conn := openTestDB(t)
			event := seedEvent(t, conn)
			other := seedEvent(t, conn)
			stageRepo := NewKnockoutStageRepository(conn)

			var ids []int
			for i := 0; i < 3; i++ {
				stage := models.KnockoutStage{EventID: event.ID}
				if err := stageRepo.Create(ctx, nil, &stage); err != nil {
					t.Fatalf("Failed to create stage: %v", err)
				}
				ids = append(ids, stage.ID)
			}
			foreign := models.KnockoutStage{EventID: other.ID}
			if err := stageRepo.Create(ctx, nil, &foreign); err != nil {
				t.Fatalf("Failed to create stage: %v", err)
			}

			keep := tt.keep(ids)
			if err := stageRepo.DeleteByEventIDExcept(ctx, nil, event.ID, keep); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			left, _ := stageRepo.ListByEventID(ctx, event.ID)
			if len(left) != tt.wantLeft {
				t.Fatalf("Expected %d stages left, got %d", tt.wantLeft, len(left))
			}
			kept := make(map[int]bool, len(keep))
			for _, id := range keep {
				kept[id] = true
			}
			for _, s := range left {
				if !kept[s.ID] {
					t.Errorf("Stage %d should have been deleted", s.ID)
				}
			}

			untouched, _ := stageRepo.ListByEventID(ctx, other.ID)
			if len(untouched) != 1 {
				t.Errorf("Expected the other event's stage to survive, got %d", len(untouched))
			}
		})
	}
}
