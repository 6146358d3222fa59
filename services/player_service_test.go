package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPlayerService_CRUD(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := NewPlayerService(fakePlayerRepo{m}, nil, discardLogger())

	email := " lunge@example.com "
	player, err := svc.AddPlayer(ctx, PlayerInput{Username: " lunge ", Email: &email})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if player.Username != "lunge" || player.Email == nil || *player.Email != "lunge@example.com" {
		t.Errorf("Expected trimmed fields, got %+v", player)
	}

	if _, err := svc.AddPlayer(ctx, PlayerInput{Username: "lunge"}); !errors.Is(err, ErrPlayerUsernameConflict) {
		t.Errorf("Expected ErrPlayerUsernameConflict, got %v", err)
	}
	if _, err := svc.AddPlayer(ctx, PlayerInput{Username: "  "}); !errors.Is(err, ErrPlayerUsernameRequired) {
		t.Errorf("Expected ErrPlayerUsernameRequired, got %v", err)
	}

	byName, err := svc.GetPlayerByUsername(ctx, "lunge")
	if err != nil || byName.ID != player.ID {
		t.Errorf("Expected lookup by username to find %d, got %v (err %v)", player.ID, byName, err)
	}

	updated, err := svc.UpdatePlayer(ctx, player.ID, PlayerInput{Username: "flunge"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if updated.Username != "flunge" || updated.Email != nil {
		t.Errorf("Expected full overwrite, got %+v", updated)
	}

	if err := svc.DeletePlayer(ctx, player.ID); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	for _, call := range []func() error{
		func() error { _, err := svc.GetPlayer(ctx, player.ID); return err },
		func() error { _, err := svc.UpdatePlayer(ctx, player.ID, PlayerInput{Username: "x"}); return err },
		func() error { return svc.DeletePlayer(ctx, player.ID) },
	} {
		if err := call(); !errors.Is(err, ErrPlayerNotFound) {
			t.Errorf("Expected ErrPlayerNotFound, got %v", err)
		}
	}
}

func TestPlayerService_UploadPlayerPhoto(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	uploader := newFakeUploader()
	svc := NewPlayerService(fakePlayerRepo{m}, uploader, discardLogger())
	player, _ := svc.AddPlayer(ctx, PlayerInput{Username: "parry"})

	first, err := svc.UploadPlayerPhoto(ctx, player.ID, strings.NewReader("png-bytes"), "image/png")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if first.PhotoKey == nil || !strings.HasPrefix(*first.PhotoKey, "players/") || !strings.HasSuffix(*first.PhotoKey, ".png") {
		t.Fatalf("Unexpected photo key %v", first.PhotoKey)
	}
	if first.PhotoURL == nil || *first.PhotoURL != "https://cdn.test/"+*first.PhotoKey {
		t.Errorf("Unexpected photo url %v", first.PhotoURL)
	}
	firstKey := *first.PhotoKey

	second, err := svc.UploadPlayerPhoto(ctx, player.ID, strings.NewReader("jpg-bytes"), "image/jpeg")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if *second.PhotoKey == firstKey {
		t.Error("Expected a fresh key for the new photo")
	}
	if _, ok := uploader.objects[firstKey]; ok {
		t.Error("Expected the previous photo to be removed")
	}

	if _, err := svc.UploadPlayerPhoto(ctx, player.ID, strings.NewReader("x"), "application/pdf"); !errors.Is(err, ErrUnsupportedContentType) {
		t.Errorf("Expected ErrUnsupportedContentType, got %v", err)
	}
	if _, err := svc.UploadPlayerPhoto(ctx, 999, strings.NewReader("x"), "image/png"); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("Expected ErrPlayerNotFound, got %v", err)
	}

	noStorage := NewPlayerService(fakePlayerRepo{m}, nil, discardLogger())
	if _, err := noStorage.UploadPlayerPhoto(ctx, player.ID, strings.NewReader("x"), "image/png"); !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("Expected ErrStorageUnavailable, got %v", err)
	}
}
