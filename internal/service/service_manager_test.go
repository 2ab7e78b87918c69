package service

import (
	"context"
	"errors"
	"testing"

	"filmorate/internal/constants"
	"filmorate/internal/model"
	"filmorate/internal/storage/memory"
)

func TestManagerSharesOneBackend(t *testing.T) {
	m := NewManager(constants.StorageMemory, memory.NewStorage())
	ctx := context.Background()

	u, err := m.GetAccountService().Create(ctx, model.User{Email: "a@b.c", Login: "a"})
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}
	f, err := m.GetFilmService().Create(ctx, model.Film{Name: "F", Mpa: &model.Rating{ID: 2}})
	if err != nil {
		t.Fatalf("Create film: %v", err)
	}
	if err := m.GetFilmService().Like(ctx, f.ID, u.ID); err != nil {
		t.Errorf("Like should see the user created through the account service: %v", err)
	}

	r, err := m.GetCatalogService().Rating(ctx, 2)
	if err != nil || r.Name != "PG" {
		t.Errorf("Rating(2) = %+v, %v", r, err)
	}
	if m.Backend() != constants.StorageMemory {
		t.Errorf("Backend() = %q", m.Backend())
	}
}

func TestShutdownRunsClosers(t *testing.T) {
	var calls int
	m := NewManager(constants.StorageMemory, memory.NewStorage(),
		func() error { calls++; return nil },
		func() error { calls++; return errors.New("already closed") },
	)
	m.Shutdown()
	if calls != 2 {
		t.Errorf("closers called %d times, want 2", calls)
	}
}
