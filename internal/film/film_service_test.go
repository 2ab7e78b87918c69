package film

import (
	"context"
	"errors"
	"testing"
	"time"

	"filmorate/internal/constants"
	"filmorate/internal/model"
	"filmorate/internal/storage"
	"filmorate/internal/storage/memory"
)

type fixture struct {
	store storage.Storage
	svc   *FilmService
}

func newFixture() *fixture {
	s := memory.NewStorage()
	return &fixture{
		store: s,
		svc:   NewFilmService(s.Films, s.Likes, s.Genres, s.Users),
	}
}

func (f *fixture) user(t *testing.T, login string) int64 {
	t.Helper()
	u, err := f.store.Users.Create(context.Background(), model.User{Email: login + "@mail.ru", Login: login, Name: login})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u.ID
}

func (f *fixture) film(t *testing.T, name string, genres ...int64) *model.Film {
	t.Helper()
	released := time.Date(1967, 3, 25, 0, 0, 0, 0, time.UTC)
	in := model.Film{
		Name:        name,
		Description: "adipisicing",
		ReleaseDate: &released,
		Duration:    100,
		Mpa:         &model.Rating{ID: 1},
	}
	for _, g := range genres {
		in.Genres = append(in.Genres, model.Genre{ID: g})
	}
	out, err := f.svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create film: %v", err)
	}
	return out
}

func genreIDs(genres []model.Genre) []int64 {
	ids := make([]int64, 0, len(genres))
	for _, g := range genres {
		ids = append(ids, g.ID)
	}
	return ids
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCreateAttachesRatingAndSortedGenres(t *testing.T) {
	f := newFixture()
	created := f.film(t, "nisi eiusmod", 3, 1, 3)

	if created.ID != 1 {
		t.Errorf("id = %d, want 1", created.ID)
	}
	if created.Mpa == nil || created.Mpa.Name != "G" {
		t.Errorf("mpa = %+v, want G", created.Mpa)
	}
	if got := genreIDs(created.Genres); !equalIDs(got, []int64{1, 3}) {
		t.Errorf("genres = %v, want [1 3]", got)
	}
}

func TestCreateRejectsMissingOrUnknownReferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, model.Film{Name: "x"}); !errors.Is(err, constants.ErrValidation) {
		t.Errorf("no mpa err = %v, want ErrValidation", err)
	}
	if _, err := f.svc.Create(ctx, model.Film{Name: "x", Mpa: &model.Rating{ID: 99}}); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("unknown mpa err = %v, want ErrNotFound", err)
	}
	_, err := f.svc.Create(ctx, model.Film{Name: "x", Mpa: &model.Rating{ID: 1}, Genres: []model.Genre{{ID: 99}}})
	if !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("unknown genre err = %v, want ErrNotFound", err)
	}

	films, _ := f.svc.FindAll(ctx)
	if len(films) != 0 {
		t.Errorf("failed creates must not write, got %d films", len(films))
	}
}

func TestUpdateNameOnlyLeavesRestUnchanged(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created := f.film(t, "before", 2)

	updated, err := f.svc.Update(ctx, model.Film{ID: created.ID, Name: "after"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "after" {
		t.Errorf("name = %q", updated.Name)
	}
	if updated.Description != created.Description || updated.Duration != created.Duration {
		t.Errorf("description/duration changed: %+v", updated)
	}
	if !updated.ReleaseDate.Equal(*created.ReleaseDate) {
		t.Errorf("release date changed: %v", updated.ReleaseDate)
	}
	if updated.Mpa.ID != created.Mpa.ID {
		t.Errorf("mpa changed: %+v", updated.Mpa)
	}
	if got := genreIDs(updated.Genres); !equalIDs(got, []int64{2}) {
		t.Errorf("genres changed: %v", got)
	}
}

func TestUpdateReplacesAndClearsGenres(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created := f.film(t, "film", 1, 2)

	updated, err := f.svc.Update(ctx, model.Film{ID: created.ID, Genres: []model.Genre{{ID: 3}}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := genreIDs(updated.Genres); !equalIDs(got, []int64{3}) {
		t.Errorf("genres = %v, want [3]", got)
	}

	if _, err := f.svc.Update(ctx, model.Film{ID: created.ID, Genres: []model.Genre{{ID: 4}, {ID: 99}}}); !errors.Is(err, constants.ErrNotFound) {
		t.Fatalf("unknown genre err = %v", err)
	}
	kept, _ := f.svc.FindByID(ctx, created.ID)
	if got := genreIDs(kept.Genres); !equalIDs(got, []int64{3}) {
		t.Errorf("failed update changed genres: %v", got)
	}

	cleared, err := f.svc.Update(ctx, model.Film{ID: created.ID, Genres: []model.Genre{}})
	if err != nil {
		t.Fatalf("Update clear: %v", err)
	}
	if len(cleared.Genres) != 0 {
		t.Errorf("genres = %v, want none", cleared.Genres)
	}
}

func TestUpdateErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.Update(ctx, model.Film{Name: "x"}); !errors.Is(err, constants.ErrValidation) {
		t.Errorf("no id err = %v", err)
	}
	if _, err := f.svc.Update(ctx, model.Film{ID: 42, Name: "x"}); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("unknown id err = %v", err)
	}
}

func TestPopularRanking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u1, u2 := f.user(t, "u1"), f.user(t, "u2")
	f1, f2, f3 := f.film(t, "F1"), f.film(t, "F2"), f.film(t, "F3")

	for _, like := range [][2]int64{{f1.ID, u1}, {f1.ID, u2}, {f3.ID, u1}, {f3.ID, u1}} {
		if err := f.svc.Like(ctx, like[0], like[1]); err != nil {
			t.Fatalf("Like: %v", err)
		}
	}

	top, err := f.svc.Popular(ctx, 2)
	if err != nil {
		t.Fatalf("Popular: %v", err)
	}
	got := []int64{}
	for _, film := range top {
		got = append(got, film.ID)
	}
	if !equalIDs(got, []int64{f1.ID, f3.ID}) {
		t.Errorf("popular(2) = %v, want [%d %d]", got, f1.ID, f3.ID)
	}

	all, _ := f.svc.Popular(ctx, 10)
	if len(all) != 3 || all[2].ID != f2.ID {
		t.Errorf("popular(10) = %+v", all)
	}
}

func TestUnlikeChangesRanking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := f.user(t, "u")
	f1, f2 := f.film(t, "F1"), f.film(t, "F2")

	if err := f.svc.Like(ctx, f2.ID, u); err != nil {
		t.Fatalf("Like: %v", err)
	}
	top, _ := f.svc.Popular(ctx, 1)
	if top[0].ID != f2.ID {
		t.Fatalf("top = %d, want %d", top[0].ID, f2.ID)
	}

	if err := f.svc.Unlike(ctx, f2.ID, u); err != nil {
		t.Fatalf("Unlike: %v", err)
	}
	if err := f.svc.Unlike(ctx, f2.ID, u); err != nil {
		t.Fatalf("second Unlike: %v", err)
	}
	top, _ = f.svc.Popular(ctx, 1)
	if top[0].ID != f1.ID {
		t.Errorf("top after unlike = %d, want %d", top[0].ID, f1.ID)
	}
}

func TestLikeRequiresFilmAndUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := f.user(t, "u")
	film := f.film(t, "F")

	if err := f.svc.Like(ctx, 99, u); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("unknown film err = %v", err)
	}
	if err := f.svc.Like(ctx, film.ID, 99); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("unknown user err = %v", err)
	}
	if err := f.svc.Unlike(ctx, film.ID, 99); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("unlike unknown user err = %v", err)
	}
}

func TestPopularRejectsNonPositiveCount(t *testing.T) {
	f := newFixture()
	for _, count := range []int{0, -1} {
		if _, err := f.svc.Popular(context.Background(), count); !errors.Is(err, constants.ErrValidation) {
			t.Errorf("Popular(%d) err = %v, want ErrValidation", count, err)
		}
	}
}
