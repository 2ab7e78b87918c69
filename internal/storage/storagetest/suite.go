// Package storagetest 对任意存储后端执行同一套行为测试，保证内存实现和数据库实现语义一致
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"filmorate/internal/model"
	"filmorate/internal/storage"
)

// Factory 为每个子测试创建一个空的存储
type Factory func(t *testing.T) storage.Storage

// Run 执行全部行为测试
func Run(t *testing.T, newStorage Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s storage.Storage)
	}{
		{"UserIDsAreSequential", testUserIDsAreSequential},
		{"UserNotFound", testUserNotFound},
		{"UserUpdateMerges", testUserUpdateMerges},
		{"FriendshipIsAsymmetric", testFriendshipIsAsymmetric},
		{"FriendshipIdempotent", testFriendshipIdempotent},
		{"DeleteFriendKeepsReverse", testDeleteFriendKeepsReverse},
		{"CommonFriends", testCommonFriends},
		{"LikesIdempotent", testLikesIdempotent},
		{"PopularOrder", testPopularOrder},
		{"PopularTiesKeepIDOrder", testPopularTiesKeepIDOrder},
		{"FilmRatingMustExist", testFilmRatingMustExist},
		{"FilmUpdateMerges", testFilmUpdateMerges},
		{"FilmGenresReplace", testFilmGenresReplace},
		{"FilmGenresUnknownKeepsPrevious", testFilmGenresUnknownKeepsPrevious},
		{"Dictionaries", testDictionaries},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStorage(t))
		})
	}
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func mustUser(t *testing.T, s storage.Storage, login string) *model.User {
	t.Helper()
	u, err := s.Users.Create(context.Background(), model.User{
		Email:    login + "@example.com",
		Login:    login,
		Birthday: day(1990, 1, 1),
	})
	if err != nil {
		t.Fatalf("Users.Create(%s): %v", login, err)
	}
	return u
}

func mustFilm(t *testing.T, s storage.Storage, name string) *model.Film {
	t.Helper()
	f, err := s.Films.Create(context.Background(), model.Film{
		Name:        name,
		Description: "about " + name,
		ReleaseDate: day(2000, 6, 15),
		Duration:    100,
		Mpa:         &model.Rating{ID: 1},
	})
	if err != nil {
		t.Fatalf("Films.Create(%s): %v", name, err)
	}
	return f
}

func userIDs(users []model.User) []int64 {
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func filmIDs(films []model.Film) []int64 {
	ids := make([]int64, 0, len(films))
	for _, f := range films {
		ids = append(ids, f.ID)
	}
	return ids
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

func testUserIDsAreSequential(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	for i, login := range []string{"alice", "bob", "carol"} {
		u, err := s.Users.Create(ctx, model.User{ID: 99, Email: login + "@x.io", Login: login})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if u.ID != int64(i+1) {
			t.Errorf("user %s id = %d, want %d", login, u.ID, i+1)
		}
		if u.Name != login {
			t.Errorf("blank name should default to login, got %q", u.Name)
		}
	}

	all, err := s.Users.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if got := userIDs(all); !equalIDs(got, []int64{1, 2, 3}) {
		t.Errorf("FindAll ids = %v, want [1 2 3]", got)
	}
}

func testUserNotFound(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	if _, err := s.Users.FindByID(ctx, 42); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("FindByID(42) err = %v, want ErrNotFound", err)
	}
	if _, err := s.Users.Update(ctx, model.User{ID: 42, Login: "ghost"}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Update(42) err = %v, want ErrNotFound", err)
	}
}

func testUserUpdateMerges(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	u := mustUser(t, s, "neo")

	updated, err := s.Users.Update(ctx, model.User{ID: u.ID, Name: "Thomas Anderson"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Thomas Anderson" || updated.Login != "neo" || updated.Email != "neo@example.com" {
		t.Errorf("unexpected merge result %+v", updated)
	}

	got, err := s.Users.FindByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Name != "Thomas Anderson" {
		t.Errorf("stored name = %q", got.Name)
	}
	if got.Birthday == nil || !got.Birthday.Equal(*day(1990, 1, 1)) {
		t.Errorf("birthday changed: %v", got.Birthday)
	}
}

func testFriendshipIsAsymmetric(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	a := mustUser(t, s, "a")
	b := mustUser(t, s, "b")

	if err := s.Friends.AddFriend(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("AddFriend: %v", err)
	}
	friendsA, _ := s.Friends.FriendsOf(ctx, a.ID)
	if !equalIDs(userIDs(friendsA), []int64{b.ID}) {
		t.Errorf("friendsOf(a) = %v, want [%d]", userIDs(friendsA), b.ID)
	}
	friendsB, _ := s.Friends.FriendsOf(ctx, b.ID)
	if len(friendsB) != 0 {
		t.Errorf("friendsOf(b) = %v, want empty before b adds a", userIDs(friendsB))
	}

	if err := s.Friends.AddFriend(ctx, b.ID, a.ID); err != nil {
		t.Fatalf("AddFriend: %v", err)
	}
	friendsB, _ = s.Friends.FriendsOf(ctx, b.ID)
	if !equalIDs(userIDs(friendsB), []int64{a.ID}) {
		t.Errorf("friendsOf(b) = %v, want [%d]", userIDs(friendsB), a.ID)
	}
}

func testFriendshipIdempotent(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	a := mustUser(t, s, "a")
	b := mustUser(t, s, "b")

	for i := 0; i < 3; i++ {
		if err := s.Friends.AddFriend(ctx, a.ID, b.ID); err != nil {
			t.Fatalf("AddFriend #%d: %v", i, err)
		}
	}
	friends, _ := s.Friends.FriendsOf(ctx, a.ID)
	if len(friends) != 1 {
		t.Errorf("friendsOf(a) = %v, want one entry", userIDs(friends))
	}

	// b 添加 a 之后，a 重复添加 b 不会把 b->a 降级为未确认
	if err := s.Friends.AddFriend(ctx, b.ID, a.ID); err != nil {
		t.Fatalf("AddFriend: %v", err)
	}
	if err := s.Friends.AddFriend(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("AddFriend: %v", err)
	}
	friends, _ = s.Friends.FriendsOf(ctx, b.ID)
	if !equalIDs(userIDs(friends), []int64{a.ID}) {
		t.Errorf("friendsOf(b) = %v, want [%d]", userIDs(friends), a.ID)
	}
}

func testDeleteFriendKeepsReverse(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	a := mustUser(t, s, "a")
	b := mustUser(t, s, "b")

	_ = s.Friends.AddFriend(ctx, a.ID, b.ID)
	_ = s.Friends.AddFriend(ctx, b.ID, a.ID)

	if err := s.Friends.DeleteFriend(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("DeleteFriend: %v", err)
	}
	if err := s.Friends.DeleteFriend(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("second DeleteFriend should be a no-op: %v", err)
	}

	friendsA, _ := s.Friends.FriendsOf(ctx, a.ID)
	if len(friendsA) != 0 {
		t.Errorf("friendsOf(a) = %v, want empty", userIDs(friendsA))
	}
	friendsB, _ := s.Friends.FriendsOf(ctx, b.ID)
	if !equalIDs(userIDs(friendsB), []int64{a.ID}) {
		t.Errorf("friendsOf(b) = %v, want [%d]", userIDs(friendsB), a.ID)
	}
}

func testCommonFriends(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	a := mustUser(t, s, "a")
	b := mustUser(t, s, "b")
	c := mustUser(t, s, "c")
	d := mustUser(t, s, "d")
	e := mustUser(t, s, "e")

	_ = s.Friends.AddFriend(ctx, a.ID, c.ID)
	_ = s.Friends.AddFriend(ctx, a.ID, d.ID)
	_ = s.Friends.AddFriend(ctx, b.ID, d.ID)
	_ = s.Friends.AddFriend(ctx, b.ID, c.ID)
	_ = s.Friends.AddFriend(ctx, b.ID, e.ID)
	// e->a 只产生未确认的 a->e，不算 a 的好友
	_ = s.Friends.AddFriend(ctx, e.ID, a.ID)

	common, err := s.Friends.CommonFriends(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("CommonFriends: %v", err)
	}
	if got := userIDs(common); !equalIDs(got, []int64{c.ID, d.ID}) {
		t.Errorf("CommonFriends(a, b) = %v, want [%d %d]", got, c.ID, d.ID)
	}

	none, _ := s.Friends.CommonFriends(ctx, c.ID, d.ID)
	if len(none) != 0 {
		t.Errorf("CommonFriends(c, d) = %v, want empty", userIDs(none))
	}
}

func testLikesIdempotent(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	u := mustUser(t, s, "u")
	f1 := mustFilm(t, s, "f1")
	f2 := mustFilm(t, s, "f2")

	_ = s.Likes.AddLike(ctx, f2.ID, u.ID)
	if err := s.Likes.AddLike(ctx, f2.ID, u.ID); err != nil {
		t.Fatalf("duplicate AddLike: %v", err)
	}
	top, _ := s.Likes.Popular(ctx, 10)
	if got := filmIDs(top); !equalIDs(got, []int64{f2.ID, f1.ID}) {
		t.Errorf("Popular = %v, want [%d %d]", got, f2.ID, f1.ID)
	}

	if err := s.Likes.DeleteLike(ctx, f2.ID, u.ID); err != nil {
		t.Fatalf("DeleteLike: %v", err)
	}
	if err := s.Likes.DeleteLike(ctx, f2.ID, u.ID); err != nil {
		t.Fatalf("second DeleteLike should be a no-op: %v", err)
	}
	top, _ = s.Likes.Popular(ctx, 10)
	if got := filmIDs(top); !equalIDs(got, []int64{f1.ID, f2.ID}) {
		t.Errorf("Popular after unlike = %v, want [%d %d]", got, f1.ID, f2.ID)
	}
}

func testPopularOrder(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	u1 := mustUser(t, s, "u1")
	u2 := mustUser(t, s, "u2")
	f1 := mustFilm(t, s, "F1")
	mustFilm(t, s, "F2")
	f3 := mustFilm(t, s, "F3")

	_ = s.Likes.AddLike(ctx, f1.ID, u1.ID)
	_ = s.Likes.AddLike(ctx, f1.ID, u2.ID)
	_ = s.Likes.AddLike(ctx, f3.ID, u1.ID)

	top, err := s.Likes.Popular(ctx, 2)
	if err != nil {
		t.Fatalf("Popular: %v", err)
	}
	if got := filmIDs(top); !equalIDs(got, []int64{f1.ID, f3.ID}) {
		t.Errorf("Popular(2) = %v, want [%d %d]", got, f1.ID, f3.ID)
	}
	if top[0].Mpa == nil || top[0].Mpa.Name != "G" {
		t.Errorf("Popular film should carry rating name, got %+v", top[0].Mpa)
	}
}

func testPopularTiesKeepIDOrder(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	u := mustUser(t, s, "u")
	var ids []int64
	for _, name := range []string{"a", "b", "c", "d"} {
		ids = append(ids, mustFilm(t, s, name).ID)
	}
	_ = s.Likes.AddLike(ctx, ids[2], u.ID)

	want := []int64{ids[2], ids[0], ids[1], ids[3]}
	for i := 0; i < 3; i++ {
		top, _ := s.Likes.Popular(ctx, 10)
		if got := filmIDs(top); !equalIDs(got, want) {
			t.Fatalf("Popular call %d = %v, want %v", i, got, want)
		}
	}
}

func testFilmRatingMustExist(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	_, err := s.Films.Create(ctx, model.Film{Name: "x", Duration: 10, Mpa: &model.Rating{ID: 999}})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Create with unknown rating err = %v, want ErrNotFound", err)
	}
	all, _ := s.Films.FindAll(ctx)
	if len(all) != 0 {
		t.Errorf("film was written despite unknown rating: %v", filmIDs(all))
	}

	f := mustFilm(t, s, "ok")
	if _, err := s.Films.Update(ctx, model.Film{ID: f.ID, Mpa: &model.Rating{ID: 999}}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Update with unknown rating err = %v, want ErrNotFound", err)
	}
	if _, err := s.Films.Update(ctx, model.Film{ID: 12345, Name: "n"}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Update unknown film err = %v, want ErrNotFound", err)
	}
}

func testFilmUpdateMerges(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	f := mustFilm(t, s, "old")
	if err := s.Genres.SetFilmGenres(ctx, f.ID, []int64{2}); err != nil {
		t.Fatalf("SetFilmGenres: %v", err)
	}

	if _, err := s.Films.Update(ctx, model.Film{ID: f.ID, Name: "new"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := s.Films.FindByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Name != "new" || got.Description != "about old" || got.Duration != 100 {
		t.Errorf("unexpected film %+v", got)
	}
	if got.ReleaseDate == nil || !got.ReleaseDate.Equal(*day(2000, 6, 15)) {
		t.Errorf("release date changed: %v", got.ReleaseDate)
	}
	if got.Mpa == nil || got.Mpa.ID != 1 || got.Mpa.Name != "G" {
		t.Errorf("rating changed: %+v", got.Mpa)
	}
	genres, _ := s.Genres.FilmGenres(ctx, f.ID)
	if !equalIDs(genreIDs(genres), []int64{2}) {
		t.Errorf("genres changed: %v", genreIDs(genres))
	}
}

func testFilmGenresReplace(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	f := mustFilm(t, s, "f")

	if err := s.Genres.SetFilmGenres(ctx, f.ID, []int64{2, 1, 2}); err != nil {
		t.Fatalf("SetFilmGenres: %v", err)
	}
	genres, _ := s.Genres.FilmGenres(ctx, f.ID)
	if got := genreIDs(genres); !equalIDs(got, []int64{1, 2}) {
		t.Errorf("FilmGenres = %v, want [1 2]", got)
	}
	if genres[0].Name != "Comedy" {
		t.Errorf("genre name = %q, want Comedy", genres[0].Name)
	}

	if err := s.Genres.SetFilmGenres(ctx, f.ID, []int64{3}); err != nil {
		t.Fatalf("SetFilmGenres: %v", err)
	}
	genres, _ = s.Genres.FilmGenres(ctx, f.ID)
	if got := genreIDs(genres); !equalIDs(got, []int64{3}) {
		t.Errorf("FilmGenres = %v, want [3]", got)
	}

	if err := s.Genres.SetFilmGenres(ctx, f.ID, []int64{}); err != nil {
		t.Fatalf("SetFilmGenres(empty): %v", err)
	}
	genres, _ = s.Genres.FilmGenres(ctx, f.ID)
	if len(genres) != 0 {
		t.Errorf("FilmGenres = %v, want empty", genreIDs(genres))
	}
}

func testFilmGenresUnknownKeepsPrevious(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	f := mustFilm(t, s, "f")
	_ = s.Genres.SetFilmGenres(ctx, f.ID, []int64{1, 2})

	err := s.Genres.SetFilmGenres(ctx, f.ID, []int64{3, 777})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("SetFilmGenres with unknown genre err = %v, want ErrNotFound", err)
	}
	genres, _ := s.Genres.FilmGenres(ctx, f.ID)
	if got := genreIDs(genres); !equalIDs(got, []int64{1, 2}) {
		t.Errorf("FilmGenres = %v, want previous [1 2]", got)
	}
}

func testDictionaries(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	ratings, err := s.Ratings.FindAll(ctx)
	if err != nil {
		t.Fatalf("Ratings.FindAll: %v", err)
	}
	if len(ratings) != len(model.DefaultRatings) || ratings[0].Name != "G" {
		t.Errorf("ratings = %+v", ratings)
	}
	if r, err := s.Ratings.FindByID(ctx, 3); err != nil || r.Name != "PG-13" {
		t.Errorf("Ratings.FindByID(3) = %+v, %v", r, err)
	}
	if _, err := s.Ratings.FindByID(ctx, 100); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Ratings.FindByID(100) err = %v", err)
	}

	genres, err := s.Genres.FindAll(ctx)
	if err != nil {
		t.Fatalf("Genres.FindAll: %v", err)
	}
	if len(genres) != len(model.DefaultGenres) {
		t.Errorf("genres = %+v", genres)
	}
	if _, err := s.Genres.FindByID(ctx, 100); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Genres.FindByID(100) err = %v", err)
	}
}
