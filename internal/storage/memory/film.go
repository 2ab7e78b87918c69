package memory

import (
	"context"
	"sort"

	"filmorate/internal/constants"
	"filmorate/internal/model"
	"filmorate/internal/storage"
)

type filmStore struct {
	*Store
}

func (s *filmStore) FindAll(ctx context.Context) ([]model.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Film, 0, len(s.filmOrder))
	for _, id := range s.filmOrder {
		f, _ := s.film(id)
		out = append(out, f)
	}
	return out, nil
}

func (s *filmStore) FindByID(ctx context.Context, id int64) (*model.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.film(id)
	if !ok {
		return nil, notFound(constants.ErrFilmNotFound, id)
	}
	return &f, nil
}

func (s *filmStore) Create(ctx context.Context, film model.Film) (*model.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ratings[film.RatingID()]; !ok {
		return nil, notFound(constants.ErrRatingNotFound, film.RatingID())
	}

	film = film.Clone()
	film.ID = storage.NextID(s.films)
	film.Genres = nil
	s.films[film.ID] = film
	s.filmOrder = append(s.filmOrder, film.ID)

	out, _ := s.film(film.ID)
	return &out, nil
}

func (s *filmStore) Update(ctx context.Context, film model.Film) (*model.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.films[film.ID]
	if !ok {
		return nil, notFound(constants.ErrFilmNotFound, film.ID)
	}
	if film.Mpa != nil {
		if _, ok := s.ratings[film.Mpa.ID]; !ok {
			return nil, notFound(constants.ErrRatingNotFound, film.Mpa.ID)
		}
	}
	existing.Merge(film)
	s.films[existing.ID] = existing

	out, _ := s.film(existing.ID)
	return &out, nil
}

type likeStore struct {
	*Store
}

func (s *likeStore) AddLike(ctx context.Context, filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, ok := s.likes[filmID]
	if !ok {
		users = make(map[int64]struct{})
		s.likes[filmID] = users
	}
	users[userID] = struct{}{}
	return nil
}

func (s *likeStore) DeleteLike(ctx context.Context, filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.likes[filmID], userID)
	return nil
}

func (s *likeStore) Popular(ctx context.Context, count int) ([]model.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ranked := make([]model.Film, 0, len(s.filmOrder))
	for _, id := range s.filmOrder {
		f, _ := s.film(id)
		ranked = append(ranked, f)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return len(s.likes[ranked[i].ID]) > len(s.likes[ranked[j].ID])
	})
	if count >= 0 && count < len(ranked) {
		ranked = ranked[:count]
	}
	return ranked, nil
}
