package memory

import (
	"context"
	"sort"

	"filmorate/internal/constants"
	"filmorate/internal/model"
)

type genreStore struct {
	*Store
}

func (s *genreStore) FindAll(ctx context.Context) ([]model.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Genre, 0, len(s.genres))
	for _, g := range s.genres {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *genreStore) FindByID(ctx context.Context, id int64) (*model.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.genres[id]
	if !ok {
		return nil, notFound(constants.ErrGenreNotFound, id)
	}
	return &g, nil
}

func (s *genreStore) SetFilmGenres(ctx context.Context, filmID int64, genreIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := make(map[int64]struct{}, len(genreIDs))
	for _, id := range genreIDs {
		if _, ok := s.genres[id]; !ok {
			return notFound(constants.ErrGenreNotFound, id)
		}
		set[id] = struct{}{}
	}
	s.filmGenres[filmID] = set
	return nil
}

func (s *genreStore) FilmGenres(ctx context.Context, filmID int64) ([]model.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Genre, 0, len(s.filmGenres[filmID]))
	for id := range s.filmGenres[filmID] {
		out = append(out, s.genres[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type ratingStore struct {
	*Store
}

func (s *ratingStore) FindAll(ctx context.Context) ([]model.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Rating, 0, len(s.ratings))
	for _, r := range s.ratings {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *ratingStore) FindByID(ctx context.Context, id int64) (*model.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.ratings[id]
	if !ok {
		return nil, notFound(constants.ErrRatingNotFound, id)
	}
	return &r, nil
}
