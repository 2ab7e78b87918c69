// Package film 电影、点赞与热门排行
package film

import (
	"context"
	"fmt"

	"filmorate/internal/constants"
	"filmorate/internal/logging"
	"filmorate/internal/metrics"
	"filmorate/internal/model"
	"filmorate/internal/storage"
)

// FilmService 电影服务
type FilmService struct {
	films  storage.FilmStorage
	likes  storage.LikeStorage
	genres storage.GenreStorage
	users  storage.UserStorage
}

// NewFilmService 创建电影服务
func NewFilmService(films storage.FilmStorage, likes storage.LikeStorage, genres storage.GenreStorage, users storage.UserStorage) *FilmService {
	return &FilmService{
		films:  films,
		likes:  likes,
		genres: genres,
		users:  users,
	}
}

// withGenres 填充电影的类型列表
func (s *FilmService) withGenres(ctx context.Context, f *model.Film) error {
	genres, err := s.genres.FilmGenres(ctx, f.ID)
	if err != nil {
		return err
	}
	f.Genres = genres
	return nil
}

func (s *FilmService) withGenresAll(ctx context.Context, films []model.Film) ([]model.Film, error) {
	for i := range films {
		if err := s.withGenres(ctx, &films[i]); err != nil {
			return nil, err
		}
	}
	return films, nil
}

// requireGenres 写入电影前校验全部类型存在
func (s *FilmService) requireGenres(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if _, err := s.genres.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// FindAll 查询全部电影
func (s *FilmService) FindAll(ctx context.Context) ([]model.Film, error) {
	films, err := s.films.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.withGenresAll(ctx, films)
}

// FindByID 按ID查询电影
func (s *FilmService) FindByID(ctx context.Context, id int64) (*model.Film, error) {
	f, err := s.films.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.withGenres(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Create 创建电影。分级和类型必须存在，否则不写入
func (s *FilmService) Create(ctx context.Context, f model.Film) (*model.Film, error) {
	if f.Mpa == nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrValidation, constants.ErrRatingRequired)
	}
	genreIDs := f.GenreIDs()
	if err := s.requireGenres(ctx, genreIDs); err != nil {
		return nil, err
	}

	f.ID = 0
	created, err := s.films.Create(ctx, f)
	if err != nil {
		return nil, err
	}
	if genreIDs != nil {
		if err := s.genres.SetFilmGenres(ctx, created.ID, genreIDs); err != nil {
			return nil, err
		}
	}

	metrics.EntitiesCreated.WithLabelValues("film").Inc()
	logging.Ctx(ctx).Info().
		Int64("film_id", created.ID).
		Str("name", created.Name).
		Msg("电影已创建")
	return s.FindByID(ctx, created.ID)
}

// Update 合并更新电影。genres 为 nil 时保持原类型
func (s *FilmService) Update(ctx context.Context, f model.Film) (*model.Film, error) {
	if f.ID == 0 {
		return nil, fmt.Errorf("%w: %s", constants.ErrValidation, constants.ErrIDRequired)
	}
	genreIDs := f.GenreIDs()
	if err := s.requireGenres(ctx, genreIDs); err != nil {
		return nil, err
	}

	if _, err := s.films.Update(ctx, f); err != nil {
		return nil, err
	}
	if genreIDs != nil {
		if err := s.genres.SetFilmGenres(ctx, f.ID, genreIDs); err != nil {
			return nil, err
		}
	}

	logging.Ctx(ctx).Info().Int64("film_id", f.ID).Msg("电影已更新")
	return s.FindByID(ctx, f.ID)
}

// requireFilmAndUser 点赞前校验电影和用户存在
func (s *FilmService) requireFilmAndUser(ctx context.Context, filmID, userID int64) error {
	if _, err := s.films.FindByID(ctx, filmID); err != nil {
		return err
	}
	_, err := s.users.FindByID(ctx, userID)
	return err
}

// Like 用户给电影点赞，重复点赞无副作用
func (s *FilmService) Like(ctx context.Context, filmID, userID int64) error {
	logger := logging.Ctx(ctx)
	logger.Debug().Int64("film_id", filmID).Int64("user_id", userID).Msg("like")

	if err := s.requireFilmAndUser(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.likes.AddLike(ctx, filmID, userID); err != nil {
		return err
	}

	metrics.LikeOps.WithLabelValues("like").Inc()
	return nil
}

// Unlike 取消点赞，未点赞时无副作用
func (s *FilmService) Unlike(ctx context.Context, filmID, userID int64) error {
	logger := logging.Ctx(ctx)
	logger.Debug().Int64("film_id", filmID).Int64("user_id", userID).Msg("unlike")

	if err := s.requireFilmAndUser(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.likes.DeleteLike(ctx, filmID, userID); err != nil {
		return err
	}

	metrics.LikeOps.WithLabelValues("unlike").Inc()
	return nil
}

// Popular 点赞数最多的 count 部电影
func (s *FilmService) Popular(ctx context.Context, count int) ([]model.Film, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %s", constants.ErrValidation, constants.ErrCountPositive)
	}
	logging.Ctx(ctx).Debug().Int("count", count).Msg("popular")

	films, err := s.likes.Popular(ctx, count)
	if err != nil {
		return nil, err
	}
	return s.withGenresAll(ctx, films)
}
