package dbstore

import (
	"context"
	"time"

	"filmorate/internal/constants"
	"filmorate/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const filmColumns = "f.id, f.name, f.description, f.release_date, f.duration, f.rating_id, r.name AS mpa_name"

// filmView films JOIN ratings 的查询结果
type filmView struct {
	ID          int64
	Name        string
	Description string
	ReleaseDate *time.Time
	Duration    int
	RatingID    int64
	MpaName     string
}

func (v filmView) toModel() model.Film {
	return model.Film{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		ReleaseDate: v.ReleaseDate,
		Duration:    v.Duration,
		Mpa:         &model.Rating{ID: v.RatingID, Name: v.MpaName},
	}
}

func filmsFromViews(views []filmView) []model.Film {
	films := make([]model.Film, 0, len(views))
	for _, v := range views {
		films = append(films, v.toModel())
	}
	return films
}

func newFilmRow(f model.Film) filmRow {
	return filmRow{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: f.ReleaseDate,
		Duration:    f.Duration,
		RatingID:    f.RatingID(),
	}
}

// FilmStore 电影表
type FilmStore struct {
	db *gorm.DB
}

func (s *FilmStore) films(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("films f").
		Select(filmColumns).
		Joins("JOIN ratings r ON f.rating_id = r.id")
}

// FindAll 查询全部电影
func (s *FilmStore) FindAll(ctx context.Context) ([]model.Film, error) {
	var views []filmView
	if err := s.films(ctx).Order("f.id").Scan(&views).Error; err != nil {
		return nil, err
	}
	return filmsFromViews(views), nil
}

// FindByID 按ID查询电影
func (s *FilmStore) FindByID(ctx context.Context, id int64) (*model.Film, error) {
	var views []filmView
	if err := s.films(ctx).Where("f.id = ?", id).Limit(1).Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, notFound(constants.ErrFilmNotFound, id)
	}
	f := views[0].toModel()
	return &f, nil
}

func ratingExists(tx *gorm.DB, id int64) error {
	var count int64
	if err := tx.Model(&ratingRow{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound(constants.ErrRatingNotFound, id)
	}
	return nil
}

// Create 创建电影，分级不存在时不写入
func (s *FilmStore) Create(ctx context.Context, film model.Film) (*model.Film, error) {
	row := newFilmRow(film)
	row.ID = 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ratingExists(tx, row.RatingID); err != nil {
			return err
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, row.ID)
}

// Update 合并非空字段后保存
func (s *FilmStore) Update(ctx context.Context, film model.Film) (*model.Film, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row filmRow
		if err := tx.First(&row, "id = ?", film.ID).Error; err != nil {
			return translate(err, constants.ErrFilmNotFound, film.ID)
		}
		if film.Mpa != nil {
			if err := ratingExists(tx, film.Mpa.ID); err != nil {
				return err
			}
		}
		merged := model.Film{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			ReleaseDate: row.ReleaseDate,
			Duration:    row.Duration,
			Mpa:         &model.Rating{ID: row.RatingID},
		}
		merged.Merge(film)
		next := newFilmRow(merged)
		return tx.Save(&next).Error
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, film.ID)
}

// LikeStore likes 表
type LikeStore struct {
	db *gorm.DB
}

// AddLike 重复点赞不报错
func (s *LikeStore) AddLike(ctx context.Context, filmID, userID int64) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&likeRow{FilmID: filmID, UserID: userID}).Error
}

// DeleteLike 取消点赞，不存在时不报错
func (s *LikeStore) DeleteLike(ctx context.Context, filmID, userID int64) error {
	return s.db.WithContext(ctx).
		Where("film_id = ? AND user_id = ?", filmID, userID).
		Delete(&likeRow{}).Error
}

// Popular 按点赞数排行
func (s *LikeStore) Popular(ctx context.Context, count int) ([]model.Film, error) {
	var views []filmView
	err := s.db.WithContext(ctx).
		Table("films f").
		Select(filmColumns+", COUNT(l.user_id) AS likes_count").
		Joins("JOIN ratings r ON f.rating_id = r.id").
		Joins("LEFT JOIN likes l ON f.id = l.film_id").
		Group("f.id, f.name, f.description, f.release_date, f.duration, f.rating_id, r.name").
		Order("likes_count DESC, f.id ASC").
		Limit(count).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return filmsFromViews(views), nil
}
