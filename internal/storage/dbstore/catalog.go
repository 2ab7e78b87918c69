package dbstore

import (
	"context"

	"filmorate/internal/constants"
	"filmorate/internal/model"

	"gorm.io/gorm"
)

// GenreStore genres 与 film_genres 表
type GenreStore struct {
	db *gorm.DB
}

func genresFromRows(rows []genreRow) []model.Genre {
	genres := make([]model.Genre, 0, len(rows))
	for _, r := range rows {
		genres = append(genres, model.Genre{ID: r.ID, Name: r.Name})
	}
	return genres
}

// FindAll 查询全部类型
func (s *GenreStore) FindAll(ctx context.Context) ([]model.Genre, error) {
	var rows []genreRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return genresFromRows(rows), nil
}

// FindByID 按ID查询类型
func (s *GenreStore) FindByID(ctx context.Context, id int64) (*model.Genre, error) {
	var row genreRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(err, constants.ErrGenreNotFound, id)
	}
	return &model.Genre{ID: row.ID, Name: row.Name}, nil
}

// SetFilmGenres 在一个事务中先校验、再删除旧关联、再写入新关联
func (s *GenreStore) SetFilmGenres(ctx context.Context, filmID int64, genreIDs []int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows := make([]filmGenreRow, 0, len(genreIDs))
		seen := make(map[int64]struct{}, len(genreIDs))
		for _, id := range genreIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}

			var count int64
			if err := tx.Model(&genreRow{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return notFound(constants.ErrGenreNotFound, id)
			}
			rows = append(rows, filmGenreRow{FilmID: filmID, GenreID: id})
		}

		if err := tx.Where("film_id = ?", filmID).Delete(&filmGenreRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// FilmGenres 查询电影的类型，按类型ID升序
func (s *GenreStore) FilmGenres(ctx context.Context, filmID int64) ([]model.Genre, error) {
	var rows []genreRow
	err := s.db.WithContext(ctx).
		Table("genres g").
		Select("g.id, g.name").
		Joins("JOIN film_genres fg ON g.id = fg.genre_id").
		Where("fg.film_id = ?", filmID).
		Order("g.id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return genresFromRows(rows), nil
}

// RatingStore ratings 表
type RatingStore struct {
	db *gorm.DB
}

// FindAll 查询全部分级
func (s *RatingStore) FindAll(ctx context.Context) ([]model.Rating, error) {
	var rows []ratingRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	ratings := make([]model.Rating, 0, len(rows))
	for _, r := range rows {
		ratings = append(ratings, model.Rating{ID: r.ID, Name: r.Name})
	}
	return ratings, nil
}

// FindByID 按ID查询分级
func (s *RatingStore) FindByID(ctx context.Context, id int64) (*model.Rating, error) {
	var row ratingRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(err, constants.ErrRatingNotFound, id)
	}
	return &model.Rating{ID: row.ID, Name: row.Name}, nil
}
