// Package catalog 类型和 MPA 分级字典的只读接口
package catalog

import (
	"context"

	"filmorate/internal/model"
	"filmorate/internal/storage"
)

// Service 字典服务
type Service struct {
	genres  storage.GenreStorage
	ratings storage.RatingStorage
}

// NewService 创建字典服务
func NewService(genres storage.GenreStorage, ratings storage.RatingStorage) *Service {
	return &Service{genres: genres, ratings: ratings}
}

// Genres 全部类型，按ID升序
func (s *Service) Genres(ctx context.Context) ([]model.Genre, error) {
	return s.genres.FindAll(ctx)
}

// Genre 按ID查询类型
func (s *Service) Genre(ctx context.Context, id int64) (*model.Genre, error) {
	return s.genres.FindByID(ctx, id)
}

// Ratings 全部分级，按ID升序
func (s *Service) Ratings(ctx context.Context) ([]model.Rating, error) {
	return s.ratings.FindAll(ctx)
}

// Rating 按ID查询分级
func (s *Service) Rating(ctx context.Context, id int64) (*model.Rating, error) {
	return s.ratings.FindByID(ctx, id)
}
