// Package dbstore 基于 gorm 的关系型存储后端，表结构与预置的字典数据兼容：
// users, films, ratings, genres, film_genres, likes, user_friends。
package dbstore

import (
	"errors"
	"fmt"
	"time"

	"filmorate/internal/model"
	"filmorate/internal/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRow struct {
	ID       int64      `gorm:"primaryKey;autoIncrement"`
	Login    string     `gorm:"type:varchar(100);not null"`
	Email    string     `gorm:"type:varchar(255);not null"`
	Name     string     `gorm:"type:varchar(255)"`
	Birthday *time.Time `gorm:"type:date"`
}

func (userRow) TableName() string { return "users" }

type filmRow struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:varchar(200)"`
	ReleaseDate *time.Time `gorm:"column:release_date;type:date"`
	Duration    int
	RatingID    int64 `gorm:"column:rating_id;not null;index"`
}

func (filmRow) TableName() string { return "films" }

type ratingRow struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"type:varchar(50);not null"`
}

func (ratingRow) TableName() string { return "ratings" }

type genreRow struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"type:varchar(50);not null"`
}

func (genreRow) TableName() string { return "genres" }

type filmGenreRow struct {
	FilmID  int64 `gorm:"primaryKey;autoIncrement:false"`
	GenreID int64 `gorm:"primaryKey;autoIncrement:false"`
}

func (filmGenreRow) TableName() string { return "film_genres" }

type likeRow struct {
	FilmID int64 `gorm:"primaryKey;autoIncrement:false"`
	UserID int64 `gorm:"primaryKey;autoIncrement:false"`
}

func (likeRow) TableName() string { return "likes" }

type friendRow struct {
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"`
	FriendID  int64 `gorm:"primaryKey;autoIncrement:false"`
	Confirmed bool  `gorm:"not null;default:false"`
}

func (friendRow) TableName() string { return "user_friends" }

// Migrate 自动迁移表结构并写入字典数据，可重复执行
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userRow{},
		&ratingRow{},
		&genreRow{},
		&filmRow{},
		&filmGenreRow{},
		&likeRow{},
		&friendRow{},
	); err != nil {
		return fmt.Errorf("迁移表结构失败: %w", err)
	}

	ratings := make([]ratingRow, 0, len(model.DefaultRatings))
	for _, r := range model.DefaultRatings {
		ratings = append(ratings, ratingRow{ID: r.ID, Name: r.Name})
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ratings).Error; err != nil {
		return fmt.Errorf("写入分级字典失败: %w", err)
	}

	genres := make([]genreRow, 0, len(model.DefaultGenres))
	for _, g := range model.DefaultGenres {
		genres = append(genres, genreRow{ID: g.ID, Name: g.Name})
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&genres).Error; err != nil {
		return fmt.Errorf("写入类型字典失败: %w", err)
	}
	return nil
}

// New 返回基于同一个数据库连接的全部存储接口
func New(db *gorm.DB) storage.Storage {
	return storage.Storage{
		Users:   &UserStore{db: db},
		Friends: &FriendGraph{db: db},
		Films:   &FilmStore{db: db},
		Likes:   &LikeStore{db: db},
		Genres:  &GenreStore{db: db},
		Ratings: &RatingStore{db: db},
	}
}

// translate 把 gorm 的记录不存在错误转换为 storage.ErrNotFound
func translate(err error, format string, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf(format+": %w", id, storage.ErrNotFound)
	}
	return err
}

func notFound(format string, id int64) error {
	return fmt.Errorf(format+": %w", id, storage.ErrNotFound)
}
