// Package storage 定义实体存储、好友关系图、点赞和类型关联的统一接口。
// 内存实现和数据库实现遵循同一套语义，进程启动时二选一。
package storage

import (
	"context"

	"filmorate/internal/constants"
	"filmorate/internal/model"
)

// ErrNotFound 实体不存在
var ErrNotFound = constants.ErrNotFound

// UserStorage 用户存储
type UserStorage interface {
	FindAll(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	// Create 忽略传入的ID，分配新ID后保存
	Create(ctx context.Context, user model.User) (*model.User, error)
	// Update 将非空字段合并到已有记录，ID不存在时返回 ErrNotFound
	Update(ctx context.Context, user model.User) (*model.User, error)
}

// FriendGraph 有向好友关系图。
// AddFriend 写入 id->friendID (已确认)，反向边不存在时写入未确认的 friendID->id。
type FriendGraph interface {
	AddFriend(ctx context.Context, id, friendID int64) error
	DeleteFriend(ctx context.Context, id, friendID int64) error
	// FriendsOf 返回已确认的好友，按ID升序
	FriendsOf(ctx context.Context, id int64) ([]model.User, error)
	// CommonFriends 返回两个用户已确认好友的交集，按ID升序
	CommonFriends(ctx context.Context, id, otherID int64) ([]model.User, error)
}

// FilmStorage 电影存储，读取结果带 Mpa，不带 Genres
type FilmStorage interface {
	FindAll(ctx context.Context) ([]model.Film, error)
	FindByID(ctx context.Context, id int64) (*model.Film, error)
	Create(ctx context.Context, film model.Film) (*model.Film, error)
	Update(ctx context.Context, film model.Film) (*model.Film, error)
}

// LikeStorage 点赞关系与热度排行
type LikeStorage interface {
	AddLike(ctx context.Context, filmID, userID int64) error
	DeleteLike(ctx context.Context, filmID, userID int64) error
	// Popular 按点赞数降序返回前 count 部电影，点赞数相同按ID升序
	Popular(ctx context.Context, count int) ([]model.Film, error)
}

// GenreStorage 类型字典与电影-类型关联
type GenreStorage interface {
	FindAll(ctx context.Context) ([]model.Genre, error)
	FindByID(ctx context.Context, id int64) (*model.Genre, error)
	// SetFilmGenres 整体替换电影的类型；任一类型不存在时返回 ErrNotFound 且不修改原关联
	SetFilmGenres(ctx context.Context, filmID int64, genreIDs []int64) error
	// FilmGenres 按类型ID升序返回
	FilmGenres(ctx context.Context, filmID int64) ([]model.Genre, error)
}

// RatingStorage MPA 分级字典
type RatingStorage interface {
	FindAll(ctx context.Context) ([]model.Rating, error)
	FindByID(ctx context.Context, id int64) (*model.Rating, error)
}

// Storage 一个后端提供的全部能力
type Storage struct {
	Users   UserStorage
	Friends FriendGraph
	Films   FilmStorage
	Likes   LikeStorage
	Genres  GenreStorage
	Ratings RatingStorage
}

// NextID 返回比现有最大ID大一的值，空集合返回 1
func NextID[V any](existing map[int64]V) int64 {
	var maxID int64
	for id := range existing {
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}
