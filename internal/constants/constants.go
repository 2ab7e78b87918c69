package constants

import (
	"errors"
	"time"
)

// 存储后端
const (
	StorageMemory   = "memory"
	StorageDatabase = "database"
)

// 数据库驱动
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// 好友关系状态常量
const (
	FriendshipStatusPending   = false // 自动创建的反向关系，待确认
	FriendshipStatusConfirmed = true  // 用户主动添加的关系
)

// 业务校验常量
const (
	DefaultPopularCount = 10
	DateLayout          = "2006-01-02"
)

// MinReleaseDate 电影上映日期下限（首次公开放映）
var MinReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// 错误类型
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// 错误信息
const (
	ErrUserNotFound   = "用户 id=%d 不存在"
	ErrFilmNotFound   = "电影 id=%d 不存在"
	ErrGenreNotFound  = "类型 id=%d 不存在"
	ErrRatingNotFound = "MPA 分级 id=%d 不存在"
	ErrIDRequired     = "必须指定 id"
	ErrRatingRequired = "必须指定 MPA 分级"
	ErrCountPositive  = "count 必须大于零"
)
