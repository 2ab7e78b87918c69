package model

import (
	"strings"
	"time"
)

// User 用户
type User struct {
	ID       int64
	Email    string
	Login    string
	Name     string
	Birthday *time.Time
}

// Rating MPA 分级（只读字典表）
type Rating struct {
	ID   int64
	Name string
}

// Genre 电影类型（只读字典表）
type Genre struct {
	ID   int64
	Name string
}

// Film 电影
type Film struct {
	ID          int64
	Name        string
	Description string
	ReleaseDate *time.Time
	Duration    int
	Mpa         *Rating
	Genres      []Genre // nil 表示未指定
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// DisplayName 名字为空时使用登录名
func (u *User) DisplayName() {
	if blank(u.Name) {
		u.Name = u.Login
	}
}

// Merge 合并 patch 中的非空字段，空字段保持原值
func (u *User) Merge(patch User) {
	if !blank(patch.Email) {
		u.Email = patch.Email
	}
	if !blank(patch.Login) {
		u.Login = patch.Login
	}
	if !blank(patch.Name) {
		u.Name = patch.Name
	}
	if patch.Birthday != nil {
		b := *patch.Birthday
		u.Birthday = &b
	}
	u.DisplayName()
}

// Merge 合并 patch 中的非空字段。类型列表不在这里处理，由类型关联单独替换
func (f *Film) Merge(patch Film) {
	if !blank(patch.Name) {
		f.Name = patch.Name
	}
	if !blank(patch.Description) {
		f.Description = patch.Description
	}
	if patch.ReleaseDate != nil {
		d := *patch.ReleaseDate
		f.ReleaseDate = &d
	}
	if patch.Duration > 0 {
		f.Duration = patch.Duration
	}
	if patch.Mpa != nil {
		r := *patch.Mpa
		f.Mpa = &r
	}
}

// Clone 深拷贝
func (f Film) Clone() Film {
	out := f
	if f.ReleaseDate != nil {
		d := *f.ReleaseDate
		out.ReleaseDate = &d
	}
	if f.Mpa != nil {
		r := *f.Mpa
		out.Mpa = &r
	}
	if f.Genres != nil {
		out.Genres = append([]Genre(nil), f.Genres...)
	}
	return out
}

// Clone 深拷贝
func (u User) Clone() User {
	out := u
	if u.Birthday != nil {
		b := *u.Birthday
		out.Birthday = &b
	}
	return out
}

// GenreIDs 返回去重后的类型ID，保持首次出现的顺序
func (f *Film) GenreIDs() []int64 {
	if f.Genres == nil {
		return nil
	}
	seen := make(map[int64]struct{}, len(f.Genres))
	ids := make([]int64, 0, len(f.Genres))
	for _, g := range f.Genres {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		ids = append(ids, g.ID)
	}
	return ids
}

// RatingID 返回分级ID，未指定时为 0
func (f *Film) RatingID() int64 {
	if f.Mpa == nil {
		return 0
	}
	return f.Mpa.ID
}
