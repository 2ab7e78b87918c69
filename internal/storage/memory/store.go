// Package memory 进程内存储后端。每个 Store 独立持有自己的数据，测试之间互不影响。
package memory

import (
	"fmt"
	"sort"
	"sync"

	"filmorate/internal/model"
	"filmorate/internal/storage"
)

type edge struct {
	from, to int64
}

// Store 内存数据
type Store struct {
	mu sync.RWMutex

	users     map[int64]model.User
	userOrder []int64

	films     map[int64]model.Film // Genres 字段不在这里保存
	filmOrder []int64

	ratings map[int64]model.Rating
	genres  map[int64]model.Genre

	friends    map[edge]bool // 值为是否已确认
	likes      map[int64]map[int64]struct{}
	filmGenres map[int64]map[int64]struct{}
}

// NewStore 创建带默认字典数据的内存存储
func NewStore() *Store {
	s := &Store{
		users:      make(map[int64]model.User),
		films:      make(map[int64]model.Film),
		ratings:    make(map[int64]model.Rating),
		genres:     make(map[int64]model.Genre),
		friends:    make(map[edge]bool),
		likes:      make(map[int64]map[int64]struct{}),
		filmGenres: make(map[int64]map[int64]struct{}),
	}
	for _, r := range model.DefaultRatings {
		s.ratings[r.ID] = r
	}
	for _, g := range model.DefaultGenres {
		s.genres[g.ID] = g
	}
	return s
}

// NewStorage 返回基于同一份内存数据的全部存储接口
func NewStorage() storage.Storage {
	s := NewStore()
	return storage.Storage{
		Users:   &userStore{s},
		Friends: &friendGraph{s},
		Films:   &filmStore{s},
		Likes:   &likeStore{s},
		Genres:  &genreStore{s},
		Ratings: &ratingStore{s},
	}
}

func notFound(format string, id int64) error {
	return fmt.Errorf(format+": %w", id, storage.ErrNotFound)
}

// film 读取电影并补全分级名称，调用方需持有读锁
func (s *Store) film(id int64) (model.Film, bool) {
	f, ok := s.films[id]
	if !ok {
		return model.Film{}, false
	}
	f = f.Clone()
	if f.Mpa != nil {
		if r, ok := s.ratings[f.Mpa.ID]; ok {
			f.Mpa.Name = r.Name
		}
	}
	return f, true
}

func (s *Store) sortedUsers(ids []int64) []model.User {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u.Clone())
		}
	}
	return out
}
