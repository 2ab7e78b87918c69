package memory

import (
	"context"

	"filmorate/internal/constants"
	"filmorate/internal/model"
	"filmorate/internal/storage"
)

type userStore struct {
	*Store
}

func (s *userStore) FindAll(ctx context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		out = append(out, s.users[id].Clone())
	}
	return out, nil
}

func (s *userStore) FindByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, notFound(constants.ErrUserNotFound, id)
	}
	u = u.Clone()
	return &u, nil
}

func (s *userStore) Create(ctx context.Context, user model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user = user.Clone()
	user.ID = storage.NextID(s.users)
	user.DisplayName()
	s.users[user.ID] = user
	s.userOrder = append(s.userOrder, user.ID)

	out := user.Clone()
	return &out, nil
}

func (s *userStore) Update(ctx context.Context, user model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return nil, notFound(constants.ErrUserNotFound, user.ID)
	}
	existing.Merge(user)
	s.users[existing.ID] = existing

	out := existing.Clone()
	return &out, nil
}

type friendGraph struct {
	*Store
}

func (s *friendGraph) AddFriend(ctx context.Context, id, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.friends[edge{id, friendID}] = constants.FriendshipStatusConfirmed
	reverse := edge{friendID, id}
	if _, ok := s.friends[reverse]; !ok {
		s.friends[reverse] = constants.FriendshipStatusPending
	}
	return nil
}

func (s *friendGraph) DeleteFriend(ctx context.Context, id, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.friends, edge{id, friendID})
	return nil
}

func (s *friendGraph) FriendsOf(ctx context.Context, id int64) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedUsers(s.confirmed(id)), nil
}

func (s *friendGraph) CommonFriends(ctx context.Context, id, otherID int64) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	other := make(map[int64]struct{})
	for _, fid := range s.confirmed(otherID) {
		other[fid] = struct{}{}
	}
	var common []int64
	for _, fid := range s.confirmed(id) {
		if _, ok := other[fid]; ok {
			common = append(common, fid)
		}
	}
	return s.sortedUsers(common), nil
}

// confirmed 返回 id 发出的已确认边的目标，调用方需持有读锁
func (s *friendGraph) confirmed(id int64) []int64 {
	var ids []int64
	for e, ok := range s.friends {
		if ok && e.from == id {
			ids = append(ids, e.to)
		}
	}
	return ids
}
