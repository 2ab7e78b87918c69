package user

import (
	"context"
	"fmt"

	"filmorate/internal/constants"
	"filmorate/internal/logging"
	"filmorate/internal/metrics"
	"filmorate/internal/model"
	"filmorate/internal/storage"
)

// AccountService 用户与好友关系服务
type AccountService struct {
	users   storage.UserStorage
	friends storage.FriendGraph
}

// NewAccountService 创建用户服务
func NewAccountService(users storage.UserStorage, friends storage.FriendGraph) *AccountService {
	return &AccountService{
		users:   users,
		friends: friends,
	}
}

// FindAll 查询全部用户
func (s *AccountService) FindAll(ctx context.Context) ([]model.User, error) {
	return s.users.FindAll(ctx)
}

// FindByID 按ID查询用户
func (s *AccountService) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return s.users.FindByID(ctx, id)
}

// Create 创建用户，名字为空时使用登录名
func (s *AccountService) Create(ctx context.Context, u model.User) (*model.User, error) {
	u.ID = 0
	u.DisplayName()

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	metrics.EntitiesCreated.WithLabelValues("user").Inc()
	logging.Ctx(ctx).Info().
		Int64("user_id", created.ID).
		Str("login", created.Login).
		Msg("用户已创建")
	return created, nil
}

// Update 合并更新用户
func (s *AccountService) Update(ctx context.Context, u model.User) (*model.User, error) {
	if u.ID == 0 {
		return nil, fmt.Errorf("%w: %s", constants.ErrValidation, constants.ErrIDRequired)
	}

	updated, err := s.users.Update(ctx, u)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Int64("user_id", updated.ID).Msg("用户已更新")
	return updated, nil
}

// requireUser 校验用户存在
func (s *AccountService) requireUser(ctx context.Context, id int64) error {
	_, err := s.users.FindByID(ctx, id)
	return err
}

// requireUsers 依次校验多个用户存在
func (s *AccountService) requireUsers(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		if err := s.requireUser(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// AddFriend 添加好友。id->friendID 记为已确认，反向关系不存在时记为待确认
func (s *AccountService) AddFriend(ctx context.Context, id, friendID int64) error {
	logger := logging.Ctx(ctx)
	logger.Debug().Int64("id", id).Int64("friend_id", friendID).Msg("addFriend")

	if err := s.requireUsers(ctx, id, friendID); err != nil {
		return err
	}
	if err := s.friends.AddFriend(ctx, id, friendID); err != nil {
		return err
	}

	metrics.FriendshipOps.WithLabelValues("add").Inc()
	logger.Info().Int64("id", id).Int64("friend_id", friendID).Msg("好友已添加")
	return nil
}

// DeleteFriend 删除 id->friendID 方向的好友关系，反向关系保持不变
func (s *AccountService) DeleteFriend(ctx context.Context, id, friendID int64) error {
	logger := logging.Ctx(ctx)
	logger.Debug().Int64("id", id).Int64("friend_id", friendID).Msg("deleteFriend")

	if err := s.requireUsers(ctx, id, friendID); err != nil {
		return err
	}
	if err := s.friends.DeleteFriend(ctx, id, friendID); err != nil {
		return err
	}

	metrics.FriendshipOps.WithLabelValues("delete").Inc()
	logger.Info().Int64("id", id).Int64("friend_id", friendID).Msg("好友已删除")
	return nil
}

// GetFriends 获取已确认的好友列表
func (s *AccountService) GetFriends(ctx context.Context, id int64) ([]model.User, error) {
	logging.Ctx(ctx).Debug().Int64("id", id).Msg("friendsOf")

	if err := s.requireUser(ctx, id); err != nil {
		return nil, err
	}
	return s.friends.FriendsOf(ctx, id)
}

// GetCommonFriends 获取共同好友
func (s *AccountService) GetCommonFriends(ctx context.Context, id, otherID int64) ([]model.User, error) {
	logging.Ctx(ctx).Debug().Int64("id", id).Int64("other_id", otherID).Msg("commonFriends")

	if err := s.requireUsers(ctx, id, otherID); err != nil {
		return nil, err
	}
	return s.friends.CommonFriends(ctx, id, otherID)
}
