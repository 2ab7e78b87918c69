package dbstore

import (
	"context"

	"filmorate/internal/constants"
	"filmorate/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserStore 用户表
type UserStore struct {
	db *gorm.DB
}

func (r userRow) toModel() model.User {
	return model.User{
		ID:       r.ID,
		Email:    r.Email,
		Login:    r.Login,
		Name:     r.Name,
		Birthday: r.Birthday,
	}
}

func newUserRow(u model.User) userRow {
	return userRow{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: u.Birthday,
	}
}

func usersFromRows(rows []userRow) []model.User {
	users := make([]model.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.toModel())
	}
	return users
}

// FindAll 查询全部用户
func (s *UserStore) FindAll(ctx context.Context) ([]model.User, error) {
	var rows []userRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return usersFromRows(rows), nil
}

// FindByID 按ID查询用户
func (s *UserStore) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var row userRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(err, constants.ErrUserNotFound, id)
	}
	u := row.toModel()
	return &u, nil
}

// Create 创建用户，ID由数据库自增分配
func (s *UserStore) Create(ctx context.Context, user model.User) (*model.User, error) {
	user.DisplayName()
	row := newUserRow(user)
	row.ID = 0
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	u := row.toModel()
	return &u, nil
}

// Update 合并非空字段后保存
func (s *UserStore) Update(ctx context.Context, user model.User) (*model.User, error) {
	var merged model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row userRow
		if err := tx.First(&row, "id = ?", user.ID).Error; err != nil {
			return translate(err, constants.ErrUserNotFound, user.ID)
		}
		merged = row.toModel()
		merged.Merge(user)
		next := newUserRow(merged)
		return tx.Save(&next).Error
	})
	if err != nil {
		return nil, err
	}
	return &merged, nil
}

// FriendGraph user_friends 表上的有向好友关系
type FriendGraph struct {
	db *gorm.DB
}

// AddFriend 写入已确认的 id->friendID，并在不存在时写入未确认的反向边
func (g *FriendGraph) AddFriend(ctx context.Context, id, friendID int64) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		forward := friendRow{UserID: id, FriendID: friendID, Confirmed: constants.FriendshipStatusConfirmed}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "friend_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"confirmed": true}),
		}).Create(&forward).Error; err != nil {
			return err
		}

		reverse := friendRow{UserID: friendID, FriendID: id, Confirmed: constants.FriendshipStatusPending}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&reverse).Error
	})
}

// DeleteFriend 只删除 id->friendID 这一条边
func (g *FriendGraph) DeleteFriend(ctx context.Context, id, friendID int64) error {
	return g.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", id, friendID).
		Delete(&friendRow{}).Error
}

// FriendsOf 查询已确认的好友
func (g *FriendGraph) FriendsOf(ctx context.Context, id int64) ([]model.User, error) {
	var rows []userRow
	err := g.db.WithContext(ctx).
		Table("users u").
		Select("u.*").
		Joins("JOIN user_friends uf ON u.id = uf.friend_id").
		Where("uf.user_id = ? AND uf.confirmed = ?", id, true).
		Order("u.id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return usersFromRows(rows), nil
}

// CommonFriends 查询两个用户的共同好友
func (g *FriendGraph) CommonFriends(ctx context.Context, id, otherID int64) ([]model.User, error) {
	var rows []userRow
	err := g.db.WithContext(ctx).
		Table("users u").
		Select("u.*").
		Joins("JOIN user_friends uf1 ON uf1.friend_id = u.id AND uf1.confirmed = ?", true).
		Joins("JOIN user_friends uf2 ON uf2.friend_id = u.id AND uf2.confirmed = ?", true).
		Where("uf1.user_id = ? AND uf2.user_id = ?", id, otherID).
		Order("u.id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return usersFromRows(rows), nil
}
