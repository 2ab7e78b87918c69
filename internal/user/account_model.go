package user

import (
	"filmorate/internal/model"
	"filmorate/internal/validation"
)

// NewUserRequest 创建用户请求
type NewUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Login    string `json:"login" binding:"required,nowhitespace"`
	Name     string `json:"name"`
	Birthday string `json:"birthday" binding:"omitempty,datetime=2006-01-02,notfuture"`
}

// UpdateUserRequest 更新用户请求，除 id 外均可省略
type UpdateUserRequest struct {
	ID       *int64 `json:"id" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Login    string `json:"login" binding:"omitempty,nowhitespace"`
	Name     string `json:"name"`
	Birthday string `json:"birthday" binding:"omitempty,datetime=2006-01-02,notfuture"`
}

// UserResponse 用户信息响应
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday string `json:"birthday,omitempty"`
}

func (r *NewUserRequest) toModel() (model.User, error) {
	birthday, err := validation.ParseDate(r.Birthday)
	if err != nil {
		return model.User{}, err
	}
	return model.User{
		Email:    r.Email,
		Login:    r.Login,
		Name:     r.Name,
		Birthday: birthday,
	}, nil
}

func (r *UpdateUserRequest) toModel() (model.User, error) {
	birthday, err := validation.ParseDate(r.Birthday)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{
		Email:    r.Email,
		Login:    r.Login,
		Name:     r.Name,
		Birthday: birthday,
	}
	if r.ID != nil {
		u.ID = *r.ID
	}
	return u, nil
}

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: validation.FormatDate(u.Birthday),
	}
}

func newUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	return out
}
