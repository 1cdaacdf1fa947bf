package dto

import (
	"time"

	"taskup/internal/model"
)

// UserSearchQuery 用户搜索请求
type UserSearchQuery struct {
	Keyword string `form:"keyword"`
	Limit   int    `form:"limit"`
}

// UpdateUserRequest 更新个人资料请求
type UpdateUserRequest struct {
	FirstName  *string `json:"first_name" binding:"omitempty,max=50"`
	LastName   *string `json:"last_name" binding:"omitempty,max=50"`
	JobTitle   *string `json:"job_title" binding:"omitempty,max=100"`
	ProfileUrl *string `json:"profile_url" binding:"omitempty,max=255"`
}

// UserResponse 用户信息
type UserResponse struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	JobTitle   *string    `json:"job_title,omitempty"`
	ProfileUrl *string    `json:"profile_url,omitempty"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// UserSimpleResponse 用户精简信息, 嵌入成员/干系人响应
type UserSimpleResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// ToUserResponse 模型转响应
func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Role:       u.Role,
		JobTitle:   u.JobTitle,
		ProfileUrl: u.ProfileUrl,
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
	}
}

// ToUserSimpleResponse 模型转精简响应
func ToUserSimpleResponse(u *model.User) *UserSimpleResponse {
	if u == nil {
		return nil
	}
	return &UserSimpleResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
