package dto

import (
	"time"

	"taskup/internal/model"
)

// CreateStakeholderRequest 创建干系人请求
type CreateStakeholderRequest struct {
	UserID     string  `json:"user_id" binding:"required,uuid4"`
	Role       *string `json:"role" binding:"omitempty,max=100"`
	Percentage float64 `json:"percentage" binding:"min=0,max=100"`
}

// UpdateStakeholderRequest 更新干系人请求
type UpdateStakeholderRequest struct {
	Role       *string  `json:"role" binding:"omitempty,max=100"`
	Percentage *float64 `json:"percentage" binding:"omitempty,min=0,max=100"`
}

// StakeholderResponse 干系人响应
type StakeholderResponse struct {
	ID         string              `json:"id"`
	ProjectID  string              `json:"project_id"`
	Role       *string             `json:"role,omitempty"`
	Percentage float64             `json:"percentage"`
	User       *UserSimpleResponse `json:"user,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// ToStakeholderResponse 模型转响应
func ToStakeholderResponse(s *model.Stakeholder) *StakeholderResponse {
	return &StakeholderResponse{
		ID:         s.ID,
		ProjectID:  s.ProjectId,
		Role:       s.Role,
		Percentage: s.Percentage,
		User:       ToUserSimpleResponse(s.User),
		CreatedAt:  s.CreatedAt,
	}
}
