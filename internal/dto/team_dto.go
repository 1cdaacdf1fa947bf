package dto

import (
	"time"

	"taskup/internal/model"
)

// CreateTeamRequest 创建团队请求, 仅项目所有者可调用
type CreateTeamRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	ProjectID   string  `json:"project_id" binding:"required,uuid4"`
	Description *string `json:"description"`
	ColorIndex  int     `json:"color_index" binding:"omitempty,min=0"`
}

// UpdateTeamRequest 更新团队请求, 仅创建者可调用
type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	ColorIndex  *int    `json:"color_index" binding:"omitempty,min=0"`
}

// TeamResponse 团队响应
type TeamResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ProjectID   string    `json:"project_id"`
	Description *string   `json:"description,omitempty"`
	ColorIndex  int       `json:"color_index"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToTeamResponse 模型转响应
func ToTeamResponse(t *model.Team) *TeamResponse {
	return &TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		ProjectID:   t.ProjectId,
		Description: t.Description,
		ColorIndex:  t.ColorIndex,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
