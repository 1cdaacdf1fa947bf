package dto

import (
	"time"

	"taskup/internal/model"
)

// CreateResourceRequest 创建资源请求
type CreateResourceRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Type        string   `json:"type" binding:"required,oneof=Human Material Equipment"`
	Description *string  `json:"description"`
	Unit        string   `json:"unit" binding:"required,max=50"`
	Total       *float64 `json:"total" binding:"omitempty,min=0"`
	Available   *float64 `json:"available" binding:"omitempty,min=0"`
}

// UpdateResourceRequest 更新资源请求
type UpdateResourceRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	Type        *string  `json:"type" binding:"omitempty,oneof=Human Material Equipment"`
	Description *string  `json:"description"`
	Unit        *string  `json:"unit" binding:"omitempty,max=50"`
	Total       *float64 `json:"total" binding:"omitempty,min=0"`
	Available   *float64 `json:"available" binding:"omitempty,min=0"`
}

// ResourceResponse 资源响应
type ResourceResponse struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description *string   `json:"description,omitempty"`
	Unit        string    `json:"unit"`
	Total       *float64  `json:"total,omitempty"`
	Available   *float64  `json:"available,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToResourceResponse 模型转响应
func ToResourceResponse(r *model.Resource) *ResourceResponse {
	return &ResourceResponse{
		ID:          r.ID,
		ProjectID:   r.ProjectId,
		Name:        r.Name,
		Type:        r.Type,
		Description: r.Description,
		Unit:        r.Unit,
		Total:       r.Total,
		Available:   r.Available,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
