package dto

import (
	"time"

	"taskup/internal/model"
)

// CreateRiskRequest 创建风险请求
type CreateRiskRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
	Category    string  `json:"category" binding:"required,max=50"`
	Probability float64 `json:"probability" binding:"min=0,max=1"`
	Impact      int     `json:"impact" binding:"required,min=1,max=5"`
	OwnerID     string  `json:"owner_id" binding:"required,uuid4"`
	Status      string  `json:"status" binding:"omitempty,max=50"`
}

// UpdateRiskRequest 更新风险请求
type UpdateRiskRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" binding:"omitempty,max=50"`
	Probability *float64 `json:"probability" binding:"omitempty,min=0,max=1"`
	Impact      *int     `json:"impact" binding:"omitempty,min=1,max=5"`
	Status      *string  `json:"status" binding:"omitempty,max=50"`
}

// RiskResponse 风险响应
type RiskResponse struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	Category       string    `json:"category"`
	Probability    float64   `json:"probability"`
	Impact         int       `json:"impact"`
	Severity       float64   `json:"severity"`
	OwnerID        string    `json:"owner_id"`
	Status         string    `json:"status"`
	IdentifiedDate time.Time `json:"identified_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToRiskResponse 模型转响应
func ToRiskResponse(r *model.Risk) *RiskResponse {
	return &RiskResponse{
		ID:             r.ID,
		ProjectID:      r.ProjectId,
		Name:           r.Name,
		Description:    r.Description,
		Category:       r.Category,
		Probability:    r.Probability,
		Impact:         r.Impact,
		Severity:       r.Severity,
		OwnerID:        r.OwnerId,
		Status:         r.Status,
		IdentifiedDate: r.IdentifiedDate,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
