package dto

import (
	"time"

	"gorm.io/datatypes"

	"taskup/internal/model"
)

// CreateScopeRequest 创建项目范围请求, 每个项目至多一份
type CreateScopeRequest struct {
	IncludedItems *string    `json:"included_items"`
	ExcludedItems *string    `json:"excluded_items"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`

	ManagementPlan      datatypes.JSON `json:"management_plan"`
	RequirementDocument datatypes.JSON `json:"requirement_document"`
	ScopeStatement      datatypes.JSON `json:"scope_statement"`
	WorkBreakdown       datatypes.JSON `json:"work_breakdown"`
}

// UpdateScopeRequest 更新项目范围请求
type UpdateScopeRequest struct {
	IncludedItems *string    `json:"included_items"`
	ExcludedItems *string    `json:"excluded_items"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`

	ManagementPlan      datatypes.JSON `json:"management_plan"`
	RequirementDocument datatypes.JSON `json:"requirement_document"`
	ScopeStatement      datatypes.JSON `json:"scope_statement"`
	WorkBreakdown       datatypes.JSON `json:"work_breakdown"`
}

// ScopeResponse 项目范围响应
type ScopeResponse struct {
	ID            string     `json:"id"`
	ProjectID     string     `json:"project_id"`
	IncludedItems *string    `json:"included_items,omitempty"`
	ExcludedItems *string    `json:"excluded_items,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`

	ManagementPlan      datatypes.JSON `json:"management_plan,omitempty"`
	RequirementDocument datatypes.JSON `json:"requirement_document,omitempty"`
	ScopeStatement      datatypes.JSON `json:"scope_statement,omitempty"`
	WorkBreakdown       datatypes.JSON `json:"work_breakdown,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToScopeResponse 模型转响应
func ToScopeResponse(s *model.Scope) *ScopeResponse {
	return &ScopeResponse{
		ID:                  s.ID,
		ProjectID:           s.ProjectId,
		IncludedItems:       s.IncludedItems,
		ExcludedItems:       s.ExcludedItems,
		StartDate:           s.StartDate,
		EndDate:             s.EndDate,
		ManagementPlan:      s.ManagementPlan,
		RequirementDocument: s.RequirementDocument,
		ScopeStatement:      s.ScopeStatement,
		WorkBreakdown:       s.WorkBreakdown,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}
