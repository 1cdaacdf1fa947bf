package dto

import (
	"time"

	"taskup/internal/model"
)

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required,max=100"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	TotalBudget float64    `json:"total_budget" binding:"omitempty,min=0"`
}

// UpdateProjectRequest 更新项目请求, 仅所有者可调用
type UpdateProjectRequest struct {
	Name        *string    `json:"name" binding:"omitempty,max=100"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	TotalBudget *float64   `json:"total_budget" binding:"omitempty,min=0"`
}

// AddMemberRequest 添加项目成员请求
type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid4"`
	Role   string `json:"role" binding:"omitempty,max=50"`
}

// MemberParam 成员路径参数
type MemberParam struct {
	ID     string `uri:"id" binding:"required,uuid4"`
	UserID string `uri:"user_id" binding:"required,uuid4"`
}

// ProjectResponse 项目响应
type ProjectResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     *string    `json:"description,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Progress        int        `json:"progress"`
	TotalBudget     float64    `json:"total_budget"`
	RemainingBudget float64    `json:"remaining_budget"`
	OwnerID         string     `json:"owner_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ProjectMemberResponse 项目成员响应
type ProjectMemberResponse struct {
	ID        string              `json:"id"`
	ProjectID string              `json:"project_id"`
	Role      string              `json:"role"`
	User      *UserSimpleResponse `json:"user,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// DeleteProjectResponse 项目删除响应
type DeleteProjectResponse struct {
	AlreadyDeleted bool `json:"already_deleted"`
}

// ToProjectResponse 模型转响应
func ToProjectResponse(p *model.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Deadline:        p.Deadline,
		Progress:        p.Progress,
		TotalBudget:     p.TotalBudget,
		RemainingBudget: p.RemainingBudget,
		OwnerID:         p.OwnerId,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToProjectMemberResponse 模型转响应
func ToProjectMemberResponse(m *model.ProjectMember) *ProjectMemberResponse {
	return &ProjectMemberResponse{
		ID:        m.ID,
		ProjectID: m.ProjectId,
		Role:      m.Role,
		User:      ToUserSimpleResponse(m.User),
		CreatedAt: m.CreatedAt,
	}
}
