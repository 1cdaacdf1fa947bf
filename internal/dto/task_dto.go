package dto

import (
	"time"

	"taskup/internal/model"
)

// CreateTaskRequest 创建任务请求
// TeamID 与 UserID 互斥, 同时出现将被拒绝
type CreateTaskRequest struct {
	ProjectID        string     `json:"project_id" binding:"required,uuid4"`
	Title            string     `json:"title" binding:"required,max=100"`
	Description      *string    `json:"description"`
	TeamID           *string    `json:"team_id" binding:"omitempty,uuid4"`
	UserID           *string    `json:"user_id" binding:"omitempty,uuid4"`
	ParentTaskID     *string    `json:"parent_task_id" binding:"omitempty,uuid4"`
	Cost             float64    `json:"cost" binding:"omitempty,min=0"`
	Status           string     `json:"status" binding:"omitempty,max=50"`
	StatusColorHex   *string    `json:"status_color_hex" binding:"omitempty,len=7"`
	Priority         string     `json:"priority" binding:"omitempty,max=50"`
	PriorityColorHex *string    `json:"priority_color_hex" binding:"omitempty,len=7"`
	Deadline         *time.Time `json:"deadline"`
}

// UpdateTaskRequest 更新任务请求, 仅创建者可调用
type UpdateTaskRequest struct {
	Title            *string    `json:"title" binding:"omitempty,max=100"`
	Description      *string    `json:"description"`
	TeamID           *string    `json:"team_id" binding:"omitempty,uuid4"`
	UserID           *string    `json:"user_id" binding:"omitempty,uuid4"`
	Cost             *float64   `json:"cost" binding:"omitempty,min=0"`
	Status           *string    `json:"status" binding:"omitempty,max=50"`
	StatusColorHex   *string    `json:"status_color_hex" binding:"omitempty,len=7"`
	Priority         *string    `json:"priority" binding:"omitempty,max=50"`
	PriorityColorHex *string    `json:"priority_color_hex" binding:"omitempty,len=7"`
	Deadline         *time.Time `json:"deadline"`
}

// CompleteTaskRequest 完成状态变更请求
type CompleteTaskRequest struct {
	Completed bool `json:"completed"`
}

// TaskResponse 任务响应
type TaskResponse struct {
	ID               string     `json:"id"`
	ProjectID        string     `json:"project_id"`
	TeamID           *string    `json:"team_id,omitempty"`
	UserID           *string    `json:"user_id,omitempty"`
	CreatedBy        string     `json:"created_by"`
	Title            string     `json:"title"`
	Description      *string    `json:"description,omitempty"`
	Cost             float64    `json:"cost"`
	Status           string     `json:"status"`
	StatusColorHex   *string    `json:"status_color_hex,omitempty"`
	Priority         string     `json:"priority"`
	PriorityColorHex *string    `json:"priority_color_hex,omitempty"`
	ParentTaskID     *string    `json:"parent_task_id,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Completed        bool       `json:"completed"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ToTaskResponse 模型转响应
func ToTaskResponse(t *model.Task) *TaskResponse {
	return &TaskResponse{
		ID:               t.ID,
		ProjectID:        t.ProjectId,
		TeamID:           t.TeamId,
		UserID:           t.UserId,
		CreatedBy:        t.CreatedBy,
		Title:            t.Title,
		Description:      t.Description,
		Cost:             t.Cost,
		Status:           t.Status,
		StatusColorHex:   t.StatusColorHex,
		Priority:         t.Priority,
		PriorityColorHex: t.PriorityColorHex,
		ParentTaskID:     t.ParentTaskId,
		Deadline:         t.Deadline,
		Completed:        t.Completed,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
