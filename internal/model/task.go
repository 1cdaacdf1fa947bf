package model

import "time"

const TaskTableName = "tasks"

// Task 任务模型
// 分配具有排他性: TeamId 与 UserId 至多其一非空
type Task struct {
	BaseModel
	ProjectId        string     `gorm:"size:36;not null;index" json:"project_id"`
	TeamId           *string    `gorm:"size:36;index" json:"team_id,omitempty"`
	UserId           *string    `gorm:"size:36;index" json:"user_id,omitempty"`
	CreatedBy        string     `gorm:"size:36;not null" json:"created_by"`
	Title            string     `gorm:"size:100;not null" json:"title"`
	Description      *string    `gorm:"type:text" json:"description,omitempty"`
	Cost             float64    `gorm:"not null;default:0" json:"cost"`
	Status           string     `gorm:"size:50;not null" json:"status"`
	StatusColorHex   *string    `gorm:"size:7" json:"status_color_hex,omitempty"`
	Priority         string     `gorm:"size:50;not null" json:"priority"`
	PriorityColorHex *string    `gorm:"size:7" json:"priority_color_hex,omitempty"`
	ParentTaskId     *string    `gorm:"size:36;index" json:"parent_task_id,omitempty"` // 单层子任务
	Deadline         *time.Time `json:"deadline,omitempty"`
	Completed        bool       `gorm:"not null;default:false" json:"completed"`
	IsDeleted        bool       `gorm:"not null;default:false;index" json:"is_deleted"`
}

func (Task) TableName() string {
	return TaskTableName
}

// IsTeamAssigned 是否分配给团队
func (t *Task) IsTeamAssigned() bool {
	return t.TeamId != nil && *t.TeamId != ""
}

// IsUserAssigned 是否直接分配给用户
func (t *Task) IsUserAssigned() bool {
	return t.UserId != nil && *t.UserId != ""
}
