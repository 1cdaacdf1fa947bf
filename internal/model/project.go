package model

import "time"

const ProjectTableName = "projects"
const ProjectMemberTableName = "project_members"
const StakeholderTableName = "project_stakeholders"

// Project 项目模型
// OwnerId 创建后不可变更, 破坏性操作仅所有者可执行
type Project struct {
	BaseModel
	Name            string     `gorm:"size:100;not null" json:"name"`
	Description     *string    `gorm:"type:text" json:"description,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Progress        int        `gorm:"not null;default:0" json:"progress"`
	TotalBudget     float64    `gorm:"type:decimal(12,2);not null;default:0" json:"total_budget"`
	RemainingBudget float64    `gorm:"type:decimal(12,2);not null;default:0" json:"remaining_budget"`
	OwnerId         string     `gorm:"size:36;not null;index" json:"owner_id"`
	IsDeleted       bool       `gorm:"not null;default:false;index" json:"is_deleted"`
}

func (Project) TableName() string {
	return ProjectTableName
}

// ProjectMember 项目成员, 区别于所有者的参与关系
type ProjectMember struct {
	BaseModel
	ProjectId string `gorm:"size:36;not null;index:idx_project_member,priority:1" json:"project_id"`
	UserId    string `gorm:"size:36;not null;index:idx_project_member,priority:2" json:"user_id"`
	Role      string `gorm:"size:50;not null;default:member" json:"role"`
	IsDeleted bool   `gorm:"not null;default:false;index" json:"is_deleted"`

	// Relations
	User *User `gorm:"foreignKey:UserId" json:"user,omitempty"`
}

func (ProjectMember) TableName() string {
	return ProjectMemberTableName
}

// Stakeholder 项目干系人, Percentage约定在[0,100]内
type Stakeholder struct {
	BaseModel
	ProjectId  string  `gorm:"size:36;not null;index" json:"project_id"`
	UserId     string  `gorm:"size:36;not null;index" json:"user_id"`
	Role       *string `gorm:"size:100" json:"role,omitempty"`
	Percentage float64 `gorm:"not null;default:0" json:"percentage"`
	IsDeleted  bool    `gorm:"not null;default:false;index" json:"is_deleted"`

	// Relations
	User *User `gorm:"foreignKey:UserId" json:"user,omitempty"`
}

func (Stakeholder) TableName() string {
	return StakeholderTableName
}
