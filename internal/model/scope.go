package model

import (
	"time"

	"gorm.io/datatypes"
)

const ScopeTableName = "project_scopes"

// Scope 项目范围说明, 与项目一对一
type Scope struct {
	BaseModel
	ProjectId     string     `gorm:"size:36;not null;uniqueIndex" json:"project_id"`
	IncludedItems *string    `gorm:"type:text" json:"included_items,omitempty"` // 换行分隔
	ExcludedItems *string    `gorm:"type:text" json:"excluded_items,omitempty"` // 换行分隔
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`

	// 结构化子文档, 后期Schema引入
	ManagementPlan      datatypes.JSON `gorm:"type:json" json:"management_plan,omitempty"`
	RequirementDocument datatypes.JSON `gorm:"type:json" json:"requirement_document,omitempty"`
	ScopeStatement      datatypes.JSON `gorm:"type:json" json:"scope_statement,omitempty"`
	WorkBreakdown       datatypes.JSON `gorm:"type:json" json:"work_breakdown,omitempty"`

	IsDeleted bool `gorm:"not null;default:false;index" json:"is_deleted"`
}

func (Scope) TableName() string {
	return ScopeTableName
}
