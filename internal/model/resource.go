package model

const ResourceTableName = "resources"

// Resource 项目资源
type Resource struct {
	BaseModel
	ProjectId   string   `gorm:"size:36;not null;index" json:"project_id"`
	Name        string   `gorm:"size:100;not null" json:"name"`
	Type        string   `gorm:"size:50;not null" json:"type"` // Human/Material/Equipment
	Description *string  `gorm:"type:text" json:"description,omitempty"`
	Unit        string   `gorm:"size:50;not null" json:"unit"`
	Total       *float64 `json:"total,omitempty"`
	Available   *float64 `json:"available,omitempty"`
	IsDeleted   bool     `gorm:"not null;default:false;index" json:"is_deleted"`
}

func (Resource) TableName() string {
	return ResourceTableName
}
