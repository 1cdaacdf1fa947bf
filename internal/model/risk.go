package model

import "time"

const RiskTableName = "risks"

// Risk 项目风险
type Risk struct {
	BaseModel
	ProjectId      string    `gorm:"size:36;not null;index" json:"project_id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Description    *string   `gorm:"type:text" json:"description,omitempty"`
	Category       string    `gorm:"size:50;not null" json:"category"`
	Probability    float64   `gorm:"not null;default:0" json:"probability"` // [0,1]
	Impact         int       `gorm:"not null;default:1" json:"impact"`
	Severity       float64   `gorm:"not null;default:0" json:"severity"`
	OwnerId        string    `gorm:"size:36;not null" json:"owner_id"`
	Status         string    `gorm:"size:50;not null;default:Open" json:"status"`
	IdentifiedDate time.Time `gorm:"not null;autoCreateTime" json:"identified_date"`
	IsDeleted      bool      `gorm:"not null;default:false;index" json:"is_deleted"`
}

func (Risk) TableName() string {
	return RiskTableName
}
