package model

const TeamTableName = "teams"
const TeamMemberTableName = "team_members"

// Team 团队模型, 归属于一个项目
type Team struct {
	BaseModel
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	ColorIndex  int     `gorm:"not null;default:0" json:"color_index"` // 前端配色
	ProjectId   string  `gorm:"size:36;not null;index" json:"project_id"`
	CreatedBy   string  `gorm:"size:36;not null" json:"created_by"`
	IsDeleted   bool    `gorm:"not null;default:false;index" json:"is_deleted"`
}

func (Team) TableName() string {
	return TeamTableName
}

// TeamMember 团队成员
// 软删除约定与其他实体相反: IsActive=false 表示已移除
type TeamMember struct {
	BaseModel
	TeamId   string `gorm:"size:36;not null;index:idx_team_member,priority:1" json:"team_id"`
	UserId   string `gorm:"size:36;not null;index:idx_team_member,priority:2" json:"user_id"`
	Role     string `gorm:"size:50;not null;default:member" json:"role"`
	IsLeader bool   `gorm:"not null;default:false" json:"is_leader"`
	IsActive bool   `gorm:"not null;default:true;index" json:"is_active"`

	// Relations
	Team *Team `gorm:"foreignKey:TeamId" json:"team,omitempty"`
	User *User `gorm:"foreignKey:UserId" json:"user,omitempty"`
}

func (TeamMember) TableName() string {
	return TeamMemberTableName
}
