package model

import "time"

const UserTableName = "users"

// User 用户模型
type User struct {
	BaseModel
	FirstName  string     `gorm:"size:50;not null" json:"first_name"`
	LastName   string     `gorm:"size:50;not null" json:"last_name"`
	Email      string     `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password   string     `gorm:"size:255;not null" json:"-"` // bcrypt哈希, 不返回到前端
	Role       string     `gorm:"size:50;not null;default:User" json:"role"`
	JobTitle   *string    `gorm:"size:100" json:"job_title,omitempty"`
	ProfileUrl *string    `gorm:"size:255" json:"profile_url,omitempty"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	IsDeleted  bool       `gorm:"not null;default:false;index" json:"is_deleted"`
}

func (User) TableName() string {
	return UserTableName
}

// FullName 用户全名
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
