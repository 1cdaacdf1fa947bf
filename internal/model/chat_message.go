package model

import "time"

const ChatMessageTableName = "chat_messages"

// ChatMessage 项目聊天消息
type ChatMessage struct {
	BaseModel
	ProjectId string    `gorm:"size:36;not null;index" json:"project_id"`
	UserId    string    `gorm:"size:36;not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	SentAt    time.Time `gorm:"not null;autoCreateTime" json:"sent_at"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`

	// Relations
	User *User `gorm:"foreignKey:UserId" json:"user,omitempty"`
}

func (ChatMessage) TableName() string {
	return ChatMessageTableName
}
