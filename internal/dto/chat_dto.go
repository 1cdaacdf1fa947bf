package dto

import (
	"time"

	"taskup/internal/model"
)

// ChatInbound 客户端发来的消息帧
type ChatInbound struct {
	Content string `json:"content"`
}

// ChatMessageResponse 聊天消息帧, 历史回放与实时广播共用
type ChatMessageResponse struct {
	ID        string              `json:"id"`
	ProjectID string              `json:"project_id"`
	UserID    string              `json:"user_id"`
	Content   string              `json:"content"`
	SentAt    time.Time           `json:"sent_at"`
	User      *UserSimpleResponse `json:"user,omitempty"`
}

// ToChatMessageResponse 模型转响应
func ToChatMessageResponse(m *model.ChatMessage) *ChatMessageResponse {
	return &ChatMessageResponse{
		ID:        m.ID,
		ProjectID: m.ProjectId,
		UserID:    m.UserId,
		Content:   m.Content,
		SentAt:    m.SentAt,
		User:      ToUserSimpleResponse(m.User),
	}
}
