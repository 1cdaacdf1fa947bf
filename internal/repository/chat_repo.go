package repository

import (
	"gorm.io/gorm"

	"taskup/internal/model"
	pkgErrors "taskup/pkg/errors"
)

type ChatRepository interface {
	Create(message *model.ChatMessage) error
	// ListRecent 返回项目最近limit条消息, 按发送时间升序
	ListRecent(projectId string, limit int) ([]*model.ChatMessage, error)
	MarkRead(projectId, userId string) error
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(message *model.ChatMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "保存聊天消息失败", err)
	}
	return nil
}

func (r *chatRepository) ListRecent(projectId string, limit int) ([]*model.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	// 先按时间倒序取最近N条, 再反转为升序返回
	var messages []*model.ChatMessage
	err := r.db.Preload("User").
		Where("project_id = ?", projectId).
		Order("sent_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询聊天记录失败", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *chatRepository) MarkRead(projectId, userId string) error {
	err := r.db.Model(&model.ChatMessage{}).
		Where("project_id = ? AND user_id != ? AND is_read = ?", projectId, userId, false).
		Update("is_read", true).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新消息已读状态失败", err)
	}
	return nil
}
