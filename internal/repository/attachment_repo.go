package repository

import (
	"gorm.io/gorm"

	"taskup/internal/model"
	pkgErrors "taskup/pkg/errors"
)

type AttachmentRepository interface {
	Create(attachment *model.Attachment) error
	FindByID(id string) (*model.Attachment, error)
	ListByEntity(entityType, entityId string) ([]*model.Attachment, error)
	UpdateObjectPath(id, objectPath string) error
	MarkDeleted(id string) error
}

type attachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(attachment *model.Attachment) error {
	if err := r.db.Create(attachment).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建附件记录失败", err)
	}
	return nil
}

func (r *attachmentRepository) FindByID(id string) (*model.Attachment, error) {
	var attachment model.Attachment
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&attachment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询附件失败", err)
	}
	return &attachment, nil
}

func (r *attachmentRepository) ListByEntity(entityType, entityId string) ([]*model.Attachment, error) {
	var attachments []*model.Attachment
	err := r.db.Where("entity_type = ? AND entity_id = ? AND is_deleted = ?", entityType, entityId, false).
		Order("created_at DESC").
		Find(&attachments).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询附件列表失败", err)
	}
	return attachments, nil
}

func (r *attachmentRepository) UpdateObjectPath(id, objectPath string) error {
	err := r.db.Model(&model.Attachment{}).
		Where("id = ?", id).
		Update("object_path", objectPath).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新附件路径失败", err)
	}
	return nil
}

func (r *attachmentRepository) MarkDeleted(id string) error {
	res := r.db.Model(&model.Attachment{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除附件失败", res.Error)
	}
	if res.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}
