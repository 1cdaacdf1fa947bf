package dto

import (
	"time"

	"taskup/internal/model"
)

// AttachmentQuery 附件查询参数
type AttachmentQuery struct {
	EntityType string `form:"entity_type" binding:"required,oneof=project task"`
	EntityID   string `form:"entity_id" binding:"required,uuid4"`
}

// AttachmentResponse 附件响应
type AttachmentResponse struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	EntityType  string    `json:"entity_type"`
	EntityID    string    `json:"entity_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// DownloadURLResponse 预签名下载地址响应
type DownloadURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToAttachmentResponse 模型转响应
func ToAttachmentResponse(a *model.Attachment) *AttachmentResponse {
	return &AttachmentResponse{
		ID:          a.ID,
		ProjectID:   a.ProjectId,
		EntityType:  a.EntityType,
		EntityID:    a.EntityId,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		Size:        a.Size,
		UploadedBy:  a.UploadedBy,
		CreatedAt:   a.CreatedAt,
	}
}
