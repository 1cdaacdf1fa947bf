package model

const AttachmentTableName = "attachments"

// Attachment 附件元数据, 文件内容存放在对象存储
type Attachment struct {
	BaseModel
	ProjectId   string `gorm:"size:36;not null;index" json:"project_id"`
	EntityType  string `gorm:"size:20;not null;index:idx_attachment_entity,priority:1" json:"entity_type"` // project/task
	EntityId    string `gorm:"size:36;not null;index:idx_attachment_entity,priority:2" json:"entity_id"`
	FileName    string `gorm:"size:255;not null" json:"file_name"`
	ObjectPath  string `gorm:"size:512;not null" json:"object_path"` // 对象存储内路径
	ContentType string `gorm:"size:100" json:"content_type"`
	Size        int64  `gorm:"not null;default:0" json:"size"`
	UploadedBy  string `gorm:"size:36;not null" json:"uploaded_by"`
	IsDeleted   bool   `gorm:"not null;default:false;index" json:"is_deleted"`
}

func (Attachment) TableName() string {
	return AttachmentTableName
}
