package service

import (
	"context"
	"mime/multipart"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"taskup/internal/adapter/storage"
	"taskup/internal/dto"
	"taskup/internal/lifecycle"
	"taskup/internal/model"
	"taskup/internal/pkg/config"
	"taskup/internal/pkg/logger"
	"taskup/internal/repository"
	"taskup/pkg/constants"
	pkgErrors "taskup/pkg/errors"
)

type AttachmentService interface {
	Upload(ctx context.Context, userId, entityType, entityId string, file *multipart.FileHeader) (*dto.AttachmentResponse, error)
	List(userId string, query *dto.AttachmentQuery) ([]*dto.AttachmentResponse, error)
	DownloadURL(ctx context.Context, attachmentId, userId string) (*dto.DownloadURLResponse, error)
	Delete(ctx context.Context, attachmentId, userId string) error
}

type attachmentService struct {
	repo     repository.AttachmentRepository
	taskRepo repository.TaskRepository
	store    storage.ObjectStorage
	access   *lifecycle.AccessEngine
}

func NewAttachmentService(
	repo repository.AttachmentRepository,
	taskRepo repository.TaskRepository,
	store storage.ObjectStorage,
	access *lifecycle.AccessEngine,
) AttachmentService {
	return &attachmentService{
		repo:     repo,
		taskRepo: taskRepo,
		store:    store,
		access:   access,
	}
}

// resolveProject 附件归属实体到项目ID的映射
func (s *attachmentService) resolveProject(entityType, entityId string) (string, error) {
	switch entityType {
	case constants.AttachmentEntityProject:
		return entityId, nil
	case constants.AttachmentEntityTask:
		task, err := s.taskRepo.FindByID(entityId)
		if err != nil {
			return "", err
		}
		return task.ProjectId, nil
	default:
		return "", pkgErrors.New(pkgErrors.CodeValidationError, "不支持的附件归属类型")
	}
}

// Upload 上传附件, 项目所有者与成员均可
func (s *attachmentService) Upload(ctx context.Context, userId, entityType, entityId string, file *multipart.FileHeader) (*dto.AttachmentResponse, error) {
	projectId, err := s.resolveProject(entityType, entityId)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireAccess(projectId, userId); err != nil {
		return nil, err
	}

	attachment := &model.Attachment{
		ProjectId:   projectId,
		EntityType:  entityType,
		EntityId:    entityId,
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		UploadedBy:  userId,
	}
	// 先落库生成ID, 对象路径含附件ID避免同名覆盖
	if err := s.repo.Create(attachment); err != nil {
		return nil, err
	}

	objectPath := storage.ObjectPath(config.GlobalConfig.Storage.BasePath, projectId, attachment.ID, file.Filename)

	src, err := file.Open()
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "读取上传文件失败", err)
	}
	defer src.Close()

	if err := s.store.Upload(ctx, objectPath, src, file.Size, attachment.ContentType); err != nil {
		// 上传失败时回收元数据记录
		if mdErr := s.repo.MarkDeleted(attachment.ID); mdErr != nil {
			logger.Warn("回收附件记录失败", zap.String("attachment_id", attachment.ID), zap.Error(mdErr))
		}
		return nil, err
	}

	// ObjectPath依赖落库后的ID, 单独补写一次
	attachment.ObjectPath = objectPath
	if err := s.repo.UpdateObjectPath(attachment.ID, objectPath); err != nil {
		return nil, err
	}

	return dto.ToAttachmentResponse(attachment), nil
}

// List 查询实体附件列表, 项目所有者与成员均可
func (s *attachmentService) List(userId string, query *dto.AttachmentQuery) ([]*dto.AttachmentResponse, error) {
	projectId, err := s.resolveProject(query.EntityType, query.EntityID)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireAccess(projectId, userId); err != nil {
		return nil, err
	}

	attachments, err := s.repo.ListByEntity(query.EntityType, query.EntityID)
	if err != nil {
		return nil, err
	}
	return lo.Map(attachments, func(a *model.Attachment, _ int) *dto.AttachmentResponse {
		return dto.ToAttachmentResponse(a)
	}), nil
}

// DownloadURL 生成限时下载链接, 项目所有者与成员均可
func (s *attachmentService) DownloadURL(ctx context.Context, attachmentId, userId string) (*dto.DownloadURLResponse, error) {
	attachment, err := s.repo.FindByID(attachmentId)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireAccess(attachment.ProjectId, userId); err != nil {
		return nil, err
	}

	u, expiresAt, err := s.store.PresignedDownloadURL(ctx, attachment.ObjectPath, attachment.FileName)
	if err != nil {
		return nil, err
	}
	return &dto.DownloadURLResponse{URL: u, ExpiresAt: expiresAt}, nil
}

// Delete 软删除附件元数据并移除存储对象, 上传者或项目所有者可调用
func (s *attachmentService) Delete(ctx context.Context, attachmentId, userId string) error {
	attachment, err := s.repo.FindByID(attachmentId)
	if err != nil {
		return err
	}

	if attachment.UploadedBy != userId {
		if err := s.access.RequireOwner(attachment.ProjectId, userId); err != nil {
			return err
		}
	}

	if err := s.repo.MarkDeleted(attachmentId); err != nil {
		return err
	}

	// 对象删除失败不回滚元数据, 留给人工清理
	if err := s.store.Remove(ctx, attachment.ObjectPath); err != nil {
		logger.Warn("删除附件对象失败", zap.String("object_path", attachment.ObjectPath), zap.Error(err))
	}
	return nil
}
