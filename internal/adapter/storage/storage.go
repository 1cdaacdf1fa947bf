package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"taskup/internal/pkg/config"
	pkgErrors "taskup/pkg/errors"
)

// ObjectStorage 附件对象存储接口
type ObjectStorage interface {
	Upload(ctx context.Context, objectPath string, reader io.Reader, size int64, contentType string) error
	PresignedDownloadURL(ctx context.Context, objectPath, fileName string) (string, time.Time, error)
	Remove(ctx context.Context, objectPath string) error
}

// minioStorage MinIO/S3兼容实现
type minioStorage struct {
	client *minio.Client
	cfg    *config.StorageConfig
}

func NewMinioStorage(cfg *config.StorageConfig) (ObjectStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化对象存储客户端失败: %w", err)
	}
	return &minioStorage{client: client, cfg: cfg}, nil
}

// ObjectPath 生成附件对象路径
func ObjectPath(basePath, projectId, attachmentId, fileName string) string {
	return path.Join(basePath, projectId, attachmentId+"_"+fileName)
}

func (s *minioStorage) Upload(ctx context.Context, objectPath string, reader io.Reader, size int64, contentType string) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "检查存储桶失败", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeInternalError, "创建存储桶失败", err)
		}
	}

	_, err = s.client.PutObject(ctx, s.cfg.Bucket, objectPath, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "上传附件失败", err)
	}
	return nil
}

// PresignedDownloadURL 生成限时下载链接, 附带原始文件名
func (s *minioStorage) PresignedDownloadURL(ctx context.Context, objectPath, fileName string) (string, time.Time, error) {
	expire := time.Duration(s.cfg.URLExpire) * time.Second
	if expire <= 0 {
		expire = 15 * time.Minute
	}

	reqParams := make(url.Values)
	reqParams.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	u, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, objectPath, expire, reqParams)
	if err != nil {
		return "", time.Time{}, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成下载链接失败", err)
	}
	return u.String(), time.Now().Add(expire), nil
}

func (s *minioStorage) Remove(ctx context.Context, objectPath string) error {
	err := s.client.RemoveObject(ctx, s.cfg.Bucket, objectPath, minio.RemoveObjectOptions{})
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "删除附件对象失败", err)
	}
	return nil
}
