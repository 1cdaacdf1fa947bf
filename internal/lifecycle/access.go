package lifecycle

import (
	"gorm.io/gorm"

	"taskup/internal/model"
	pkgErrors "taskup/pkg/errors"
)

// AccessEngine 项目访问判定。
// 成员可读项目作用域内资源, 结构性变更(删项目/管成员/建团队)仅所有者可做。
// 项目不存在或已删除一律返回 NotFound 而非 false,
// 调用方据此区分"资源不存在"与"无权访问"。
type AccessEngine struct {
	db *gorm.DB
}

// NewAccessEngine 创建AccessEngine
func NewAccessEngine(db *gorm.DB) *AccessEngine {
	return &AccessEngine{db: db}
}

// loadActiveProject 查询存活项目, 缺失或已删除返回 NotFound
func (e *AccessEngine) loadActiveProject(projectId string) (*model.Project, error) {
	var project model.Project
	err := e.db.Where("id = ? AND is_deleted = ?", projectId, false).First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrProjectNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", err)
	}
	return &project, nil
}

// IsOwner 判断用户是否为项目所有者
func (e *AccessEngine) IsOwner(projectId, userId string) (bool, error) {
	project, err := e.loadActiveProject(projectId)
	if err != nil {
		return false, err
	}
	return project.OwnerId == userId, nil
}

// IsMember 判断用户是否为项目存活成员
func (e *AccessEngine) IsMember(projectId, userId string) (bool, error) {
	if _, err := e.loadActiveProject(projectId); err != nil {
		return false, err
	}

	var count int64
	err := e.db.Model(&model.ProjectMember{}).
		Where("project_id = ? AND user_id = ? AND is_deleted = ?", projectId, userId, false).
		Count(&count).Error
	if err != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目成员失败", err)
	}
	return count > 0, nil
}

// HasAccess 所有者或成员均可访问
func (e *AccessEngine) HasAccess(projectId, userId string) (bool, error) {
	project, err := e.loadActiveProject(projectId)
	if err != nil {
		return false, err
	}
	if project.OwnerId == userId {
		return true, nil
	}
	return e.IsMember(projectId, userId)
}

// RequireOwner 非所有者返回 Forbidden
func (e *AccessEngine) RequireOwner(projectId, userId string) error {
	isOwner, err := e.IsOwner(projectId, userId)
	if err != nil {
		return err
	}
	if !isOwner {
		return pkgErrors.ErrNotProjectOwner
	}
	return nil
}

// RequireAccess 所有者与成员之外返回 Forbidden
func (e *AccessEngine) RequireAccess(projectId, userId string) error {
	hasAccess, err := e.HasAccess(projectId, userId)
	if err != nil {
		return err
	}
	if !hasAccess {
		return pkgErrors.ErrNoProjectAccess
	}
	return nil
}
