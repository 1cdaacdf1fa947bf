package repository

import (
	"gorm.io/gorm"

	"taskup/internal/model"
	pkgErrors "taskup/pkg/errors"
)

type ProjectMemberRepository interface {
	Create(member *model.ProjectMember) error
	FindActive(projectId, userId string) (*model.ProjectMember, error)
	ListByProject(projectId string) ([]*model.ProjectMember, error)
	ExistsActive(projectId, userId string) (bool, error)
}

type projectMemberRepository struct {
	db *gorm.DB
}

func NewProjectMemberRepository(db *gorm.DB) ProjectMemberRepository {
	return &projectMemberRepository{db: db}
}

func (r *projectMemberRepository) Create(member *model.ProjectMember) error {
	if err := r.db.Create(member).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "添加项目成员失败", err)
	}
	return nil
}

func (r *projectMemberRepository) FindActive(projectId, userId string) (*model.ProjectMember, error) {
	var member model.ProjectMember
	err := r.db.Where("project_id = ? AND user_id = ? AND is_deleted = ?", projectId, userId, false).
		First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目成员失败", err)
	}
	return &member, nil
}

func (r *projectMemberRepository) ListByProject(projectId string) ([]*model.ProjectMember, error) {
	var members []*model.ProjectMember
	err := r.db.Preload("User").
		Where("project_id = ? AND is_deleted = ?", projectId, false).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目成员列表失败", err)
	}
	return members, nil
}

func (r *projectMemberRepository) ExistsActive(projectId, userId string) (bool, error) {
	var count int64
	err := r.db.Model(&model.ProjectMember{}).
		Where("project_id = ? AND user_id = ? AND is_deleted = ?", projectId, userId, false).
		Count(&count).Error
	if err != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目成员失败", err)
	}
	return count > 0, nil
}
