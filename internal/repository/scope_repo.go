package repository

import (
	"gorm.io/gorm"

	"taskup/internal/model"
	pkgErrors "taskup/pkg/errors"
)

type ScopeRepository interface {
	Create(scope *model.Scope) error
	FindByProject(projectId string) (*model.Scope, error)
	ExistsByProject(projectId string) (bool, error)
	Update(scope *model.Scope) error
}

type scopeRepository struct {
	db *gorm.DB
}

func NewScopeRepository(db *gorm.DB) ScopeRepository {
	return &scopeRepository{db: db}
}

func (r *scopeRepository) Create(scope *model.Scope) error {
	if err := r.db.Create(scope).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建项目范围失败", err)
	}
	return nil
}

func (r *scopeRepository) FindByProject(projectId string) (*model.Scope, error) {
	var scope model.Scope
	err := r.db.Where("project_id = ? AND is_deleted = ?", projectId, false).First(&scope).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目范围失败", err)
	}
	return &scope, nil
}

func (r *scopeRepository) ExistsByProject(projectId string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Scope{}).
		Where("project_id = ? AND is_deleted = ?", projectId, false).
		Count(&count).Error
	if err != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目范围失败", err)
	}
	return count > 0, nil
}

func (r *scopeRepository) Update(scope *model.Scope) error {
	if err := r.db.Save(scope).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新项目范围失败", err)
	}
	return nil
}
