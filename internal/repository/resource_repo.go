package repository

import (
	"gorm.io/gorm"

	"taskup/internal/model"
	pkgErrors "taskup/pkg/errors"
)

type ResourceRepository interface {
	Create(resource *model.Resource) error
	FindByID(id string) (*model.Resource, error)
	ListByProject(projectId string) ([]*model.Resource, error)
	Update(resource *model.Resource) error
	MarkDeleted(id string) error
}

type resourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(resource *model.Resource) error {
	if err := r.db.Create(resource).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建资源失败", err)
	}
	return nil
}

func (r *resourceRepository) FindByID(id string) (*model.Resource, error) {
	var resource model.Resource
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&resource).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询资源失败", err)
	}
	return &resource, nil
}

func (r *resourceRepository) ListByProject(projectId string) ([]*model.Resource, error) {
	var resources []*model.Resource
	err := r.db.Where("project_id = ? AND is_deleted = ?", projectId, false).
		Order("created_at ASC").
		Find(&resources).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询资源列表失败", err)
	}
	return resources, nil
}

func (r *resourceRepository) Update(resource *model.Resource) error {
	if err := r.db.Save(resource).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新资源失败", err)
	}
	return nil
}

func (r *resourceRepository) MarkDeleted(id string) error {
	res := r.db.Model(&model.Resource{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除资源失败", res.Error)
	}
	if res.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}
