package repository

import (
	"gorm.io/gorm"

	"taskup/internal/model"
	pkgErrors "taskup/pkg/errors"
)

type StakeholderRepository interface {
	Create(stakeholder *model.Stakeholder) error
	FindByID(id string) (*model.Stakeholder, error)
	ListByProject(projectId string) ([]*model.Stakeholder, error)
	Update(stakeholder *model.Stakeholder) error
	MarkDeleted(id string) error
}

type stakeholderRepository struct {
	db *gorm.DB
}

func NewStakeholderRepository(db *gorm.DB) StakeholderRepository {
	return &stakeholderRepository{db: db}
}

func (r *stakeholderRepository) Create(stakeholder *model.Stakeholder) error {
	if err := r.db.Create(stakeholder).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建干系人失败", err)
	}
	return nil
}

func (r *stakeholderRepository) FindByID(id string) (*model.Stakeholder, error) {
	var stakeholder model.Stakeholder
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&stakeholder).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询干系人失败", err)
	}
	return &stakeholder, nil
}

func (r *stakeholderRepository) ListByProject(projectId string) ([]*model.Stakeholder, error) {
	var stakeholders []*model.Stakeholder
	err := r.db.Preload("User").
		Where("project_id = ? AND is_deleted = ?", projectId, false).
		Order("percentage DESC").
		Find(&stakeholders).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询干系人列表失败", err)
	}
	return stakeholders, nil
}

func (r *stakeholderRepository) Update(stakeholder *model.Stakeholder) error {
	if err := r.db.Save(stakeholder).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新干系人失败", err)
	}
	return nil
}

func (r *stakeholderRepository) MarkDeleted(id string) error {
	res := r.db.Model(&model.Stakeholder{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除干系人失败", res.Error)
	}
	if res.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}
