package repository

import (
	"gorm.io/gorm"

	"taskup/internal/model"
	pkgErrors "taskup/pkg/errors"
)

type RiskRepository interface {
	Create(risk *model.Risk) error
	FindByID(id string) (*model.Risk, error)
	ListByProject(projectId string) ([]*model.Risk, error)
	Update(risk *model.Risk) error
	MarkDeleted(id string) error
}

type riskRepository struct {
	db *gorm.DB
}

func NewRiskRepository(db *gorm.DB) RiskRepository {
	return &riskRepository{db: db}
}

func (r *riskRepository) Create(risk *model.Risk) error {
	if err := r.db.Create(risk).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建风险失败", err)
	}
	return nil
}

func (r *riskRepository) FindByID(id string) (*model.Risk, error) {
	var risk model.Risk
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&risk).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询风险失败", err)
	}
	return &risk, nil
}

func (r *riskRepository) ListByProject(projectId string) ([]*model.Risk, error) {
	var risks []*model.Risk
	err := r.db.Where("project_id = ? AND is_deleted = ?", projectId, false).
		Order("severity DESC").
		Find(&risks).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询风险列表失败", err)
	}
	return risks, nil
}

func (r *riskRepository) Update(risk *model.Risk) error {
	if err := r.db.Save(risk).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新风险失败", err)
	}
	return nil
}

func (r *riskRepository) MarkDeleted(id string) error {
	res := r.db.Model(&model.Risk{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除风险失败", res.Error)
	}
	if res.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}
