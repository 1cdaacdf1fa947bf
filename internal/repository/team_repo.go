package repository

import (
	"gorm.io/gorm"

	"taskup/internal/model"
	pkgErrors "taskup/pkg/errors"
)

type TeamRepository interface {
	Create(team *model.Team) error
	FindByID(id string) (*model.Team, error)
	ListByProject(projectId string) ([]*model.Team, error)
	Update(team *model.Team) error
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(team *model.Team) error {
	if err := r.db.Create(team).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建团队失败", err)
	}
	return nil
}

func (r *teamRepository) FindByID(id string) (*model.Team, error) {
	var team model.Team
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&team).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrTeamNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询团队失败", err)
	}
	return &team, nil
}

func (r *teamRepository) ListByProject(projectId string) ([]*model.Team, error) {
	var teams []*model.Team
	err := r.db.Where("project_id = ? AND is_deleted = ?", projectId, false).
		Order("created_at ASC").
		Find(&teams).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询团队列表失败", err)
	}
	return teams, nil
}

func (r *teamRepository) Update(team *model.Team) error {
	if err := r.db.Save(team).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新团队失败", err)
	}
	return nil
}
