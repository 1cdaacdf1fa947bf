package repository

import (
	"gorm.io/gorm"

	"taskup/internal/model"
	pkgErrors "taskup/pkg/errors"
)

type TeamMemberRepository interface {
	Create(member *model.TeamMember) error
	FindActive(teamId, userId string) (*model.TeamMember, error)
	ListByTeam(teamId string) ([]*model.TeamMember, error)
	ExistsActive(teamId, userId string) (bool, error)
}

type teamMemberRepository struct {
	db *gorm.DB
}

func NewTeamMemberRepository(db *gorm.DB) TeamMemberRepository {
	return &teamMemberRepository{db: db}
}

func (r *teamMemberRepository) Create(member *model.TeamMember) error {
	if err := r.db.Create(member).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "添加团队成员失败", err)
	}
	return nil
}

func (r *teamMemberRepository) FindActive(teamId, userId string) (*model.TeamMember, error) {
	var member model.TeamMember
	err := r.db.Where("team_id = ? AND user_id = ? AND is_active = ?", teamId, userId, true).
		First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询团队成员失败", err)
	}
	return &member, nil
}

func (r *teamMemberRepository) ListByTeam(teamId string) ([]*model.TeamMember, error) {
	var members []*model.TeamMember
	err := r.db.Preload("User").
		Where("team_id = ? AND is_active = ?", teamId, true).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询团队成员列表失败", err)
	}
	return members, nil
}

func (r *teamMemberRepository) ExistsActive(teamId, userId string) (bool, error) {
	var count int64
	err := r.db.Model(&model.TeamMember{}).
		Where("team_id = ? AND user_id = ? AND is_active = ?", teamId, userId, true).
		Count(&count).Error
	if err != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询团队成员失败", err)
	}
	return count > 0, nil
}
