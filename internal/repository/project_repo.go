package repository

import (
	"gorm.io/gorm"

	"taskup/internal/model"
	pkgErrors "taskup/pkg/errors"
)

type ProjectRepository interface {
	Create(project *model.Project) error
	FindByID(id string) (*model.Project, error)
	// FindByIDAny 不过滤删除标志, 删除幂等路径需要看到已删除的行
	FindByIDAny(id string) (*model.Project, error)
	// ListByUser 返回用户拥有的项目与作为成员参与的项目之并集
	ListByUser(userId string) ([]*model.Project, error)
	List(page, pageSize int, keyword string) ([]*model.Project, int64, error)
	Update(project *model.Project) error
	UpdateProgress(id string, progress int) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(project *model.Project) error {
	if err := r.db.Create(project).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建项目失败", err)
	}
	return nil
}

func (r *projectRepository) FindByID(id string) (*model.Project, error) {
	var project model.Project
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrProjectNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", err)
	}
	return &project, nil
}

func (r *projectRepository) FindByIDAny(id string) (*model.Project, error) {
	var project model.Project
	err := r.db.Where("id = ?", id).First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrProjectNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", err)
	}
	return &project, nil
}

func (r *projectRepository) ListByUser(userId string) ([]*model.Project, error) {
	var projects []*model.Project

	memberProjectIds := r.db.Model(&model.ProjectMember{}).
		Select("project_id").
		Where("user_id = ? AND is_deleted = ?", userId, false)

	err := r.db.Where("is_deleted = ?", false).
		Where("owner_id = ? OR id IN (?)", userId, memberProjectIds).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目列表失败", err)
	}
	return projects, nil
}

func (r *projectRepository) List(page, pageSize int, keyword string) ([]*model.Project, int64, error) {
	var projects []*model.Project
	var total int64

	query := r.db.Model(&model.Project{}).Where("is_deleted = ?", false)

	// 关键字搜索
	if keyword != "" {
		query = query.Where("name LIKE ? OR description LIKE ?",
			"%"+keyword+"%", "%"+keyword+"%")
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计项目数量失败", err)
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目列表失败", err)
	}

	return projects, total, nil
}

func (r *projectRepository) Update(project *model.Project) error {
	if err := r.db.Save(project).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新项目失败", err)
	}
	return nil
}

func (r *projectRepository) UpdateProgress(id string, progress int) error {
	err := r.db.Model(&model.Project{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("progress", progress).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新项目进度失败", err)
	}
	return nil
}
