package repository

import (
	"gorm.io/gorm"

	"taskup/internal/model"
	pkgErrors "taskup/pkg/errors"
)

type TaskRepository interface {
	Create(task *model.Task) error
	FindByID(id string) (*model.Task, error)
	ListByProject(projectId string) ([]*model.Task, error)
	ListByUser(userId string) ([]*model.Task, error)
	ListByTeam(teamId string) ([]*model.Task, error)
	ListSubtasks(parentTaskId string) ([]*model.Task, error)
	Update(task *model.Task) error
	// CountByProject 返回项目内存活任务的总数与已完成数, 供进度重算使用
	CountByProject(projectId string) (total, completed int64, err error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(task *model.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建任务失败", err)
	}
	return nil
}

func (r *taskRepository) FindByID(id string) (*model.Task, error) {
	var task model.Task
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&task).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrTaskNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询任务失败", err)
	}
	return &task, nil
}

func (r *taskRepository) ListByProject(projectId string) ([]*model.Task, error) {
	var tasks []*model.Task
	err := r.db.Where("project_id = ? AND is_deleted = ?", projectId, false).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询任务列表失败", err)
	}
	return tasks, nil
}

func (r *taskRepository) ListByUser(userId string) ([]*model.Task, error) {
	var tasks []*model.Task
	err := r.db.Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询任务列表失败", err)
	}
	return tasks, nil
}

func (r *taskRepository) ListByTeam(teamId string) ([]*model.Task, error) {
	var tasks []*model.Task
	err := r.db.Where("team_id = ? AND is_deleted = ?", teamId, false).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询任务列表失败", err)
	}
	return tasks, nil
}

func (r *taskRepository) ListSubtasks(parentTaskId string) ([]*model.Task, error) {
	var tasks []*model.Task
	err := r.db.Where("parent_task_id = ? AND is_deleted = ?", parentTaskId, false).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询子任务列表失败", err)
	}
	return tasks, nil
}

func (r *taskRepository) Update(task *model.Task) error {
	if err := r.db.Save(task).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新任务失败", err)
	}
	return nil
}

func (r *taskRepository) CountByProject(projectId string) (int64, int64, error) {
	var total, completed int64
	base := r.db.Model(&model.Task{}).Where("project_id = ? AND is_deleted = ?", projectId, false)

	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计任务数量失败", err)
	}
	if err := base.Session(&gorm.Session{}).Where("completed = ?", true).Count(&completed).Error; err != nil {
		return 0, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计任务数量失败", err)
	}
	return total, completed, nil
}
