package lifecycle

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskup/internal/model"
	pkgErrors "taskup/pkg/errors"
)

// Resolver 级联软删除解析器。
// 以注册表为驱动对从属实体做传递性失活, 每次根删除在单个事务内完成,
// 任一步失败则整体回滚, 并发读者不可见半成品级联。
type Resolver struct {
	db *gorm.DB
}

// NewResolver 创建Resolver
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// DeleteProjectResult 项目删除结果
type DeleteProjectResult struct {
	AlreadyDeleted bool `json:"already_deleted"`
}

// DeleteProject 软删除项目及其全部从属实体。
// 重复删除不报错, 返回 AlreadyDeleted 且不再执行级联;
// 团队/任务删除对已删除实体返回 NotFound, 两处口径沿用既有行为, 不做统一。
func (r *Resolver) DeleteProject(projectId string) (*DeleteProjectResult, error) {
	var project model.Project
	err := r.db.Where("id = ?", projectId).First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrProjectNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", err)
	}

	if project.IsDeleted {
		return &DeleteProjectResult{AlreadyDeleted: true}, nil
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		return cascade(tx, KindProject, []string{projectId})
	})
	if err != nil {
		return nil, err
	}

	return &DeleteProjectResult{}, nil
}

// DeleteTeam 软删除团队、其成员关系及团队任务。
// 团队不存在或已删除时返回 NotFound。
func (r *Resolver) DeleteTeam(teamId string) error {
	store := NewFlagStore(r.db)
	active, err := store.IsActive(KindTeam, teamId)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return pkgErrors.ErrTeamNotFound
		}
		return err
	}
	if !active {
		return pkgErrors.ErrTeamNotFound
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		return cascade(tx, KindTeam, []string{teamId})
	})
}

// DeleteTask 软删除任务及其子任务。
// 任务不存在或已删除时返回 NotFound。
func (r *Resolver) DeleteTask(taskId string) error {
	store := NewFlagStore(r.db)
	active, err := store.IsActive(KindTask, taskId)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return pkgErrors.ErrTaskNotFound
		}
		return err
	}
	if !active {
		return pkgErrors.ErrTaskNotFound
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		return cascade(tx, KindTask, []string{taskId})
	})
}

// RemoveProjectMember 移除项目成员。
// 同一事务内依次失活: 成员关系 → 该用户在项目各团队中的团队成员关系
// → 项目内直接分配给该用户的任务。团队本身保持存活。
func (r *Resolver) RemoveProjectMember(projectId, userId string) error {
	memberDesc, _ := Describe(KindProjectMember)
	teamDesc, _ := Describe(KindTeam)
	teamMemberDesc, _ := Describe(KindTeamMember)
	taskDesc, _ := Describe(KindTask)

	var member model.ProjectMember
	err := activeScope(r.db, memberDesc).
		Where("project_id = ? AND user_id = ?", projectId, userId).
		First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgErrors.ErrRecordNotFound
		}
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目成员失败", err)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		// 1. 失活成员关系
		if err := tx.Table(memberDesc.Table).
			Where("id = ?", member.ID).
			Update(memberDesc.FlagColumn, memberDesc.InactiveValue()).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "移除项目成员失败", err)
		}

		// 2. 先收集项目下存活团队ID, 再做后续失活
		var teamIds []string
		if err := activeScope(tx.Table(teamDesc.Table), teamDesc).
			Where("project_id = ?", projectId).
			Pluck("id", &teamIds).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目团队失败", err)
		}

		// 3. 失活该用户的团队成员关系
		if len(teamIds) > 0 {
			if err := activeScope(tx.Table(teamMemberDesc.Table), teamMemberDesc).
				Where("team_id IN ? AND user_id = ?", teamIds, userId).
				Update(teamMemberDesc.FlagColumn, teamMemberDesc.InactiveValue()).Error; err != nil {
				return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "移除团队成员失败", err)
			}
		}

		// 4. 失活项目内分配给该用户的任务
		if err := activeScope(tx.Table(taskDesc.Table), taskDesc).
			Where("project_id = ? AND user_id = ?", projectId, userId).
			Update(taskDesc.FlagColumn, taskDesc.InactiveValue()).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除成员任务失败", err)
		}

		return nil
	})
}

// RemoveTeamMember 移除团队成员及其团队内任务, 单事务
func (r *Resolver) RemoveTeamMember(teamId, userId string) error {
	teamMemberDesc, _ := Describe(KindTeamMember)
	taskDesc, _ := Describe(KindTask)

	return r.db.Transaction(func(tx *gorm.DB) error {
		res := activeScope(tx.Table(teamMemberDesc.Table), teamMemberDesc).
			Where("team_id = ? AND user_id = ?", teamId, userId).
			Update(teamMemberDesc.FlagColumn, teamMemberDesc.InactiveValue())
		if res.Error != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "移除团队成员失败", res.Error)
		}
		if res.RowsAffected == 0 {
			return pkgErrors.ErrRecordNotFound
		}

		if err := activeScope(tx.Table(taskDesc.Table), taskDesc).
			Where("team_id = ? AND user_id = ?", teamId, userId).
			Update(taskDesc.FlagColumn, taskDesc.InactiveValue()).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除成员任务失败", err)
		}
		return nil
	})
}

// cascade 通用级联失活。
// 对每层: 先按注册表收集各子关系的存活行ID, 再失活本层行, 最后递归子层。
// 父ID收集必须先于父行失活, 标志翻转不会移除行, 但顺序保证了
// "先找得到孩子、再动父亲"的依赖假设。
func cascade(tx *gorm.DB, kind Kind, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	d, ok := Describe(kind)
	if !ok {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, fmt.Sprintf("未注册的实体类型: %s", kind), nil)
	}

	// 收集子行ID
	childIds := make(map[int][]string, len(d.Children))
	for i, rel := range d.Children {
		childDesc, ok := Describe(rel.Kind)
		if !ok {
			return pkgErrors.Wrap(pkgErrors.CodeInternalError, fmt.Sprintf("未注册的实体类型: %s", rel.Kind), nil)
		}
		var collected []string
		err := activeScope(tx.Table(childDesc.Table), childDesc).
			Where(fmt.Sprintf("%s IN ?", rel.ForeignKey), ids).
			Pluck("id", &collected).Error
		if err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "收集从属实体失败", err)
		}
		childIds[i] = collected
	}

	// 失活本层
	if err := tx.Table(d.Table).
		Where("id IN ?", ids).
		Update(d.FlagColumn, d.InactiveValue()).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "级联删除失败", err)
	}

	// 递归子层
	for i, rel := range d.Children {
		if err := cascade(tx, rel.Kind, childIds[i]); err != nil {
			return err
		}
	}

	return nil
}
