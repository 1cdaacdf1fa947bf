package service

import (
	"github.com/samber/lo"
	"go.uber.org/zap"

	"taskup/internal/dto"
	"taskup/internal/lifecycle"
	"taskup/internal/model"
	"taskup/internal/pkg/logger"
	"taskup/internal/repository"
	"taskup/pkg/constants"
	pkgErrors "taskup/pkg/errors"
)

type TaskService interface {
	Create(userId string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetByID(taskId, userId string) (*dto.TaskResponse, error)
	ListByProject(projectId, userId string) ([]*dto.TaskResponse, error)
	ListByTeam(teamId, userId string) ([]*dto.TaskResponse, error)
	ListMine(userId string) ([]*dto.TaskResponse, error)
	ListSubtasks(taskId, userId string) ([]*dto.TaskResponse, error)
	Update(taskId, userId string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	Complete(taskId, userId string, completed bool) (*dto.TaskResponse, error)
	Delete(taskId, userId string) error
}

type taskService struct {
	repo           repository.TaskRepository
	teamRepo       repository.TeamRepository
	teamMemberRepo repository.TeamMemberRepository
	memberRepo     repository.ProjectMemberRepository
	access         *lifecycle.AccessEngine
	resolver       *lifecycle.Resolver
}

func NewTaskService(
	repo repository.TaskRepository,
	teamRepo repository.TeamRepository,
	teamMemberRepo repository.TeamMemberRepository,
	memberRepo repository.ProjectMemberRepository,
	access *lifecycle.AccessEngine,
	resolver *lifecycle.Resolver,
) TaskService {
	return &taskService{
		repo:           repo,
		teamRepo:       teamRepo,
		teamMemberRepo: teamMemberRepo,
		memberRepo:     memberRepo,
		access:         access,
		resolver:       resolver,
	}
}

// Create 创建任务, 仅项目所有者可调用。
// 分配具有排他性: 团队与个人至多指定其一, 同时出现直接拒绝。
func (s *taskService) Create(userId string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if err := s.access.RequireOwner(req.ProjectID, userId); err != nil {
		return nil, err
	}

	if err := s.validateAssignment(req.ProjectID, userId, req.TeamID, req.UserID); err != nil {
		return nil, err
	}

	if req.ParentTaskID != nil {
		parent, err := s.repo.FindByID(*req.ParentTaskID)
		if err != nil {
			return nil, err
		}
		if parent.ProjectId != req.ProjectID {
			return nil, pkgErrors.New(pkgErrors.CodeValidationError, "父任务不属于该项目")
		}
		// 仅支持单层子任务
		if parent.ParentTaskId != nil {
			return nil, pkgErrors.New(pkgErrors.CodeValidationError, "子任务不能再创建子任务")
		}
	}

	status := req.Status
	if status == "" {
		status = constants.TaskStatusNotStarted
	}
	priority := req.Priority
	if priority == "" {
		priority = constants.TaskPriorityMedium
	}

	task := &model.Task{
		ProjectId:        req.ProjectID,
		TeamId:           req.TeamID,
		UserId:           req.UserID,
		CreatedBy:        userId,
		Title:            req.Title,
		Description:      req.Description,
		Cost:             req.Cost,
		Status:           status,
		StatusColorHex:   req.StatusColorHex,
		Priority:         priority,
		PriorityColorHex: req.PriorityColorHex,
		ParentTaskId:     req.ParentTaskID,
		Deadline:         req.Deadline,
	}

	if err := s.repo.Create(task); err != nil {
		return nil, err
	}

	logger.Info("任务创建成功", zap.String("task_id", task.ID), zap.String("project_id", task.ProjectId))
	return dto.ToTaskResponse(task), nil
}

func (s *taskService) GetByID(taskId, userId string) (*dto.TaskResponse, error) {
	task, err := s.repo.FindByID(taskId)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireAccess(task.ProjectId, userId); err != nil {
		return nil, err
	}
	return dto.ToTaskResponse(task), nil
}

func (s *taskService) ListByProject(projectId, userId string) ([]*dto.TaskResponse, error) {
	if err := s.access.RequireAccess(projectId, userId); err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListByProject(projectId)
	if err != nil {
		return nil, err
	}
	return lo.Map(tasks, func(t *model.Task, _ int) *dto.TaskResponse {
		return dto.ToTaskResponse(t)
	}), nil
}

// ListByTeam 团队任务列表, 按所属项目做访问判定
func (s *taskService) ListByTeam(teamId, userId string) ([]*dto.TaskResponse, error) {
	team, err := s.teamRepo.FindByID(teamId)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireAccess(team.ProjectId, userId); err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListByTeam(teamId)
	if err != nil {
		return nil, err
	}
	return lo.Map(tasks, func(t *model.Task, _ int) *dto.TaskResponse {
		return dto.ToTaskResponse(t)
	}), nil
}

// ListMine 直接分配给当前用户的任务, 跨项目
func (s *taskService) ListMine(userId string) ([]*dto.TaskResponse, error) {
	tasks, err := s.repo.ListByUser(userId)
	if err != nil {
		return nil, err
	}
	return lo.Map(tasks, func(t *model.Task, _ int) *dto.TaskResponse {
		return dto.ToTaskResponse(t)
	}), nil
}

func (s *taskService) ListSubtasks(taskId, userId string) ([]*dto.TaskResponse, error) {
	task, err := s.repo.FindByID(taskId)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireAccess(task.ProjectId, userId); err != nil {
		return nil, err
	}

	subtasks, err := s.repo.ListSubtasks(taskId)
	if err != nil {
		return nil, err
	}
	return lo.Map(subtasks, func(t *model.Task, _ int) *dto.TaskResponse {
		return dto.ToTaskResponse(t)
	}), nil
}

// Update 更新任务, 仅创建者可调用
func (s *taskService) Update(taskId, userId string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.repo.FindByID(taskId)
	if err != nil {
		return nil, err
	}
	if task.CreatedBy != userId {
		return nil, pkgErrors.ErrNotTaskCreator
	}

	// 变更分配时重新校验排他性与成员资格
	if req.TeamID != nil || req.UserID != nil {
		newTeamId := task.TeamId
		newUserId := task.UserId
		if req.TeamID != nil {
			newTeamId = req.TeamID
			newUserId = nil
		}
		if req.UserID != nil {
			newUserId = req.UserID
			newTeamId = nil
		}
		if err := s.validateAssignment(task.ProjectId, userId, newTeamId, newUserId); err != nil {
			return nil, err
		}
		task.TeamId = newTeamId
		task.UserId = newUserId
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Cost != nil {
		task.Cost = *req.Cost
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.StatusColorHex != nil {
		task.StatusColorHex = req.StatusColorHex
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.PriorityColorHex != nil {
		task.PriorityColorHex = req.PriorityColorHex
	}
	if req.Deadline != nil {
		task.Deadline = req.Deadline
	}

	if err := s.repo.Update(task); err != nil {
		return nil, err
	}
	return dto.ToTaskResponse(task), nil
}

// Complete 切换完成状态, 创建者或被分配者可调用
func (s *taskService) Complete(taskId, userId string, completed bool) (*dto.TaskResponse, error) {
	task, err := s.repo.FindByID(taskId)
	if err != nil {
		return nil, err
	}

	allowed := task.CreatedBy == userId
	if !allowed && task.IsUserAssigned() && *task.UserId == userId {
		allowed = true
	}
	if !allowed && task.IsTeamAssigned() {
		isTeamMember, err := s.teamMemberRepo.ExistsActive(*task.TeamId, userId)
		if err != nil {
			return nil, err
		}
		allowed = isTeamMember
	}
	if !allowed {
		return nil, pkgErrors.New(pkgErrors.CodeForbidden, "仅任务创建者或被分配者可变更完成状态")
	}

	task.Completed = completed
	if completed {
		task.Status = constants.TaskStatusCompleted
	}
	if err := s.repo.Update(task); err != nil {
		return nil, err
	}
	return dto.ToTaskResponse(task), nil
}

// Delete 软删除任务及其子任务, 仅创建者可调用
func (s *taskService) Delete(taskId, userId string) error {
	task, err := s.repo.FindByID(taskId)
	if err != nil {
		return err
	}
	if task.CreatedBy != userId {
		return pkgErrors.ErrNotTaskCreator
	}

	return s.resolver.DeleteTask(taskId)
}

// validateAssignment 校验任务分配目标。
// 团队与个人互斥; 团队须属于该项目; 个人须是项目成员且不能是创建者自己。
func (s *taskService) validateAssignment(projectId, creatorId string, teamId, assigneeId *string) error {
	if teamId != nil && assigneeId != nil {
		return pkgErrors.New(pkgErrors.CodeValidationError, "任务只能分配给团队或个人, 不能同时指定")
	}

	if teamId != nil {
		team, err := s.teamRepo.FindByID(*teamId)
		if err != nil {
			return err
		}
		if team.ProjectId != projectId {
			return pkgErrors.New(pkgErrors.CodeValidationError, "团队不属于该项目")
		}
	}

	if assigneeId != nil {
		if *assigneeId == creatorId {
			return pkgErrors.New(pkgErrors.CodeValidationError, "不能将任务分配给自己")
		}
		isMember, err := s.access.IsMember(projectId, *assigneeId)
		if err != nil {
			return err
		}
		if !isMember {
			return pkgErrors.New(pkgErrors.CodeValidationError, "被分配者不是项目成员")
		}
	}

	return nil
}
