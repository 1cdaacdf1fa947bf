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

type ProjectService interface {
	Create(userId string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	GetByID(projectId, userId string) (*dto.ProjectResponse, error)
	ListByUser(userId string) ([]*dto.ProjectResponse, error)
	Update(projectId, userId string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	Delete(projectId, userId string) (*dto.DeleteProjectResponse, error)
	AddMember(projectId, userId string, req *dto.AddMemberRequest) (*dto.ProjectMemberResponse, error)
	ListMembers(projectId, userId string) ([]*dto.ProjectMemberResponse, error)
	RemoveMember(projectId, operatorId, memberUserId string) error
}

// ChatRoomCloser 项目删除后关闭其聊天房间, 由聊天集线器实现
type ChatRoomCloser interface {
	CloseProject(projectId string)
}

type projectService struct {
	repo       repository.ProjectRepository
	memberRepo repository.ProjectMemberRepository
	userRepo   repository.UserRepository
	access     *lifecycle.AccessEngine
	resolver   *lifecycle.Resolver
	rooms      ChatRoomCloser
}

func NewProjectService(
	repo repository.ProjectRepository,
	memberRepo repository.ProjectMemberRepository,
	userRepo repository.UserRepository,
	access *lifecycle.AccessEngine,
	resolver *lifecycle.Resolver,
	rooms ChatRoomCloser,
) ProjectService {
	return &projectService{
		repo:       repo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		access:     access,
		resolver:   resolver,
		rooms:      rooms,
	}
}

func (s *projectService) Create(userId string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	project := &model.Project{
		Name:            req.Name,
		Description:     req.Description,
		Deadline:        req.Deadline,
		TotalBudget:     req.TotalBudget,
		RemainingBudget: req.TotalBudget,
		OwnerId:         userId,
	}

	if err := s.repo.Create(project); err != nil {
		return nil, err
	}

	logger.Info("项目创建成功", zap.String("project_id", project.ID), zap.String("owner_id", userId))
	return dto.ToProjectResponse(project), nil
}

// GetByID 查看项目详情, 所有者与成员均可
func (s *projectService) GetByID(projectId, userId string) (*dto.ProjectResponse, error) {
	if err := s.access.RequireAccess(projectId, userId); err != nil {
		return nil, err
	}

	project, err := s.repo.FindByID(projectId)
	if err != nil {
		return nil, err
	}
	return dto.ToProjectResponse(project), nil
}

// ListByUser 拥有的与参与的项目并集
func (s *projectService) ListByUser(userId string) ([]*dto.ProjectResponse, error) {
	projects, err := s.repo.ListByUser(userId)
	if err != nil {
		return nil, err
	}
	return lo.Map(projects, func(p *model.Project, _ int) *dto.ProjectResponse {
		return dto.ToProjectResponse(p)
	}), nil
}

// Update 更新项目, 仅所有者可调用
func (s *projectService) Update(projectId, userId string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	if err := s.access.RequireOwner(projectId, userId); err != nil {
		return nil, err
	}

	project, err := s.repo.FindByID(projectId)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.Deadline != nil {
		project.Deadline = req.Deadline
	}
	if req.TotalBudget != nil {
		// 调整总预算时同步调整剩余预算
		diff := *req.TotalBudget - project.TotalBudget
		project.TotalBudget = *req.TotalBudget
		project.RemainingBudget += diff
	}

	if err := s.repo.Update(project); err != nil {
		return nil, err
	}
	return dto.ToProjectResponse(project), nil
}

// Delete 软删除项目及全部从属实体, 仅所有者可调用, 重复删除幂等
func (s *projectService) Delete(projectId, userId string) (*dto.DeleteProjectResponse, error) {
	// 幂等路径也要求操作者是所有者, 查询不过滤删除标志
	project, err := s.repo.FindByIDAny(projectId)
	if err != nil {
		return nil, err
	}
	if project.OwnerId != userId {
		return nil, pkgErrors.ErrNotProjectOwner
	}

	result, err := s.resolver.DeleteProject(projectId)
	if err != nil {
		return nil, err
	}

	if !result.AlreadyDeleted {
		// 项目没了, 房间里的连接一并踢掉
		if s.rooms != nil {
			s.rooms.CloseProject(projectId)
		}
		logger.Info("项目已删除", zap.String("project_id", projectId), zap.String("operator", userId))
	}
	return &dto.DeleteProjectResponse{AlreadyDeleted: result.AlreadyDeleted}, nil
}

// AddMember 添加项目成员, 仅所有者可调用
func (s *projectService) AddMember(projectId, userId string, req *dto.AddMemberRequest) (*dto.ProjectMemberResponse, error) {
	if err := s.access.RequireOwner(projectId, userId); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(req.UserID); err != nil {
		return nil, err
	}

	exists, err := s.memberRepo.ExistsActive(projectId, req.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, pkgErrors.ErrMemberExists
	}

	role := req.Role
	if role == "" {
		role = constants.DefaultProjectMemberRole
	}

	member := &model.ProjectMember{
		ProjectId: projectId,
		UserId:    req.UserID,
		Role:      role,
	}
	if err := s.memberRepo.Create(member); err != nil {
		return nil, err
	}

	return dto.ToProjectMemberResponse(member), nil
}

// ListMembers 项目成员列表, 所有者与成员均可查看
func (s *projectService) ListMembers(projectId, userId string) ([]*dto.ProjectMemberResponse, error) {
	if err := s.access.RequireAccess(projectId, userId); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListByProject(projectId)
	if err != nil {
		return nil, err
	}
	return lo.Map(members, func(m *model.ProjectMember, _ int) *dto.ProjectMemberResponse {
		return dto.ToProjectMemberResponse(m)
	}), nil
}

// RemoveMember 移除项目成员并级联其团队关系与任务, 仅所有者可调用
func (s *projectService) RemoveMember(projectId, operatorId, memberUserId string) error {
	if err := s.access.RequireOwner(projectId, operatorId); err != nil {
		return err
	}

	if err := s.resolver.RemoveProjectMember(projectId, memberUserId); err != nil {
		return err
	}

	logger.Info("项目成员已移除",
		zap.String("project_id", projectId),
		zap.String("user_id", memberUserId),
		zap.String("operator", operatorId))
	return nil
}
