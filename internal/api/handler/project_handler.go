package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskup/internal/api/middleware"
	"taskup/internal/dto"
	"taskup/internal/service"
	"taskup/pkg/responses"
	"taskup/pkg/utils"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// Create 创建项目
// @Summary 创建项目, 创建者即所有者
// @Tags Project
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProjectRequest true "创建项目请求"
// @Success 200 {object} responses.Response{data=dto.ProjectResponse}
// @Router /api/v1/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	project, err := h.projectService.Create(middleware.CurrentUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, project)
}

// List 我的项目列表
// @Summary 我的项目列表(拥有的与参与的并集)
// @Tags Project
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.Response{data=[]dto.ProjectResponse}
// @Router /api/v1/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.ListByUser(middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, projects)
}

// GetByID 获取项目详情
// @Summary 获取项目详情
// @Tags Project
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Success 200 {object} responses.Response{data=dto.ProjectResponse}
// @Router /api/v1/projects/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	project, err := h.projectService.GetByID(param.ID, middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, project)
}

// Update 更新项目
// @Summary 更新项目, 仅所有者
// @Tags Project
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Param request body dto.UpdateProjectRequest true "更新项目请求"
// @Success 200 {object} responses.Response{data=dto.ProjectResponse}
// @Router /api/v1/projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	project, err := h.projectService.Update(param.ID, middleware.CurrentUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, project)
}

// Delete 删除项目
// @Summary 删除项目及全部从属实体, 仅所有者, 重复删除幂等
// @Tags Project
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Success 200 {object} responses.Response{data=dto.DeleteProjectResponse}
// @Router /api/v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	result, err := h.projectService.Delete(param.ID, middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, result)
}

// AddMember 添加项目成员
// @Summary 添加项目成员, 仅所有者
// @Tags Project
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Param request body dto.AddMemberRequest true "添加成员请求"
// @Success 200 {object} responses.Response{data=dto.ProjectMemberResponse}
// @Router /api/v1/projects/{id}/members [post]
func (h *ProjectHandler) AddMember(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	member, err := h.projectService.AddMember(param.ID, middleware.CurrentUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, member)
}

// ListMembers 项目成员列表
// @Summary 项目成员列表
// @Tags Project
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Success 200 {object} responses.Response{data=[]dto.ProjectMemberResponse}
// @Router /api/v1/projects/{id}/members [get]
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	members, err := h.projectService.ListMembers(param.ID, middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, members)
}

// RemoveMember 移除项目成员
// @Summary 移除项目成员并级联其团队关系与任务, 仅所有者
// @Tags Project
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Param user_id path string true "成员用户ID"
// @Success 200 {object} responses.Response
// @Router /api/v1/projects/{id}/members/{user_id} [delete]
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	var param dto.MemberParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.projectService.RemoveMember(param.ID, middleware.CurrentUserID(c), param.UserID); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, "成员已移除", nil)
}
