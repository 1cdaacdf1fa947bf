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

type TeamHandler struct {
	teamService service.TeamService
}

func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// Create 创建团队
// @Summary 创建团队, 仅项目所有者
// @Tags Team
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTeamRequest true "创建团队请求"
// @Success 200 {object} responses.Response{data=dto.TeamResponse}
// @Router /api/v1/teams [post]
func (h *TeamHandler) Create(c *gin.Context) {
	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	team, err := h.teamService.Create(middleware.CurrentUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, team)
}

// GetByID 获取团队详情
// @Summary 获取团队详情
// @Tags Team
// @Produce json
// @Security BearerAuth
// @Param id path string true "团队ID"
// @Success 200 {object} responses.Response{data=dto.TeamResponse}
// @Router /api/v1/teams/{id} [get]
func (h *TeamHandler) GetByID(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	team, err := h.teamService.GetByID(param.ID, middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, team)
}

// ListByProject 项目团队列表
// @Summary 项目团队列表
// @Tags Team
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Success 200 {object} responses.Response{data=[]dto.TeamResponse}
// @Router /api/v1/projects/{id}/teams [get]
func (h *TeamHandler) ListByProject(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	teams, err := h.teamService.ListByProject(param.ID, middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, teams)
}

// Update 更新团队
// @Summary 更新团队, 仅创建者
// @Tags Team
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "团队ID"
// @Param request body dto.UpdateTeamRequest true "更新团队请求"
// @Success 200 {object} responses.Response{data=dto.TeamResponse}
// @Router /api/v1/teams/{id} [put]
func (h *TeamHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	var req dto.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	team, err := h.teamService.Update(param.ID, middleware.CurrentUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, team)
}

// Delete 删除团队
// @Summary 删除团队及成员关系、团队任务, 仅创建者
// @Tags Team
// @Produce json
// @Security BearerAuth
// @Param id path string true "团队ID"
// @Success 200 {object} responses.Response
// @Router /api/v1/teams/{id} [delete]
func (h *TeamHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.teamService.Delete(param.ID, middleware.CurrentUserID(c)); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, "团队已删除", nil)
}
