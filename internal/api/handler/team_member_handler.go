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

type TeamMemberHandler struct {
	teamMemberService service.TeamMemberService
}

func NewTeamMemberHandler(teamMemberService service.TeamMemberService) *TeamMemberHandler {
	return &TeamMemberHandler{
		teamMemberService: teamMemberService,
	}
}

// Add 添加团队成员
// @Summary 添加团队成员, 仅项目所有者, 被添加者须是项目成员
// @Tags TeamMember
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "团队ID"
// @Param request body dto.AddTeamMemberRequest true "添加成员请求"
// @Success 200 {object} responses.Response{data=dto.TeamMemberResponse}
// @Router /api/v1/teams/{id}/members [post]
func (h *TeamMemberHandler) Add(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	var req dto.AddTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	member, err := h.teamMemberService.Add(param.ID, middleware.CurrentUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, member)
}

// List 团队成员列表
// @Summary 团队成员列表
// @Tags TeamMember
// @Produce json
// @Security BearerAuth
// @Param id path string true "团队ID"
// @Success 200 {object} responses.Response{data=[]dto.TeamMemberResponse}
// @Router /api/v1/teams/{id}/members [get]
func (h *TeamMemberHandler) List(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	members, err := h.teamMemberService.List(param.ID, middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, members)
}

// Remove 移除团队成员
// @Summary 移除团队成员并失活其团队内任务, 仅项目所有者
// @Tags TeamMember
// @Produce json
// @Security BearerAuth
// @Param id path string true "团队ID"
// @Param user_id path string true "成员用户ID"
// @Success 200 {object} responses.Response
// @Router /api/v1/teams/{id}/members/{user_id} [delete]
func (h *TeamMemberHandler) Remove(c *gin.Context) {
	var param dto.MemberParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.teamMemberService.Remove(param.ID, middleware.CurrentUserID(c), param.UserID); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, "成员已移除", nil)
}
