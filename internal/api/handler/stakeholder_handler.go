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

type StakeholderHandler struct {
	stakeholderService service.StakeholderService
}

func NewStakeholderHandler(stakeholderService service.StakeholderService) *StakeholderHandler {
	return &StakeholderHandler{
		stakeholderService: stakeholderService,
	}
}

// Create 创建干系人
// @Summary 创建干系人, 仅项目所有者
// @Tags Stakeholder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Param request body dto.CreateStakeholderRequest true "创建干系人请求"
// @Success 200 {object} responses.Response{data=dto.StakeholderResponse}
// @Router /api/v1/projects/{id}/stakeholders [post]
func (h *StakeholderHandler) Create(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	var req dto.CreateStakeholderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	stakeholder, err := h.stakeholderService.Create(param.ID, middleware.CurrentUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, stakeholder)
}

// ListByProject 项目干系人列表
// @Summary 项目干系人列表
// @Tags Stakeholder
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Success 200 {object} responses.Response{data=[]dto.StakeholderResponse}
// @Router /api/v1/projects/{id}/stakeholders [get]
func (h *StakeholderHandler) ListByProject(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	stakeholders, err := h.stakeholderService.ListByProject(param.ID, middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, stakeholders)
}

// Update 更新干系人
// @Summary 更新干系人, 仅项目所有者
// @Tags Stakeholder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "干系人ID"
// @Param request body dto.UpdateStakeholderRequest true "更新干系人请求"
// @Success 200 {object} responses.Response{data=dto.StakeholderResponse}
// @Router /api/v1/stakeholders/{id} [put]
func (h *StakeholderHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	var req dto.UpdateStakeholderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	stakeholder, err := h.stakeholderService.Update(param.ID, middleware.CurrentUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, stakeholder)
}

// Delete 删除干系人
// @Summary 删除干系人, 仅项目所有者
// @Tags Stakeholder
// @Produce json
// @Security BearerAuth
// @Param id path string true "干系人ID"
// @Success 200 {object} responses.Response
// @Router /api/v1/stakeholders/{id} [delete]
func (h *StakeholderHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.stakeholderService.Delete(param.ID, middleware.CurrentUserID(c)); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, "干系人已删除", nil)
}
