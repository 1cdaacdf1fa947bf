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

type RiskHandler struct {
	riskService service.RiskService
}

func NewRiskHandler(riskService service.RiskService) *RiskHandler {
	return &RiskHandler{
		riskService: riskService,
	}
}

// Create 创建风险
// @Summary 创建风险
// @Tags Risk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Param request body dto.CreateRiskRequest true "创建风险请求"
// @Success 200 {object} responses.Response{data=dto.RiskResponse}
// @Router /api/v1/projects/{id}/risks [post]
func (h *RiskHandler) Create(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	var req dto.CreateRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	risk, err := h.riskService.Create(param.ID, middleware.CurrentUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, risk)
}

// ListByProject 项目风险列表
// @Summary 项目风险列表, 按严重度降序
// @Tags Risk
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Success 200 {object} responses.Response{data=[]dto.RiskResponse}
// @Router /api/v1/projects/{id}/risks [get]
func (h *RiskHandler) ListByProject(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	risks, err := h.riskService.ListByProject(param.ID, middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, risks)
}

// Update 更新风险
// @Summary 更新风险
// @Tags Risk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "风险ID"
// @Param request body dto.UpdateRiskRequest true "更新风险请求"
// @Success 200 {object} responses.Response{data=dto.RiskResponse}
// @Router /api/v1/risks/{id} [put]
func (h *RiskHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	var req dto.UpdateRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	risk, err := h.riskService.Update(param.ID, middleware.CurrentUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, risk)
}

// Delete 删除风险
// @Summary 删除风险, 仅项目所有者
// @Tags Risk
// @Produce json
// @Security BearerAuth
// @Param id path string true "风险ID"
// @Success 200 {object} responses.Response
// @Router /api/v1/risks/{id} [delete]
func (h *RiskHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.riskService.Delete(param.ID, middleware.CurrentUserID(c)); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, "风险已删除", nil)
}
