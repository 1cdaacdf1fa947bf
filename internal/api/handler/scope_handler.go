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

type ScopeHandler struct {
	scopeService service.ScopeService
}

func NewScopeHandler(scopeService service.ScopeService) *ScopeHandler {
	return &ScopeHandler{
		scopeService: scopeService,
	}
}

// Create 创建项目范围
// @Summary 创建项目范围, 每个项目至多一份, 仅所有者
// @Tags Scope
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Param request body dto.CreateScopeRequest true "创建范围请求"
// @Success 200 {object} responses.Response{data=dto.ScopeResponse}
// @Router /api/v1/projects/{id}/scope [post]
func (h *ScopeHandler) Create(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	var req dto.CreateScopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	scope, err := h.scopeService.Create(param.ID, middleware.CurrentUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, scope)
}

// GetByProject 获取项目范围
// @Summary 获取项目范围
// @Tags Scope
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Success 200 {object} responses.Response{data=dto.ScopeResponse}
// @Router /api/v1/projects/{id}/scope [get]
func (h *ScopeHandler) GetByProject(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	scope, err := h.scopeService.GetByProject(param.ID, middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, scope)
}

// Update 更新项目范围
// @Summary 更新项目范围, 仅所有者
// @Tags Scope
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Param request body dto.UpdateScopeRequest true "更新范围请求"
// @Success 200 {object} responses.Response{data=dto.ScopeResponse}
// @Router /api/v1/projects/{id}/scope [put]
func (h *ScopeHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	var req dto.UpdateScopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	scope, err := h.scopeService.Update(param.ID, middleware.CurrentUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, scope)
}
