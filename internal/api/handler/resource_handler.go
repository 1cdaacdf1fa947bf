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

type ResourceHandler struct {
	resourceService service.ResourceService
}

func NewResourceHandler(resourceService service.ResourceService) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
	}
}

// Create 创建资源
// @Summary 创建资源
// @Tags Resource
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Param request body dto.CreateResourceRequest true "创建资源请求"
// @Success 200 {object} responses.Response{data=dto.ResourceResponse}
// @Router /api/v1/projects/{id}/resources [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	var req dto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resource, err := h.resourceService.Create(param.ID, middleware.CurrentUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resource)
}

// ListByProject 项目资源列表
// @Summary 项目资源列表
// @Tags Resource
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Success 200 {object} responses.Response{data=[]dto.ResourceResponse}
// @Router /api/v1/projects/{id}/resources [get]
func (h *ResourceHandler) ListByProject(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resources, err := h.resourceService.ListByProject(param.ID, middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resources)
}

// Update 更新资源
// @Summary 更新资源
// @Tags Resource
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "资源ID"
// @Param request body dto.UpdateResourceRequest true "更新资源请求"
// @Success 200 {object} responses.Response{data=dto.ResourceResponse}
// @Router /api/v1/resources/{id} [put]
func (h *ResourceHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	var req dto.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resource, err := h.resourceService.Update(param.ID, middleware.CurrentUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resource)
}

// Delete 删除资源
// @Summary 删除资源, 仅项目所有者
// @Tags Resource
// @Produce json
// @Security BearerAuth
// @Param id path string true "资源ID"
// @Success 200 {object} responses.Response
// @Router /api/v1/resources/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.resourceService.Delete(param.ID, middleware.CurrentUserID(c)); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, "资源已删除", nil)
}
