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

type AttachmentHandler struct {
	attachmentService service.AttachmentService
}

func NewAttachmentHandler(attachmentService service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
	}
}

// Upload 上传附件
// @Summary 上传附件到项目或任务
// @Tags Attachment
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param entity_type formData string true "归属类型 project/task"
// @Param entity_id formData string true "归属实体ID"
// @Param file formData file true "文件"
// @Success 200 {object} responses.Response{data=dto.AttachmentResponse}
// @Router /api/v1/attachments [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	entityType := c.PostForm("entity_type")
	entityId := c.PostForm("entity_id")
	if entityType == "" || entityId == "" {
		responses.ErrorWithCode(c, http.StatusBadRequest, "缺少entity_type或entity_id")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "缺少上传文件", err.Error())
		return
	}

	attachment, err := h.attachmentService.Upload(c.Request.Context(), middleware.CurrentUserID(c), entityType, entityId, file)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, attachment)
}

// List 附件列表
// @Summary 查询项目或任务的附件列表
// @Tags Attachment
// @Produce json
// @Security BearerAuth
// @Param entity_type query string true "归属类型 project/task"
// @Param entity_id query string true "归属实体ID"
// @Success 200 {object} responses.Response{data=[]dto.AttachmentResponse}
// @Router /api/v1/attachments [get]
func (h *AttachmentHandler) List(c *gin.Context) {
	var query dto.AttachmentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	attachments, err := h.attachmentService.List(middleware.CurrentUserID(c), &query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, attachments)
}

// DownloadURL 获取下载链接
// @Summary 获取附件限时下载链接
// @Tags Attachment
// @Produce json
// @Security BearerAuth
// @Param id path string true "附件ID"
// @Success 200 {object} responses.Response{data=dto.DownloadURLResponse}
// @Router /api/v1/attachments/{id}/download [get]
func (h *AttachmentHandler) DownloadURL(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.attachmentService.DownloadURL(c.Request.Context(), param.ID, middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// Delete 删除附件
// @Summary 删除附件, 上传者或项目所有者
// @Tags Attachment
// @Produce json
// @Security BearerAuth
// @Param id path string true "附件ID"
// @Success 200 {object} responses.Response
// @Router /api/v1/attachments/{id} [delete]
func (h *AttachmentHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), param.ID, middleware.CurrentUserID(c)); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, "附件已删除", nil)
}
