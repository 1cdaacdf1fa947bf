package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskup/internal/dto"
	"taskup/internal/service"
	"taskup/pkg/responses"
	"taskup/pkg/utils"
)

type EmailHandler struct {
	verification service.VerificationService
}

func NewEmailHandler(verification service.VerificationService) *EmailHandler {
	return &EmailHandler{
		verification: verification,
	}
}

// SendCode 发送邮箱验证码
// @Summary 发送邮箱验证码
// @Tags Email
// @Accept json
// @Produce json
// @Param request body dto.SendCodeRequest true "发送验证码请求"
// @Success 200 {object} responses.Response
// @Router /api/v1/email/send-code [post]
func (h *EmailHandler) SendCode(c *gin.Context) {
	var req dto.SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.verification.SendCode(req.Email); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, "验证码已发送", nil)
}

// VerifyCode 校验邮箱验证码
// @Summary 校验邮箱验证码
// @Tags Email
// @Accept json
// @Produce json
// @Param request body dto.VerifyCodeRequest true "校验验证码请求"
// @Success 200 {object} responses.Response{data=dto.VerifyCodeResponse}
// @Router /api/v1/email/verify-code [post]
func (h *EmailHandler) VerifyCode(c *gin.Context) {
	var req dto.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	verified, err := h.verification.VerifyCode(req.Email, req.Code)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, &dto.VerifyCodeResponse{Verified: verified})
}
