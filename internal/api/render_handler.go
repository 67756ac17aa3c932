package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/api/middleware"
	"resumeforge/internal/render"
)

// RenderHandler 负责把用户资料渲染成指定模板的文档内容。
type RenderHandler struct {
	service *render.Service
}

// NewRenderHandler 构造 RenderHandler。
func NewRenderHandler(service *render.Service) *RenderHandler {
	return &RenderHandler{service: service}
}

// RenderTemplate 渲染并返回文档内容与建议的文档名。
// 渲染结果不落库，保存由文档接口负责。
func (h *RenderHandler) RenderTemplate(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	result, err := h.service.RenderForUser(c.Request.Context(), userID, c.Param("template"))
	if err != nil {
		switch {
		case errors.Is(err, render.ErrTemplateNotFound):
			NotFound(c, "template not found")
		case errors.Is(err, render.ErrProfileRequired):
			PreconditionFailed(c, "profile required")
		default:
			middleware.LoggerFromContext(c).Error("render failed", slog.Any("error", err))
			Internal(c, "failed to render template")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
