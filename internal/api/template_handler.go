package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/render"
)

// TemplateHandler 暴露固定的模板目录。
type TemplateHandler struct{}

func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

// ListTemplates 返回全部可用模板名，顺序固定。
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": render.Names()})
}
