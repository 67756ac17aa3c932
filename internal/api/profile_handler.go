package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/api/middleware"
	"resumeforge/internal/profile"
)

// ProfileHandler 负责简历资料的读取与整体覆盖保存。
type ProfileHandler struct {
	store *profile.Store
}

// NewProfileHandler 构造 ProfileHandler。
func NewProfileHandler(store *profile.Store) *ProfileHandler {
	return &ProfileHandler{store: store}
}

type profileResponse struct {
	HasProfile bool             `json:"has_profile"`
	Profile    *profile.Profile `json:"profile,omitempty"`
}

// GetProfile 返回当前用户的简历资料。
// 尚未保存过资料时返回 200 与 has_profile=false，而不是 404：
// 前端据此展示空表单。
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	p, err := h.store.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrNoProfile) {
			c.JSON(http.StatusOK, profileResponse{HasProfile: false})
			return
		}
		middleware.LoggerFromContext(c).Error("load profile failed", slog.Any("error", err))
		Internal(c, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, profileResponse{HasProfile: true, Profile: &p})
}

// SaveProfile 整体覆盖当前用户的简历资料。
// 省略的字段等同于清空，调用方每次都要提交完整快照。
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var p profile.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		BadRequest(c, err.Error())
		return
	}

	if err := h.store.Save(c.Request.Context(), userID, p); err != nil {
		middleware.LoggerFromContext(c).Error("save profile failed", slog.Any("error", err))
		Internal(c, "failed to save profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile saved"})
}
