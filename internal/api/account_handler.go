package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resumeforge/internal/api/middleware"
	"resumeforge/internal/auth"
	"resumeforge/internal/database"
)

// AccountHandler 处理账号信息的查看与修改。
type AccountHandler struct {
	db          *gorm.DB
	authService *auth.AuthService
}

// NewAccountHandler 构造 AccountHandler。
func NewAccountHandler(db *gorm.DB, authService *auth.AuthService) *AccountHandler {
	return &AccountHandler{db: db, authService: authService}
}

type accountResponse struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// GetAccount 返回当前用户的账号信息。
func (h *AccountHandler) GetAccount(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var user database.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		middleware.LoggerFromContext(c).Error("load account failed", slog.Any("error", err))
		Internal(c, "failed to load account")
		return
	}

	c.JSON(http.StatusOK, accountResponse{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
	})
}

type updateAccountRequest struct {
	FullName string `json:"full_name" binding:"required,min=1,max=128"`
	Password string `json:"password" binding:"omitempty,min=8,max=72"`
}

// UpdateAccount 修改显示名，可选地更新密码。
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c).With(slog.Uint64("user_id", uint64(userID)))

	updates := map[string]any{
		"full_name": strings.TrimSpace(req.FullName),
	}
	if req.Password != "" {
		hashed, err := h.authService.HashPassword(req.Password)
		if err != nil {
			logger.Error("hash password failed", slog.Any("error", err))
			Internal(c, "internal error")
			return
		}
		updates["password_hash"] = hashed
	}

	if err := h.db.WithContext(ctx).
		Model(&database.User{}).
		Where("id = ?", userID).
		Updates(updates).Error; err != nil {
		logger.Error("update account failed", slog.Any("error", err))
		Internal(c, "failed to update account")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account updated"})
}
