package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"resumeforge/internal/api/middleware"
	"resumeforge/internal/database"
	"resumeforge/internal/document"
	"resumeforge/internal/storage"
	"resumeforge/internal/tasks"
)

// DocumentHandler 负责已保存文档的增删改查与异步导出。
type DocumentHandler struct {
	store       *document.Store
	asynqClient *asynq.Client
	storage     *storage.Client
}

// NewDocumentHandler 构造 DocumentHandler。
func NewDocumentHandler(store *document.Store, asynqClient *asynq.Client, storageClient *storage.Client) *DocumentHandler {
	return &DocumentHandler{
		store:       store,
		asynqClient: asynqClient,
		storage:     storageClient,
	}
}

var errInvalidDocumentID = errors.New("invalid document id")

type saveDocumentRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type documentResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	PdfURL    string    `json:"pdf_url,omitempty"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newDocumentResponse(doc database.Document) documentResponse {
	return documentResponse{
		ID:        doc.ID,
		Name:      doc.Name,
		Content:   doc.Content,
		PdfURL:    doc.PdfUrl,
		Status:    doc.Status,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

// CreateDocument 保存一份新文档。
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req saveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	doc, err := h.store.Create(c.Request.Context(), userID, req.Name, req.Content)
	if err != nil {
		if errors.Is(err, document.ErrValidation) {
			BadRequest(c, err.Error())
			return
		}
		middleware.LoggerFromContext(c).Error("create document failed", slog.Any("error", err))
		Internal(c, "failed to save document")
		return
	}

	c.JSON(http.StatusCreated, newDocumentResponse(doc))
}

// ListDocuments 列出当前用户的全部文档摘要，最近更新在前。
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	list, err := h.store.ListForOwner(c.Request.Context(), userID)
	if err != nil {
		middleware.LoggerFromContext(c).Error("list documents failed", slog.Any("error", err))
		Internal(c, "failed to list documents")
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetDocument 返回指定文档的完整内容。
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	doc, err := h.getDocumentForUser(c, userID)
	if err != nil {
		h.replyDocumentError(c, err)
		return
	}

	c.JSON(http.StatusOK, newDocumentResponse(doc))
}

// UpdateDocument 覆盖指定文档的名称与内容。
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	id, err := parseDocumentID(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid document id")
		return
	}

	var req saveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	doc, err := h.store.Update(c.Request.Context(), id, userID, req.Name, req.Content)
	if err != nil {
		h.replyDocumentError(c, err)
		return
	}

	c.JSON(http.StatusOK, newDocumentResponse(doc))
}

// DeleteDocument 删除指定文档，并尽力清理已导出的 PDF 对象。
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	id, err := parseDocumentID(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid document id")
		return
	}

	ctx := c.Request.Context()
	doc, err := h.store.GetByID(ctx, id, userID)
	if err != nil {
		h.replyDocumentError(c, err)
		return
	}

	if err := h.store.Delete(ctx, id, userID); err != nil {
		h.replyDocumentError(c, err)
		return
	}

	// PDF 对象清理失败不影响删除结果。
	if doc.PdfUrl != "" && h.storage != nil {
		if err := h.storage.DeleteObject(ctx, doc.PdfUrl); err != nil {
			middleware.LoggerFromContext(c).Warn("delete exported pdf failed",
				slog.Uint64("document_id", uint64(id)),
				slog.Any("error", err),
			)
		}
	}

	c.Status(http.StatusNoContent)
}

// ExportDocument 将 PDF 导出任务入队并立即返回 202。
func (h *DocumentHandler) ExportDocument(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	doc, err := h.getDocumentForUser(c, userID)
	if err != nil {
		h.replyDocumentError(c, err)
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewDocumentExportTask(doc.ID, correlationID)
	if err != nil {
		Internal(c, "failed to create task")
		return
	}

	info, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(5))
	if err != nil {
		Internal(c, "failed to enqueue pdf export")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "PDF export request accepted",
		"task_id": info.ID,
	})
}

// GetDownloadLink 生成已导出 PDF 的预签名下载链接。
func (h *DocumentHandler) GetDownloadLink(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	doc, err := h.getDocumentForUser(c, userID)
	if err != nil {
		h.replyDocumentError(c, err)
		return
	}

	if doc.PdfUrl == "" {
		Conflict(c, "pdf not ready")
		return
	}

	signedURL, err := h.storage.GeneratePresignedURL(c.Request.Context(), doc.PdfUrl, 5*time.Minute)
	if err != nil {
		middleware.LoggerFromContext(c).Error("generate download link failed", slog.Any("error", err))
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL})
}

func (h *DocumentHandler) getDocumentForUser(c *gin.Context, userID uint) (database.Document, error) {
	id, err := parseDocumentID(c.Param("id"))
	if err != nil {
		return database.Document{}, err
	}
	return h.store.GetByID(c.Request.Context(), id, userID)
}

func (h *DocumentHandler) replyDocumentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errInvalidDocumentID):
		BadRequest(c, "invalid document id")
	case errors.Is(err, document.ErrValidation):
		BadRequest(c, err.Error())
	case errors.Is(err, document.ErrNotFound):
		NotFound(c, "document not found")
	default:
		middleware.LoggerFromContext(c).Error("document operation failed", slog.Any("error", err))
		Internal(c, "internal error")
	}
}

func parseDocumentID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidDocumentID
	}
	return uint(id), nil
}

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case uint64:
		return uint(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}
