package document

import (
	"net/http"

	"CollabSphere/logger"
	"CollabSphere/middleware/security"
	"CollabSphere/module/document/model"
	"CollabSphere/module/document/service"
	"CollabSphere/tools/errs"

	"github.com/gin-gonic/gin"
)

// ===== REST handlers =====

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.Create)
	r.GET("", h.List)
	r.GET("/:id", h.Get)
	r.PUT("/:id", h.Update)
	r.DELETE("/:id", h.Delete)
	r.GET("/:id/versions", h.Versions)
	r.POST("/:id/versions/:versionId/restore", h.Restore)
}

type createReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updateReq struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	doc, err := h.svc.Create(c.Request.Context(), req.Title, req.Content, security.UserID(c))
	if err != nil {
		replyErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "document": doc})
}

func (h *Handler) List(c *gin.Context) {
	docs, err := h.svc.List(c.Request.Context(), security.UserID(c))
	if err != nil {
		replyErr(c, err)
		return
	}
	if docs == nil {
		docs = []*model.Document{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "documents": docs})
}

func (h *Handler) Get(c *gin.Context) {
	doc, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		replyErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "document": doc})
}

func (h *Handler) Update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	doc, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.Title, req.Content, security.UserID(c))
	if err != nil {
		replyErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "document": doc})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		replyErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Document deleted successfully"})
}

func (h *Handler) Versions(c *gin.Context) {
	versions, err := h.svc.Versions(c.Request.Context(), c.Param("id"))
	if err != nil {
		replyErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "versions": versions})
}

func (h *Handler) Restore(c *gin.Context) {
	doc, err := h.svc.Restore(c.Request.Context(), c.Param("id"), c.Param("versionId"), security.UserID(c))
	if err != nil {
		replyErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "document": doc, "message": "Document restored successfully"})
}

func replyErr(c *gin.Context, err error) {
	if errs.ErrRecordNotFound.Is(err) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
		return
	}
	logger.Errorf("[DocAPI] request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
}
