package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskboard/internal/config"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

// TicketHandler handles ticket endpoints, including the embedded todo and
// attachment sub-resources.
type TicketHandler struct {
	tickets     *service.TicketService
	maxUploadMB int64
}

func NewTicketHandler(cfg *config.Config, tickets *service.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets, maxUploadMB: cfg.Upload.MaxMB}
}

// List handles GET /api/tickets?project=<id>
func (h *TicketHandler) List(c *gin.Context) {
	projectID := c.Query("project")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, model.NewCodedErrorResponse("VALIDATION_ERROR", "project query parameter is required", ""))
		return
	}

	tickets, err := h.tickets.List(c.Request.Context(), middleware.CallerFrom(c), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("", tickets))
}

// Get handles GET /api/tickets/:id
func (h *TicketHandler) Get(c *gin.Context) {
	ticket, err := h.tickets.Get(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("", ticket))
}

// Create handles POST /api/tickets
func (h *TicketHandler) Create(c *gin.Context) {
	var req model.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewCodedErrorResponse("VALIDATION_ERROR", err.Error(), ""))
		return
	}

	ticket, err := h.tickets.Create(c.Request.Context(), middleware.CallerFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Ticket created", ticket))
}

// Update handles PUT /api/tickets/:id
func (h *TicketHandler) Update(c *gin.Context) {
	var req model.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewCodedErrorResponse("VALIDATION_ERROR", err.Error(), ""))
		return
	}

	ticket, err := h.tickets.Update(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Ticket updated", ticket))
}

// Delete handles DELETE /api/tickets/:id
func (h *TicketHandler) Delete(c *gin.Context) {
	if err := h.tickets.Delete(c.Request.Context(), middleware.CallerFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Ticket deleted", nil))
}

// AddTodo handles POST /api/tickets/:id/todos
func (h *TicketHandler) AddTodo(c *gin.Context) {
	var req model.AddTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewCodedErrorResponse("VALIDATION_ERROR", err.Error(), ""))
		return
	}

	ticket, err := h.tickets.AddTodo(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Todo added", ticket))
}

// BulkAddTodos handles POST /api/tickets/:id/todos/bulk
func (h *TicketHandler) BulkAddTodos(c *gin.Context) {
	var req model.BulkAddTodosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewCodedErrorResponse("VALIDATION_ERROR", err.Error(), ""))
		return
	}

	ticket, err := h.tickets.BulkAddTodos(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Todos added", ticket))
}

// ToggleTodo handles PATCH /api/tickets/:id/todos/:todoId/toggle
func (h *TicketHandler) ToggleTodo(c *gin.Context) {
	ticket, err := h.tickets.ToggleTodo(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), c.Param("todoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Todo toggled", ticket))
}

// DeleteTodo handles DELETE /api/tickets/:id/todos/:todoId
func (h *TicketHandler) DeleteTodo(c *gin.Context) {
	ticket, err := h.tickets.DeleteTodo(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), c.Param("todoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Todo deleted", ticket))
}

// SuggestTodos handles POST /api/tickets/:id/suggest-todos
func (h *TicketHandler) SuggestTodos(c *gin.Context) {
	var req model.SuggestTodosRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, model.NewCodedErrorResponse("VALIDATION_ERROR", err.Error(), ""))
			return
		}
	}

	ticket, err := h.tickets.SuggestTodos(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Todos suggested", ticket))
}

// AddAttachment handles POST /api/tickets/:id/attachments (multipart "file")
func (h *TicketHandler) AddAttachment(c *gin.Context) {
	// Reject oversized uploads before reading the body.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadMB<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewCodedErrorResponse("VALIDATION_ERROR", "multipart field \"file\" is required", err.Error()))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewCodedErrorResponse("VALIDATION_ERROR", "failed to read upload", err.Error()))
		return
	}
	defer f.Close()

	att, err := h.tickets.AddAttachment(
		c.Request.Context(),
		middleware.CallerFrom(c),
		c.Param("id"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		f,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Attachment uploaded", att))
}

// DownloadAttachment handles GET /api/tickets/:id/attachments/:attachmentId
func (h *TicketHandler) DownloadAttachment(c *gin.Context) {
	rc, att, err := h.tickets.OpenAttachment(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), c.Param("attachmentId"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", att.ContentType)
	c.Header("Content-Length", strconv.FormatInt(att.Size, 10))
	c.Header("Content-Disposition", `attachment; filename="`+att.FileName+`"`)
	c.Status(http.StatusOK)
	io.Copy(c.Writer, rc)
}

// DeleteAttachment handles DELETE /api/tickets/:id/attachments/:attachmentId
func (h *TicketHandler) DeleteAttachment(c *gin.Context) {
	if err := h.tickets.DeleteAttachment(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), c.Param("attachmentId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Attachment deleted", nil))
}
