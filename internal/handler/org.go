package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

// OrgHandler handles organization endpoints.
type OrgHandler struct {
	orgs *service.OrgService
}

func NewOrgHandler(orgs *service.OrgService) *OrgHandler {
	return &OrgHandler{orgs: orgs}
}

// Create handles POST /api/orgs
func (h *OrgHandler) Create(c *gin.Context) {
	var req model.CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewCodedErrorResponse("VALIDATION_ERROR", err.Error(), ""))
		return
	}

	org, err := h.orgs.Create(c.Request.Context(), middleware.CallerFrom(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Organization created", org))
}

// Join handles POST /api/orgs/join
func (h *OrgHandler) Join(c *gin.Context) {
	var req model.JoinOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewCodedErrorResponse("VALIDATION_ERROR", err.Error(), ""))
		return
	}

	org, err := h.orgs.Join(c.Request.Context(), middleware.CallerFrom(c), req.InviteCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Joined organization", org))
}

// GetMine handles GET /api/orgs/me
func (h *OrgHandler) GetMine(c *gin.Context) {
	resp, err := h.orgs.GetMine(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("", resp))
}

// ChangeRole handles PUT /api/orgs/members/:userId/role
func (h *OrgHandler) ChangeRole(c *gin.Context) {
	var req model.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewCodedErrorResponse("VALIDATION_ERROR", err.Error(), ""))
		return
	}

	user, err := h.orgs.ChangeRole(c.Request.Context(), middleware.CallerFrom(c), c.Param("userId"), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Role updated", user))
}
