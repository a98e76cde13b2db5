package delivery

import (
	"net/http"
	"strings"

	"medigate/domain"
	"medigate/middleware"
	"medigate/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	verUC domain.VerificationUseCase
}

func NewAdminHandler(r *gin.Engine, verUC domain.VerificationUseCase, codec *utils.TokenCodec, userRepo domain.UserRepository) {
	handler := &AdminHandler{verUC: verUC}

	admin := r.Group("/admin")
	admin.Use(middleware.Authenticate(codec))
	admin.Use(middleware.RequireRole(userRepo, domain.RoleAdmin))
	{
		admin.GET("/verifications/pending", handler.GetPendingVerifications)
		admin.POST("/verifications/approve", handler.ApproveVerification)
		admin.POST("/verifications/reject", handler.RejectVerification)
	}
}

func (h *AdminHandler) GetPendingVerifications(c *gin.Context) {
	pending, err := h.verUC.PendingVerifications(c.Request.Context())
	if err != nil {
		utils.PrintLogInfo(nil, 400, "GetPendingVerifications", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": sanitizeError(err, "getPendingVerifications"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Pending verifications retrieved successfully",
		"data":    pending,
	})
}

type ApproveVerificationRequest struct {
	UserID string `json:"userId" binding:"required"`
	Notes  string `json:"notes"`
}

func (h *AdminHandler) ApproveVerification(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Authentication required",
		})
		return
	}

	var req ApproveVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  []string{"User ID is required"},
		})
		return
	}

	if err := h.verUC.Approve(c.Request.Context(), req.UserID, principal.UserID, strings.TrimSpace(req.Notes)); err != nil {
		utils.PrintLogInfo(&principal.Email, 400, "ApproveVerification", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": sanitizeError(err, "approveVerification"),
		})
		return
	}

	utils.PrintLogInfo(&principal.Email, 200, "ApproveVerification", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User verification approved successfully",
	})
}

type RejectVerificationRequest struct {
	UserID string `json:"userId" binding:"required"`
	Notes  string `json:"notes" binding:"required"`
}

func (h *AdminHandler) RejectVerification(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Authentication required",
		})
		return
	}

	var req RejectVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var errs []string
		if req.UserID == "" {
			errs = append(errs, "User ID is required")
		}
		if strings.TrimSpace(req.Notes) == "" {
			errs = append(errs, "Rejection reason is required")
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  errs,
		})
		return
	}

	notes := strings.TrimSpace(req.Notes)
	if notes == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  []string{"Rejection reason is required"},
		})
		return
	}

	if err := h.verUC.Reject(c.Request.Context(), req.UserID, principal.UserID, notes); err != nil {
		utils.PrintLogInfo(&principal.Email, 400, "RejectVerification", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": sanitizeError(err, "rejectVerification"),
		})
		return
	}

	utils.PrintLogInfo(&principal.Email, 200, "RejectVerification", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User verification rejected",
	})
}
