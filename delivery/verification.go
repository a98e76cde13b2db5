package delivery

import (
	"context"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"medigate/domain"
	"medigate/middleware"
	"medigate/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type VerificationHandler struct {
	verUC domain.VerificationUseCase
	docs  domain.DocumentStore
}

func NewVerificationHandler(r *gin.Engine, verUC domain.VerificationUseCase, docs domain.DocumentStore, codec *utils.TokenCodec) {
	handler := &VerificationHandler{verUC: verUC, docs: docs}

	protected := r.Group("/verification")
	protected.Use(middleware.Authenticate(codec))
	{
		protected.POST("/submit", handler.Submit)
		protected.POST("/resubmit", handler.Resubmit)
	}
}

func (h *VerificationHandler) Submit(c *gin.Context) {
	h.handleSubmission(c, "submitVerification", h.verUC.Submit)
}

func (h *VerificationHandler) Resubmit(c *gin.Context) {
	h.handleSubmission(c, "resubmitVerification", h.verUC.Resubmit)
}

// handleSubmission is shared by submit and resubmit: same multipart shape and
// validation, different state transition.
func (h *VerificationHandler) handleSubmission(c *gin.Context, operation string, apply func(context.Context, domain.VerificationSubmission) error) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Authentication required",
		})
		return
	}

	license := strings.TrimSpace(c.PostForm("medicalLicenseNumber"))
	front, frontErr := c.FormFile("idDocumentFront")
	back, backErr := c.FormFile("idDocumentBack")

	var errs []string
	if license == "" {
		errs = append(errs, "Medical license number is required")
	}
	if frontErr != nil {
		errs = append(errs, "Front side of ID document is required")
	}
	if backErr != nil {
		errs = append(errs, "Back side of ID document is required")
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  errs,
		})
		return
	}

	frontPath, err := h.saveDocument(c, front, operation)
	if err != nil {
		return
	}
	backPath, err := h.saveDocument(c, back, operation)
	if err != nil {
		// The front document is already on disk; don't leave it orphaned.
		if removeErr := os.Remove(frontPath); removeErr != nil {
			log.Warn().Err(removeErr).Str("path", frontPath).Msg("failed to remove orphaned document")
		}
		return
	}

	if err := apply(c.Request.Context(), domain.VerificationSubmission{
		UserID:               principal.UserID,
		MedicalLicenseNumber: license,
		IDDocumentFrontPath:  frontPath,
		IDDocumentBackPath:   backPath,
	}); err != nil {
		utils.PrintLogInfo(&principal.Email, 400, operation, &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": sanitizeError(err, operation),
		})
		return
	}

	message := "Verification documents submitted successfully. Your account will be reviewed by our team."
	if operation == "resubmitVerification" {
		message = "Verification documents resubmitted successfully. Your account will be reviewed again by our team."
	}

	utils.PrintLogInfo(&principal.Email, 200, operation, nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

// saveDocument stores one upload and writes the error response itself when
// the file is rejected, so callers just bail on a non-nil error.
func (h *VerificationHandler) saveDocument(c *gin.Context, file *multipart.FileHeader, operation string) (string, error) {
	path, err := h.docs.Save(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": sanitizeError(err, operation),
		})
		return "", err
	}
	return path, nil
}
