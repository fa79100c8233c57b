package handlers

import (
	"errors"
	"log"
	"net/http"

	"ycsmatch/internal/models"
	"ycsmatch/internal/services"

	"github.com/gin-gonic/gin"
)

type PasswordResetHandler struct {
	resetService services.PasswordResetService
}

func NewPasswordResetHandler(resetService services.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{resetService: resetService}
}

// @Summary      Request a password reset link
// @Description  Always answers success, whether or not the email is registered
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.ForgotPasswordRequest  true  "Account email"
// @Success      200      {object}  map[string]bool
// @Failure      500      {object}  map[string]string
// @Router       /forgot-password [post]
func (h *PasswordResetHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	// a malformed body is treated like an empty email: still success,
	// so the response shape never depends on the input
	_ = c.ShouldBindJSON(&req)

	if err := h.resetService.RequestReset(req.Email); err != nil {
		log.Printf("[password-reset][request] failed: err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Request failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Reset the password with a token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.ResetPasswordRequest  true  "Token and new password"
// @Success      200      {object}  map[string]bool
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /reset-password [post]
func (h *PasswordResetHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	_ = c.ShouldBindJSON(&req) // empty fields fail validation below

	err := h.resetService.ResetPassword(req.Token, req.NewPassword)
	switch {
	case errors.Is(err, services.ErrInvalidResetInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token or password (8 characters minimum)"})
	case errors.Is(err, services.ErrTokenInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
	case errors.Is(err, services.ErrTokenExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token has expired"})
	case err != nil:
		log.Printf("[password-reset][reset] failed: err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reset failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
