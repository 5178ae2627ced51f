package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizcardx/internal/service"
)

// AuthHandler handles token issuance.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Token handles POST /api/v1/auth/token
// @Summary Issue an access token
// @Description Exchange client credentials for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Client credentials"
// @Success 200 {object} Response{data=service.TokenResponse}
// @Failure 400 {object} ErrorResponseBody "Invalid request body"
// @Failure 401 {object} ErrorResponseBody "Invalid credentials"
// @Router /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var input service.TokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	tok, err := h.authService.IssueToken(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, tok)
}
