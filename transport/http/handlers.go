package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paypulse/showcase/core"
	"github.com/paypulse/showcase/ports"
	"github.com/paypulse/showcase/service"
)

// LoginRequest is the body of POST /login
type LoginRequest struct {
	Challenge string `json:"challenge" binding:"required"`
	Response  string `json:"response" binding:"required"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthHandlers contains HTTP handlers for auth and payroll endpoints
type AuthHandlers struct {
	authService *service.AuthService
	payroll     ports.PayrollSource
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService, payroll ports.PayrollSource) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		payroll:     payroll,
	}
}

// LoginPage renders the HTML login form with a fresh challenge
func (h *AuthHandlers) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, loginTemplateName, gin.H{
		"challenge": h.authService.IssueChallenge(),
	})
}

// Challenge returns a fresh challenge as JSON
func (h *AuthHandlers) Challenge(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"challenge": h.authService.IssueChallenge()})
}

// Login handles the login request
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": core.ErrMalformedRequest.Error()})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Challenge, req.Response)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMsg := "Failed to issue access token"

		switch {
		case errors.Is(err, core.ErrMalformedRequest):
			statusCode = http.StatusBadRequest
			errorMsg = core.ErrMalformedRequest.Error()
		case errors.Is(err, core.ErrInvalidCredentials):
			statusCode = http.StatusUnauthorized
			errorMsg = "Invalid credentials or bot detected"
		}

		c.JSON(statusCode, gin.H{"error": errorMsg})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   core.TokenTypeBearer,
	})
}

// Paystubs returns the protected payroll report
func (h *AuthHandlers) Paystubs(c *gin.Context) {
	report, err := h.payroll.Report(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load paystubs"})
		return
	}

	c.JSON(http.StatusOK, report)
}
