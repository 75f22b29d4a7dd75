package handler

import (
	"errors"
	"net/http"
	"strings"

	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
}

type authHandler struct {
	authService service.AuthService
	log         *logrus.Logger
}

func NewAuthHandler(authService service.AuthService, log *logrus.Logger) AuthHandler {
	return &authHandler{authService: authService, log: log}
}

// Password fields are pointers: the field must be present, but the
// empty string is a legal password (strength policy is out of scope).
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password *string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password *string `json:"password" binding:"required"`
}

// LoginFormRequest is the form-encoded variant of the login body, using
// the OAuth2 password-flow field names.
type LoginFormRequest struct {
	Username string  `form:"username" binding:"required"`
	Password *string `form:"password" binding:"required"`
}

// Register handles POST /users/register.
func (h *authHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for registration: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(req.Email, *req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyRegistered) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Email already registered"})
			return
		}
		h.log.Errorf("Failed to register user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	// Only the email goes back, never the hash or salt.
	c.JSON(http.StatusOK, gin.H{"email": user.Email})
}

// Login handles POST /users/login. The body is either JSON
// {email, password} or form-encoded username/password.
func (h *authHandler) Login(c *gin.Context) {
	var email, password string

	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.log.Errorf("Failed to bind JSON for login: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		email, password = req.Email, *req.Password
	} else {
		var req LoginFormRequest
		if err := c.ShouldBind(&req); err != nil {
			h.log.Errorf("Failed to bind form for login: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		email, password = req.Username, *req.Password
	}

	tokenString, err := h.authService.Login(email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
			return
		}
		h.log.Errorf("Failed to login user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": tokenString,
		"token_type":   "bearer",
	})
}
