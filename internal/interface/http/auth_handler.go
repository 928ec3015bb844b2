package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/heart-api/internal/application"
	"github.com/oksasatya/heart-api/pkg/response"
	"github.com/oksasatya/heart-api/pkg/validation"
)

type AuthHandler struct {
	base
	Service *application.AuthService
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, debug bool) *AuthHandler {
	return &AuthHandler{base: base{Logger: logger, Debug: debug}, Service: svc}
}

const msgIdentifier = "Please provide a valid email address or phone number (+91XXXXXXXXXX)"

var (
	signupMessages = validation.Messages{
		"email":           msgIdentifier,
		"password":        "Password must be at least 6 characters long",
		"confirmPassword": "Passwords do not match",
	}
	loginMessages = validation.Messages{
		"email":    msgIdentifier,
		"password": "Password is required",
	}
)

type signupRequest struct {
	Email           string `json:"email" binding:"identifier"`
	Password        string `json:"password" binding:"pwd"`
	ConfirmPassword string `json:"confirmPassword" binding:"omitempty,eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"identifier"`
	Password string `json:"password" binding:"required"`
}

type userView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type authPayload struct {
	User  userView `json:"user"`
	Token string   `json:"token"`
}

func authView(res *application.AuthResult) authPayload {
	return authPayload{
		User:  userView{ID: res.User.ID, Email: res.User.Email, CreatedAt: res.User.CreatedAt},
		Token: res.Token,
	}
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if !bind(c, &req, signupMessages) {
		return
	}
	res, err := h.Service.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err, "Error creating user account")
		return
	}
	response.Success(c, http.StatusCreated, authView(res), "User created successfully", nil)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req, loginMessages) {
		return
	}
	res, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err, "Error logging in")
		return
	}
	response.Success(c, http.StatusOK, authView(res), "Login successful", nil)
}

// Logout POST /api/auth/logout. Tokens are stateless; the client drops it.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success[any](c, http.StatusOK, nil, "Logout successful. Please remove the token from client.", nil)
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Service.Me(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err, "Error fetching user data")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "", nil)
}
