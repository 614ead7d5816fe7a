package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/mrlokans/elibrary/internal/auth"
	"github.com/mrlokans/elibrary/internal/config"
	"github.com/mrlokans/elibrary/internal/entities"
)

// AuthService covers registration and login.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*entities.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	TokenTTL() time.Duration
}

type AuthController struct {
	service AuthService
}

func NewAuthController(service AuthService) *AuthController {
	return &AuthController{service: service}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required"`
}

// loginForm follows the OAuth2 password form: the email goes in "username".
type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Register creates an account.
// POST /auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := ac.service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err, "register")
		return
	}

	respondCreated(c, toUserView(user), "User registered successfully")
}

// Login exchanges credentials for a bearer token. The body is not wrapped
// in the envelope so standard OAuth2 password clients can read it.
// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		respondValidationError(c, err)
		return
	}

	token, err := ac.service.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		respondError(c, err, "login")
		return
	}

	c.JSON(http.StatusOK, TokenView{
		AccessToken: token,
		TokenType:   config.DefaultTokenType,
		ExpiresIn:   int64(ac.service.TokenTTL() / time.Second),
	})
}

// Me returns the authenticated caller.
// GET /auth/me
func (ac *AuthController) Me(c *gin.Context) {
	respondOK(c, toUserView(auth.CurrentUser(c)), "")
}
