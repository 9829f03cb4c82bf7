package handlers

import (
	"time"

	"github.com/duwuzhou/article-cms/config"
	"github.com/duwuzhou/article-cms/helper"
	"github.com/duwuzhou/article-cms/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gopkg.in/go-playground/validator.v9"
)

type AuthHandler struct {
	Helper *helper.HTTPHelper
}

func NewAuthHandler(h *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{Helper: h}
}

// Login exchanges the admin password for a bearer token, so clients do not
// have to resend the password on every mutation.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	if err := h.Helper.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			h.Helper.SendValidationError(c, validationErrors)
			return
		}
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	if !config.CheckAdminPassword(req.Password) {
		h.Helper.SendForbiddenError(c, "Invalid password", h.Helper.EmptyJsonMap())
		return
	}

	token, err := generateToken()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Login success", models.AuthResponse{Token: token})
}

func generateToken() (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(now.Add(config.JWTExpiration)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(config.JWTSecret)
}
