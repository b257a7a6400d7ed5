package controller

import (
	"errors"
	"net/http"

	"messenger/policy"
	"messenger/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthController ...
type AuthController struct {
	tokens *service.TokenService
	users  *service.UserService
	logger *logrus.Logger
}

func NewAuthController(tokens *service.TokenService, users *service.UserService, logger *logrus.Logger) *AuthController {
	return &AuthController{tokens: tokens, users: users, logger: logger}
}

// TokenValid ...
// Aborts with 401 unless the request carries a valid bearer token; otherwise stores the
// bearer in the context for the handlers that follow.
func (a *AuthController) TokenValid(c *gin.Context) {
	tokenAuth, err := a.tokens.ExtractTokenMetadata(c.Request)
	if err != nil {
		//Token either expired or not valid
		a.logger.Infof("[%s] Rejected token: %s", c.GetString("requestId"), err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
		return
	}

	c.Set("UserId", tokenAuth.UserID)
	c.Set("UserName", tokenAuth.UserName)
	c.Set("Scopes", tokenAuth.Scopes)
}

// Refresh ...
func (a *AuthController) Refresh(c *gin.Context) {
	accessToken := a.tokens.ExtractToken(c.Request)

	token, err := a.users.Refresh(c.Request.Context(), accessToken)
	if errors.Is(err, service.ErrInvalidToken) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid authorization, please login again"})
		return
	}
	if err != nil {
		a.logger.Errorf("[%s] Failed to refresh token: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// currentUser returns the bearer stored by TokenValid.
func currentUser(c *gin.Context) policy.User {
	return policy.User{
		ID:     c.GetUint("UserId"),
		Scopes: c.GetStringSlice("Scopes"),
	}
}
