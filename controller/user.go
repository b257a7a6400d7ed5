package controller

import (
	"errors"
	"net/http"

	"messenger/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserController ...
type UserController struct {
	users  *service.UserService
	logger *logrus.Logger
}

func NewUserController(users *service.UserService, logger *logrus.Logger) *UserController {
	return &UserController{users: users, logger: logger}
}

func (ctrl *UserController) Register(c *gin.Context) {
	ctrl.logger.Infof("[%s] Handling user registration request", c.GetString("requestId"))

	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		ctrl.logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := ctrl.users.Register(c.Request.Context(), &service.User{
		Username: input.Username,
		Password: input.Password,
		Email:    input.Email,
	})
	if errors.Is(err, service.ErrWeakPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8 to 64 characters and mix at least three of digits, lower case, upper case and symbols"})
		return
	}
	if errors.Is(err, service.ErrUserExists) {
		ctrl.logger.Warnf("[%s] User %s already exists", c.GetString("requestId"), input.Username)
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	}
	if err != nil {
		ctrl.logger.Warnf("[%s] Failed to register user %s: %s", c.GetString("requestId"), input.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	ctrl.logger.Infof("[%s] User %s registered successfully", c.GetString("requestId"), user.Username)
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "id": user.ID})
}

func (ctrl *UserController) Login(c *gin.Context) {
	ctrl.logger.Infof("[%s] Handling user login request", c.GetString("requestId"))

	var loginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	token, err := ctrl.users.Login(c.Request.Context(), &service.User{
		Username: loginRequest.Username,
		Password: loginRequest.Password,
	})
	if errors.Is(err, service.ErrInvalidCredentials) {
		ctrl.logger.Warnf("[%s] User %s failed to login: %s", c.GetString("requestId"), loginRequest.Username, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		ctrl.logger.Errorf("[%s] Login of %s failed: %s", c.GetString("requestId"), loginRequest.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	ctrl.logger.Infof("[%s] User %s login successfully", c.GetString("requestId"), loginRequest.Username)
	c.JSON(http.StatusOK, gin.H{"token": token})
}
