// Package router wires controllers and middleware into a gin engine.
package router

import (
	"net/http"

	"messenger/controller"
	"messenger/repository"
	"messenger/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Options struct {
	DB         *gorm.DB
	Tokens     *service.TokenService
	Logger     *logrus.Logger
	CORSOrigin string
}

func New(opts Options) *gin.Engine {
	messages := repository.NewMessageRepository(opts.DB)
	users := repository.NewUserRepository(opts.DB)
	userService := service.NewUserService(users, opts.Tokens)

	auth := controller.NewAuthController(opts.Tokens, userService, opts.Logger)
	user := controller.NewUserController(userService, opts.Logger)
	message := controller.NewMessageController(messages, users, opts.Logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORSMiddleware(opts.CORSOrigin))
	r.Use(RequestIDMiddleware())
	r.Use(LogMiddleware(opts.Logger))

	r.GET("/health", health(opts.DB))

	v1 := r.Group("/v1")
	{
		v1.POST("/user/register", user.Register)
		v1.POST("/user/login", user.Login)

		//Refresh the token
		v1.POST("/token/refresh", auth.Refresh)

		m := v1.Group("/messages", auth.TokenValid)
		m.GET("", message.Index)
		m.POST("", message.Store)
		m.GET("/:id", message.Show)
		m.PUT("/:id", message.Update)
		m.PATCH("/:id", message.Update)
		m.DELETE("/:id", message.Destroy)
	}

	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
