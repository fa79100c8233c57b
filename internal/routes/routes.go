package routes

import (
	"net/http"

	"ycsmatch/internal/handlers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	resetHandler *handlers.PasswordResetHandler,
	proxyHandler *handlers.ProxyHandler,
) *gin.Engine {

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	r.POST("/login", authHandler.Login)
	r.POST("/forgot-password", resetHandler.ForgotPassword)
	r.POST("/reset-password", resetHandler.ResetPassword)

	r.GET("/proxy", proxyHandler.Proxy)
	r.POST("/proxy", proxyHandler.Proxy)

	return r
}
