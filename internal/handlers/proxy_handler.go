package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"ycsmatch/internal/services"

	"github.com/gin-gonic/gin"
)

type ProxyHandler struct {
	proxyService services.ProxyService
}

func NewProxyHandler(proxyService services.ProxyService) *ProxyHandler {
	return &ProxyHandler{proxyService: proxyService}
}

// @Summary      Forward a request to the scripted backend
// @Description  Relays method, JSON body and Authorization header to the upstream
// @Tags         Proxy
// @Accept       json
// @Produce      json
// @Param        path  query     string  true  "Upstream action path"  Enums(register, login, users, me, members, delete-user)
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /proxy [post]
func (h *ProxyHandler) Proxy(c *gin.Context) {
	path := c.Query("path")
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	status, raw, err := h.proxyService.Forward(
		c.Request.Method,
		path,
		c.Request.URL.Query(),
		c.GetHeader("Authorization"),
		body,
	)
	switch {
	case errors.Is(err, services.ErrNotConfigured):
		log.Printf("[proxy] upstream URL not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upstream URL not configured."})
	case errors.Is(err, services.ErrInvalidProxyPath):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid path"})
	case errors.Is(err, services.ErrInvalidProxyBody):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
	case errors.Is(err, services.ErrUpstreamDown):
		log.Printf("[proxy] upstream unavailable for path=%q", path)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Backend unavailable"})
	case err != nil:
		log.Printf("[proxy] forward failed for path=%q: err=%v", path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Proxy failed"})
	default:
		c.Data(status, "application/json; charset=utf-8", raw)
	}
}
