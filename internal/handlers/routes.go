package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"items-api/pkg/lambda"
)

// SetupRoutes exposes the dispatcher on HTTP routes for server mode. The gin
// layer only adapts the transport; routing and status decisions stay in
// Dispatch so both deployment modes behave identically.
func SetupRoutes(router *gin.Engine, handler *ItemHandler) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "items-api",
		})
	})

	items := router.Group("/items")
	{
		items.POST("", dispatch(handler))
		items.GET("", dispatch(handler))
		items.GET("/:id", dispatch(handler))
		items.PUT("/:id", dispatch(handler))
		items.DELETE("/:id", dispatch(handler))
	}
}

// dispatch adapts a gin request into the generic envelope and writes the
// dispatcher's response back.
func dispatch(h *ItemHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
		}

		req := &lambda.Request{
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			Body:       body,
			PathParams: map[string]string{},
		}
		if id := c.Param("id"); id != "" {
			req.PathParams["id"] = id
		}

		resp := h.Dispatch(c.Request.Context(), req)
		c.Data(resp.StatusCode, resp.Headers["Content-Type"], resp.Body)
	}
}
