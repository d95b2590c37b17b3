package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse é a resposta do health check
type HealthResponse struct {
	Status string `json:"status"`
	Env    string `json:"env"`
}

// Health responde ok com o ambiente atual
//
//	@Summary	Health check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Router		/health [get]
func Health(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{Status: "ok", Env: env})
	}
}
