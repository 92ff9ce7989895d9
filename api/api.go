// Package api is a stand-in allocation service for local development and
// integration tests. It implements the same /allocate contract the hosted
// backtest engine speaks - including the columnar transaction payload and
// the {"detail": ...} error body - over a deterministic synthetic market, so
// the client stack can be exercised without the real engine.
package api

import (
	"fmt"
	"strconv"
	"time"

	"assetbot/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type ApiHandler struct {
	// InitialMoney is the default account size when a request carries no
	// capital. Matches the engine's default.
	InitialMoney float64
}

func (m ApiHandler) Router() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(forceStatusMiddleware)

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"status": "ok"})
	})
	router.POST("/allocate", m.allocate)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	logger.Info("stub allocation service listening on :%d", port)
	return m.Router().Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.Error(err)
	c.AbortWithStatusJSON(code, gin.H{
		"detail": err.Error(),
	})
}

// forceStatusMiddleware lets tests force any status code via the
// X-Force-Status header, so client-side error classification (429, 5xx,
// unparseable bodies) can be exercised end to end.
func forceStatusMiddleware(c *gin.Context) {
	forced := c.GetHeader("X-Force-Status")
	if forced == "" {
		c.Next()
		return
	}
	code, err := strconv.Atoi(forced)
	if err != nil || code < 400 || code > 599 {
		c.Next()
		return
	}
	if c.GetHeader("X-Force-Plain-Body") != "" {
		c.String(code, "internal failure")
		c.Abort()
		return
	}
	returnErrorJsonCode(fmt.Errorf("forced failure for testing"), c, code)
}

func weekday(t time.Time) bool {
	return t.Weekday() != time.Saturday && t.Weekday() != time.Sunday
}
