// Package api wires the gin HTTP surface: upload, customer, and analysis
// routes over the reference-data store and the AML engine.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/enterprise/aml-overview/internal/engine"
	"github.com/enterprise/aml-overview/internal/store"
)

const apiV1Prefix = "/api/v1"

var corsOrigins = []string{"http://localhost:3000"}

// NewRouter builds the gin engine with the teacher's middleware chain
// (panic recovery, request ID, access logging, CORS) and mounts every
// upload/customer/analysis route under apiV1Prefix.
func NewRouter(st *store.Store, eng *engine.Engine) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(loggingMiddleware())
	r.Use(corsMiddleware())

	r.GET("/health", healthHandler)
	r.GET("/", rootHandler)

	v1 := r.Group(apiV1Prefix)

	uploadRoutes := v1.Group("/upload")
	{
		uploadRoutes.POST("/transactions", uploadTransactionsHandler(st))
		uploadRoutes.POST("/watchlist", uploadWatchlistHandler(st))
		uploadRoutes.POST("/high-risk-countries", uploadHighRiskCountriesHandler(st))
		uploadRoutes.POST("/work-instructions", uploadWorkInstructionsHandler(st))
		uploadRoutes.GET("/status", uploadStatusHandler(st))
		uploadRoutes.DELETE("/clear", clearHandler(st))
	}

	customerRoutes := v1.Group("/customer")
	{
		customerRoutes.GET("/search", searchCustomersHandler(st))
		customerRoutes.GET("/:bcn/overview", customerOverviewHandler(st, eng))
	}

	analysisRoutes := v1.Group("/analysis")
	{
		analysisRoutes.GET("/:bcn/alerts", analysisAlertsHandler(st, eng))
		analysisRoutes.GET("/:bcn/risk-breakdown", riskBreakdownHandler(st, eng))
	}

	return r
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":       "AML Transaction Overview Engine",
		"version":    "1.0.0",
		"api_prefix": apiV1Prefix,
		"endpoints": gin.H{
			"upload_transactions":        apiV1Prefix + "/upload/transactions",
			"upload_watchlist":           apiV1Prefix + "/upload/watchlist",
			"upload_high_risk_countries": apiV1Prefix + "/upload/high-risk-countries",
			"upload_work_instructions":   apiV1Prefix + "/upload/work-instructions",
			"upload_status":              apiV1Prefix + "/upload/status",
			"clear_data":                 apiV1Prefix + "/upload/clear",
			"customer_search":            apiV1Prefix + "/customer/search",
			"customer_overview":          apiV1Prefix + "/customer/{bcn}/overview",
			"customer_alerts":            apiV1Prefix + "/analysis/{bcn}/alerts",
			"risk_breakdown":             apiV1Prefix + "/analysis/{bcn}/risk-breakdown",
		},
	})
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("%d", time.Now().UnixNano())
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("request_id", c.GetString("request_id")).
			Str("client_ip", c.ClientIP()).
			Msg("request completed")
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		for _, allowed := range corsOrigins {
			if origin == allowed {
				c.Header("Access-Control-Allow-Origin", origin)
				break
			}
		}
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
