package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/enterprise/aml-overview/internal/engine"
	"github.com/enterprise/aml-overview/internal/store"
)

func analysisAlertsHandler(st *store.Store, eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		bcn := c.Param("bcn")
		_, alerts, _, _, _, ok := analyzeCustomer(st, eng, bcn)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "No transactions found for this business contact number"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"bcn": bcn, "alerts": alerts})
	}
}

func riskBreakdownHandler(st *store.Store, eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		bcn := c.Param("bcn")
		_, _, risk, _, _, ok := analyzeCustomer(st, eng, bcn)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "No transactions found for this business contact number"})
			return
		}
		c.JSON(http.StatusOK, risk)
	}
}
