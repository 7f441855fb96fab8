package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/enterprise/aml-overview/internal/engine"
	"github.com/enterprise/aml-overview/internal/store"
)

func searchCustomersHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
			return
		}
		c.JSON(http.StatusOK, st.SearchBCN(query))
	}
}

func customerOverviewHandler(st *store.Store, eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		bcn := c.Param("bcn")
		overview, ok := buildCustomerOverview(st, eng, bcn)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "No transactions found for this business contact number"})
			return
		}
		c.JSON(http.StatusOK, overview)
	}
}
