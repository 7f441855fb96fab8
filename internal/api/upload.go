package api

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/enterprise/aml-overview/internal/ingestion"
	"github.com/enterprise/aml-overview/internal/models"
	"github.com/enterprise/aml-overview/internal/store"
)

var allowedExtensions = map[string]bool{".xlsx": true, ".xls": true}

// validateExtension checks the uploaded filename against the allowed
// spreadsheet extensions, aborting the request with 400 on failure.
func validateExtension(c *gin.Context, filename string) bool {
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No filename provided"})
		return false
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only .xlsx and .xls files are supported"})
		return false
	}
	return true
}

func readUploadedFile(c *gin.Context) ([]byte, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return nil, false
	}
	if !validateExtension(c, fileHeader.Filename) {
		return nil, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return nil, false
	}
	return data, true
}

func uploadTransactionsHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok := readUploadedFile(c)
		if !ok {
			return
		}
		txs, warnings, err := ingestion.ParseTransactions(data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		st.SetTransactions(txs)
		c.JSON(http.StatusOK, models.UploadResponse{
			Status:      "success",
			RecordCount: len(txs),
			Warnings:    warnings,
		})
	}
}

func uploadWatchlistHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok := readUploadedFile(c)
		if !ok {
			return
		}
		entries, warnings, err := ingestion.ParseWatchlist(data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		st.SetWatchlist(entries)
		c.JSON(http.StatusOK, models.UploadResponse{
			Status:      "success",
			RecordCount: len(entries),
			Warnings:    warnings,
		})
	}
}

func uploadHighRiskCountriesHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok := readUploadedFile(c)
		if !ok {
			return
		}
		countries, warnings, err := ingestion.ParseHighRiskCountries(data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		st.SetHighRiskCountries(countries)
		c.JSON(http.StatusOK, models.UploadResponse{
			Status:      "success",
			RecordCount: len(countries),
			Warnings:    warnings,
		})
	}
}

func uploadWorkInstructionsHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok := readUploadedFile(c)
		if !ok {
			return
		}
		instructions, warnings, err := ingestion.ParseWorkInstructions(data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		st.SetWorkInstructions(instructions)
		c.JSON(http.StatusOK, models.UploadResponse{
			Status:      "success",
			RecordCount: len(instructions),
			Warnings:    warnings,
		})
	}
}

func uploadStatusHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, st.UploadStatus())
	}
}

func clearHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		st.ClearAll()
		c.JSON(http.StatusOK, gin.H{
			"status":  "cleared",
			"message": "All data has been removed from memory.",
		})
	}
}
