package http

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// parseYearQuery reads ?year=YYYY, defaulting to the year of now.
// Responds with 400 and returns false when the value is malformed.
func parseYearQuery(c *gin.Context, now time.Time) (int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return now.Year(), true
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1 || year > 9999 {
		respondBadRequest(c, "invalid year, expected YYYY")
		return 0, false
	}
	return year, true
}

// parseMonthQuery reads ?month=YYYY-MM, defaulting to the month of now.
// The returned time is the first instant of that month in UTC.
func parseMonthQuery(c *gin.Context, now time.Time) (time.Time, bool) {
	raw := c.Query("month")
	if raw == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), true
	}
	month, err := time.Parse("2006-01", raw)
	if err != nil {
		respondBadRequest(c, "invalid month, expected YYYY-MM")
		return time.Time{}, false
	}
	return month, true
}

// parseLimitQuery reads ?limit=N clamped to [1, max], defaulting to def.
func parseLimitQuery(c *gin.Context, def, max int) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(def)))
	if err != nil || limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
