package ginserver

import (
	"fmt"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"gitecal/internal/domain/shared/dates"
)

// requiredDay reads a strict YYYY-MM-DD query parameter, answering 400 on a
// missing or malformed value.
func requiredDay(c *gin.Context, name string) (dates.Day, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s is required", name)})
		return dates.Day{}, false
	}
	day, err := dates.ParseDay(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s must be formatted as YYYY-MM-DD", name)})
		return dates.Day{}, false
	}
	return day, true
}

// optionalDay reads a YYYY-MM-DD query parameter, falling back when absent.
// A present but malformed value is still a 400.
func optionalDay(c *gin.Context, name string, fallback dates.Day) (dates.Day, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	day, err := dates.ParseDay(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s must be formatted as YYYY-MM-DD", name)})
		return dates.Day{}, false
	}
	return day, true
}

func today() dates.Day {
	return dates.DayOf(time.Now())
}
