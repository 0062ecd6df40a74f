package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"gitecal/internal/app/dto"
	AvailabilityApp "gitecal/internal/app/handlers/availability"
	"gitecal/internal/app/queries"
	"gitecal/internal/domain/shared/dates"
)

type AvailabilityHandler struct {
	Queries queries.Bus
}

// Calendar answers the per-day availability calendar. The window defaults
// to the next twelve months when from/to are absent.
func (h AvailabilityHandler) Calendar(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	from, ok := optionalDay(c, "from", today())
	if !ok {
		return
	}
	to, ok := optionalDay(c, "to", from.AddDays(365))
	if !ok {
		return
	}
	if _, err := dates.NewRange(from, to); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be after from"})
		return
	}

	result, err := queries.Ask[AvailabilityApp.GetCalendarQuery, dto.Calendar](
		c.Request.Context(), h.Queries, AvailabilityApp.GetCalendarQuery{From: from, To: to})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Check answers whether a specific stay can be booked and at what price.
func (h AvailabilityHandler) Check(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	checkIn, ok := requiredDay(c, "checkIn")
	if !ok {
		return
	}
	checkOut, ok := requiredDay(c, "checkOut")
	if !ok {
		return
	}

	result, err := queries.Ask[AvailabilityApp.CheckStayQuery, dto.Verdict](
		c.Request.Context(), h.Queries, AvailabilityApp.CheckStayQuery{CheckIn: checkIn, CheckOut: checkOut})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
