package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"gitecal/internal/app/dto"
	CalendarApp "gitecal/internal/app/handlers/calendar"
	"gitecal/internal/app/queries"
)

type OverviewHandler struct {
	Queries queries.Bus
}

func (h OverviewHandler) Overview(c *gin.Context) {
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

	result, err := queries.Ask[CalendarApp.GetOverviewQuery, dto.CalendarOverview](
		c.Request.Context(), h.Queries, CalendarApp.GetOverviewQuery{From: from, To: to})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ OverviewHTTP = OverviewHandler{}
