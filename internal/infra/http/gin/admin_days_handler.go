package ginserver

import (
	"fmt"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"gitecal/internal/app/commands"
	"gitecal/internal/app/dto"
	AdminApp "gitecal/internal/app/handlers/admin"
	"gitecal/internal/app/queries"
	"gitecal/internal/domain/pricing"
	"gitecal/internal/domain/shared/dates"
	"gitecal/internal/domain/shared/money"
)

type AdminDaysHandler struct {
	Queries  queries.Bus
	Commands commands.Bus
}

func (h AdminDaysHandler) List(c *gin.Context) {
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

	result, err := queries.Ask[AdminApp.ListDaysQuery, []dto.DayOverride](
		c.Request.Context(), h.Queries, AdminApp.ListDaysQuery{From: from, To: to})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": result})
}

type upsertDaysRequest struct {
	Days []dayPayload `json:"days"`
}

type dayPayload struct {
	Date           string `json:"date"`
	PricePerNight  *int64 `json:"pricePerNight"`
	MinimumNights  *int   `json:"minimumNights"`
	IsAvailable    bool   `json:"isAvailable"`
	BlockReason    string `json:"blockReason"`
	Comment        string `json:"comment"`
	HighlightColor string `json:"highlightColor"`
}

func (h AdminDaysHandler) Upsert(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req upsertDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Days) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must not be empty"})
		return
	}

	overrides := make([]pricing.DayOverride, 0, len(req.Days))
	for _, d := range req.Days {
		date, err := dates.ParseDay(d.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("day %q must be formatted as YYYY-MM-DD", d.Date)})
			return
		}
		o := pricing.DayOverride{
			Date:           date,
			MinimumNights:  d.MinimumNights,
			IsAvailable:    d.IsAvailable,
			BlockReason:    d.BlockReason,
			Comment:        d.Comment,
			HighlightColor: d.HighlightColor,
		}
		if d.PricePerNight != nil {
			price := money.EUR(*d.PricePerNight)
			o.PricePerNight = &price
		}
		overrides = append(overrides, o)
	}

	result, err := commands.Dispatch[AdminApp.UpsertDaysCommand, AdminApp.DaysResult](
		c.Request.Context(), h.Commands, AdminApp.UpsertDaysCommand{Days: overrides})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

type deleteDaysRequest struct {
	Dates []string `json:"dates"`
}

func (h AdminDaysHandler) Delete(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req deleteDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Dates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must not be empty"})
		return
	}

	days := make([]dates.Day, 0, len(req.Dates))
	for _, raw := range req.Dates {
		d, err := dates.ParseDay(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("date %q must be formatted as YYYY-MM-DD", raw)})
			return
		}
		days = append(days, d)
	}

	result, err := commands.Dispatch[AdminApp.DeleteDaysCommand, AdminApp.DaysResult](
		c.Request.Context(), h.Commands, AdminApp.DeleteDaysCommand{Dates: days})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

type resetDaysRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (h AdminDaysHandler) Reset(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req resetDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	from, err := dates.ParseDay(req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be formatted as YYYY-MM-DD"})
		return
	}
	to, err := dates.ParseDay(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be formatted as YYYY-MM-DD"})
		return
	}

	result, err := commands.Dispatch[AdminApp.ResetDaysCommand, AdminApp.DaysResult](
		c.Request.Context(), h.Commands, AdminApp.ResetDaysCommand{From: from, To: to})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AdminDaysHTTP = AdminDaysHandler{}
