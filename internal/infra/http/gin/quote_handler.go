package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"gitecal/internal/app/dto"
	QuotesApp "gitecal/internal/app/handlers/quotes"
	"gitecal/internal/app/queries"
	"gitecal/internal/domain/pricing"
	"gitecal/internal/domain/shared/dates"
)

type QuoteHandler struct {
	Queries queries.Bus
}

type quoteRequest struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
}

func (h QuoteHandler) Create(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkIn, err := dates.ParseDay(req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkIn must be formatted as YYYY-MM-DD"})
		return
	}
	checkOut, err := dates.ParseDay(req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkOut must be formatted as YYYY-MM-DD"})
		return
	}
	if req.Adults < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one adult is required"})
		return
	}

	query := QuotesApp.GetQuoteQuery{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Adults:   req.Adults,
		Children: req.Children,
	}
	result, err := queries.Ask[QuotesApp.GetQuoteQuery, dto.Quote](c.Request.Context(), h.Queries, query)
	if err != nil {
		switch {
		case errors.Is(err, dates.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": "checkout must be after checkin"})
		case errors.Is(err, pricing.ErrTooManyGuests), errors.Is(err, pricing.ErrStayRejected):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ QuoteHTTP = QuoteHandler{}
