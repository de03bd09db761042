package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/journeys/internal/domain"
	"github.com/zvrva/journeys/internal/service/journeys"
)

type JourneyHandler struct {
	service        journeys.SearchUseCase
	defaultMaxWait int
}

func NewJourneyHandler(service journeys.SearchUseCase, defaultMaxWait int) *JourneyHandler {
	return &JourneyHandler{service: service, defaultMaxWait: defaultMaxWait}
}

func (h *JourneyHandler) Register(router *gin.RouterGroup) {
	router.GET("/search", h.search)
}

// search serves both shapes of GET /search: with date, from and to present it
// runs the journey search; with any of them missing it returns the full
// unfiltered flight event listing.
func (h *JourneyHandler) search(c *gin.Context) {
	date := c.Query("date")
	from := c.Query("from")
	to := c.Query("to")

	if date == "" || from == "" || to == "" {
		h.list(c)
		return
	}

	maxWait, err := strconv.Atoi(c.DefaultQuery("max_wait_time_hours", strconv.Itoa(h.defaultMaxWait)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_wait_time_hours must be an integer"})
		return
	}

	views, err := h.service.Search(c.Request.Context(), journeys.SearchQuery{
		Date:         date,
		From:         from,
		To:           to,
		MaxWaitHours: maxWait,
	})
	if err != nil {
		var formatErr *domain.FormatError
		var notFoundErr *domain.NotFoundError
		if errors.As(err, &formatErr) || errors.As(err, &notFoundErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *JourneyHandler) list(c *gin.Context) {
	events, err := h.service.ListFlightEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}
