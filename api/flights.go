package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mvasilenko/flightops/internal/domain"
	"github.com/mvasilenko/flightops/internal/search"
	"github.com/mvasilenko/flightops/internal/service/flights"
	"github.com/mvasilenko/flightops/internal/service/inventory"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type createFlightRequest struct {
	FlightNumber       string  `json:"flight_number"`
	AirplaneID         int64   `json:"airplane_id"`
	DepartureAirportID string  `json:"departure_airport_id"`
	ArrivalAirportID   string  `json:"arrival_airport_id"`
	DepartureTime      string  `json:"departure_time"`
	ArrivalTime        string  `json:"arrival_time"`
	Price              float64 `json:"price"`
	TotalSeats         int     `json:"total_seats"`
}

type adjustSeatsRequest struct {
	Seats int   `json:"seats"`
	Dec   *bool `json:"dec"` // omitted means reserve
}

type flightResponse struct {
	ID                 int64   `json:"id"`
	FlightNumber       string  `json:"flight_number"`
	AirplaneID         int64   `json:"airplane_id"`
	DepartureAirportID string  `json:"departure_airport_id"`
	ArrivalAirportID   string  `json:"arrival_airport_id"`
	DepartureTime      string  `json:"departure_time"`
	ArrivalTime        string  `json:"arrival_time"`
	Price              float64 `json:"price"`
	TotalSeats         int     `json:"total_seats"`
	RemainingSeats     int     `json:"remaining_seats"`
}

type seatCountResponse struct {
	FlightID       int64 `json:"flight_id"`
	RemainingSeats int   `json:"remaining_seats"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.search)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
	router.DELETE("/:id", h.delete)
	router.PATCH("/:id/seats", h.adjustSeats)
}

func (h *FlightHandler) search(c *gin.Context) {
	params := search.Params{
		Trips:     c.Query("trips"),
		Price:     c.Query("price"),
		Travelers: c.Query("travelers"),
		TripDate:  c.Query("tripDate"),
		Sort:      c.Query("sort"),
	}

	result, err := h.service.Search(c.Request.Context(), params)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]flightResponse, 0, len(result))
	for _, f := range result {
		out = append(out, toFlightResponse(f))
	}
	c.JSON(http.StatusOK, out)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(*flight))
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	departure, err := time.Parse(time.RFC3339, req.DepartureTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "departure_time must be RFC3339"})
		return
	}
	arrival, err := time.Parse(time.RFC3339, req.ArrivalTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "arrival_time must be RFC3339"})
		return
	}

	flight, err := h.service.Create(c.Request.Context(), flights.CreateFlightInput{
		FlightNumber:       req.FlightNumber,
		AirplaneID:         req.AirplaneID,
		DepartureAirportID: req.DepartureAirportID,
		ArrivalAirportID:   req.ArrivalAirportID,
		DepartureTime:      departure,
		ArrivalTime:        arrival,
		Price:              req.Price,
		TotalSeats:         req.TotalSeats,
	})
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toFlightResponse(*flight))
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FlightHandler) adjustSeats(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req adjustSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	op := inventory.OpReserve
	if req.Dec != nil && !*req.Dec {
		op = inventory.OpRelease
	}

	remaining, err := h.service.AdjustSeats(c.Request.Context(), id, req.Seats, op)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, seatCountResponse{FlightID: id, RemainingSeats: remaining})
}

func toFlightResponse(f domain.Flight) flightResponse {
	return flightResponse{
		ID:                 f.ID,
		FlightNumber:       f.FlightNumber,
		AirplaneID:         f.AirplaneID,
		DepartureAirportID: f.DepartureAirportID,
		ArrivalAirportID:   f.ArrivalAirportID,
		DepartureTime:      f.DepartureTime.Format(time.RFC3339),
		ArrivalTime:        f.ArrivalTime.Format(time.RFC3339),
		Price:              f.Price,
		TotalSeats:         f.TotalSeats,
		RemainingSeats:     f.RemainingSeats,
	}
}

func statusFromErr(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidFilter), errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoSeats), errors.Is(err, domain.ErrSeatLimit), errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
