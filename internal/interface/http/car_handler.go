package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/motorline/dealership-backend/internal/application"
	"github.com/motorline/dealership-backend/internal/domain/entity"
	"github.com/motorline/dealership-backend/internal/domain/repository"
	"github.com/motorline/dealership-backend/pkg/response"
	"github.com/motorline/dealership-backend/pkg/validation"
)

type CarHandler struct {
	Svc    *application.CarService
	Logger *logrus.Logger
}

func NewCarHandler(svc *application.CarService, logger *logrus.Logger) *CarHandler {
	return &CarHandler{Svc: svc, Logger: logger}
}

type createCarRequest struct {
	Make         string   `json:"make" binding:"required"`
	Model        string   `json:"model" binding:"required"`
	Year         int      `json:"year" binding:"required,gte=1900"`
	Price        float64  `json:"price" binding:"required,gt=0"`
	Mileage      int      `json:"mileage" binding:"gte=0"`
	Color        string   `json:"color" binding:"required"`
	FuelType     string   `json:"fuel_type" binding:"required"`
	Transmission string   `json:"transmission" binding:"required"`
	BodyType     string   `json:"body_type" binding:"required"`
	Seats        *int     `json:"seats"`
	Description  string   `json:"description"`
	Status       string   `json:"status"`
	Featured     bool     `json:"featured"`
	Images       []string `json:"images" binding:"required,min=1"`
}

type patchStatusRequest struct {
	Status   *string `json:"status"`
	Featured *bool   `json:"featured"`
}

type extractRequest struct {
	Image string `json:"image" binding:"required"`
}

func carPayload(car *entity.Car) gin.H {
	return gin.H{
		"id":           car.ID,
		"make":         car.Make,
		"model":        car.Model,
		"year":         car.Year,
		"price":        car.Price,
		"mileage":      car.Mileage,
		"color":        car.Color,
		"fuel_type":    car.FuelType,
		"transmission": car.Transmission,
		"body_type":    car.BodyType,
		"seats":        car.Seats,
		"description":  car.Description,
		"status":       car.Status,
		"featured":     car.Featured,
		"images":       car.Images,
		"created_at":   car.CreatedAt,
		"updated_at":   car.UpdatedAt,
	}
}

func carListPayload(cars []entity.Car) []gin.H {
	out := make([]gin.H, 0, len(cars))
	for i := range cars {
		out = append(out, carPayload(&cars[i]))
	}
	return out
}

// failFor maps application errors to HTTP responses shared by car and
// settings handlers.
func failFor(c *gin.Context, err error, logger *logrus.Logger) {
	switch {
	case errors.Is(err, application.ErrUnauthorized):
		response.Fail(c, http.StatusUnauthorized, "unauthorized", nil)
	case errors.Is(err, application.ErrAdminRequired):
		response.Fail(c, http.StatusForbidden, "admin access required", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Fail(c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrCarNotFound):
		response.Fail(c, http.StatusNotFound, "car not found", nil)
	case errors.Is(err, application.ErrDealershipNotFound):
		response.Fail(c, http.StatusNotFound, "dealership info not found", nil)
	case errors.Is(err, application.ErrNoValidImages):
		response.Fail(c, http.StatusBadRequest, "no valid images were uploaded", nil)
	default:
		logger.WithError(err).Error("request failed")
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
	}
}

func (h *CarHandler) Create(c *gin.Context) {
	var req createCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	status := entity.CarStatus(req.Status)
	if req.Status != "" && !status.Valid() {
		response.Fail(c, http.StatusBadRequest, "invalid status", nil)
		return
	}

	car, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), application.CreateCarInput{
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Price:        req.Price,
		Mileage:      req.Mileage,
		Color:        req.Color,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		BodyType:     req.BodyType,
		Seats:        req.Seats,
		Description:  req.Description,
		Status:       status,
		Featured:     req.Featured,
		Images:       req.Images,
	})
	if err != nil {
		failFor(c, err, h.Logger)
		return
	}
	response.OK(c, http.StatusCreated, carPayload(car), "car created", nil)
}

func (h *CarHandler) List(c *gin.Context) {
	cars, err := h.Svc.List(c.Request.Context(), c.GetString("userID"), c.Query("search"))
	if err != nil {
		failFor(c, err, h.Logger)
		return
	}
	response.OK(c, http.StatusOK, carListPayload(cars), "cars", map[string]any{"count": len(cars)})
}

func (h *CarHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		failFor(c, err, h.Logger)
		return
	}
	response.OK[any](c, http.StatusOK, map[string]any{"deleted": true}, "car deleted", nil)
}

func (h *CarHandler) UpdateStatus(c *gin.Context) {
	var req patchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.Status == nil && req.Featured == nil {
		response.Fail(c, http.StatusBadRequest, "nothing to update", nil)
		return
	}

	patch := repository.StatusPatch{Featured: req.Featured}
	if req.Status != nil {
		status := entity.CarStatus(*req.Status)
		if !status.Valid() {
			response.Fail(c, http.StatusBadRequest, "invalid status", nil)
			return
		}
		patch.Status = &status
	}

	if err := h.Svc.UpdateStatus(c.Request.Context(), c.GetString("userID"), c.Param("id"), patch); err != nil {
		failFor(c, err, h.Logger)
		return
	}
	response.OK[any](c, http.StatusOK, map[string]any{"updated": true}, "car updated", nil)
}

// Extract runs the admin-side AI extraction that prefills the add-car form.
func (h *CarHandler) Extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	result, err := h.Svc.ExtractListing(c.Request.Context(), c.GetString("userID"), req.Image)
	if err != nil {
		if errors.Is(err, application.ErrUnauthorized) {
			response.Fail(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		if errors.Is(err, application.ErrExtractionDisabled) {
			response.Fail(c, http.StatusServiceUnavailable, "ai extraction is not configured", nil)
			return
		}
		h.Logger.WithError(err).Error("listing extraction failed")
		response.Fail(c, http.StatusBadGateway, "extraction failed", err.Error())
		return
	}
	response.OK(c, http.StatusOK, result, "extraction complete", nil)
}

func (h *CarHandler) Featured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))
	cars, err := h.Svc.Featured(c.Request.Context(), limit)
	if err != nil {
		failFor(c, err, h.Logger)
		return
	}
	response.OK(c, http.StatusOK, carListPayload(cars), "featured cars", nil)
}

func (h *CarHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("car search failed")
		response.Fail(c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.OK(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

// ImageSearch is the public photo-to-filters endpoint, quota-limited per
// client IP.
func (h *CarHandler) ImageSearch(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	result, err := h.Svc.ImageSearch(c.Request.Context(), ipFromRequest(c), req.Image)
	if err != nil {
		var rl *application.RateLimitError
		switch {
		case errors.As(err, &rl):
			c.Header("Retry-After", strconv.Itoa(int(rl.RetryAfter.Seconds())))
			response.Fail(c, http.StatusTooManyRequests, "too many image searches", map[string]any{
				"remaining":        rl.Remaining,
				"reset_in_seconds": int(rl.RetryAfter.Seconds()),
			})
		case errors.Is(err, application.ErrRequestDenied):
			response.Fail(c, http.StatusForbidden, "request denied", nil)
		case errors.Is(err, application.ErrExtractionDisabled):
			response.Fail(c, http.StatusServiceUnavailable, "ai extraction is not configured", nil)
		default:
			h.Logger.WithError(err).Error("image search failed")
			response.Fail(c, http.StatusBadGateway, "image search failed", err.Error())
		}
		return
	}
	response.OK(c, http.StatusOK, result, "image search complete", nil)
}

func ipFromRequest(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
