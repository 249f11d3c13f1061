package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/motorline/dealership-backend/internal/application"
	"github.com/motorline/dealership-backend/internal/domain/entity"
	"github.com/motorline/dealership-backend/pkg/response"
	"github.com/motorline/dealership-backend/pkg/validation"
)

type SettingsHandler struct {
	Svc    *application.SettingsService
	Logger *logrus.Logger
}

func NewSettingsHandler(svc *application.SettingsService, logger *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{Svc: svc, Logger: logger}
}

type workingHourRequest struct {
	DayOfWeek string `json:"day_of_week" binding:"required"`
	OpenTime  string `json:"open_time" binding:"required,hhmm"`
	CloseTime string `json:"close_time" binding:"required,hhmm"`
	IsOpen    bool   `json:"is_open"`
}

type saveHoursRequest struct {
	Hours []workingHourRequest `json:"hours" binding:"required,min=1,dive"`
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

func hourPayload(h entity.WorkingHour) gin.H {
	return gin.H{
		"day_of_week": h.DayOfWeek,
		"open_time":   h.OpenTime,
		"close_time":  h.CloseTime,
		"is_open":     h.IsOpen,
	}
}

func dealershipPayload(info *entity.DealershipInfo) gin.H {
	hours := make([]gin.H, 0, len(info.WorkingHours))
	for _, h := range info.WorkingHours {
		hours = append(hours, hourPayload(h))
	}
	return gin.H{
		"id":            info.ID,
		"name":          info.Name,
		"address":       info.Address,
		"phone":         info.Phone,
		"email":         info.Email,
		"working_hours": hours,
		"created_at":    info.CreatedAt,
		"updated_at":    info.UpdatedAt,
	}
}

// GetDealership returns the singleton dealership record, creating it with
// defaults on first access.
func (h *SettingsHandler) GetDealership(c *gin.Context) {
	info, err := h.Svc.GetDealershipInfo(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		failFor(c, err, h.Logger)
		return
	}
	response.OK(c, http.StatusOK, dealershipPayload(info), "dealership info", nil)
}

// SaveHours replaces the whole weekly schedule in one shot.
func (h *SettingsHandler) SaveHours(c *gin.Context) {
	var req saveHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	hours := make([]entity.WorkingHour, 0, len(req.Hours))
	for _, hr := range req.Hours {
		day := entity.DayOfWeek(hr.DayOfWeek)
		if !day.Valid() {
			response.Fail(c, http.StatusBadRequest, "invalid day of week: "+hr.DayOfWeek, nil)
			return
		}
		hours = append(hours, entity.WorkingHour{
			DayOfWeek: day,
			OpenTime:  hr.OpenTime,
			CloseTime: hr.CloseTime,
			IsOpen:    hr.IsOpen,
		})
	}

	if err := h.Svc.SaveWorkingHours(c.Request.Context(), c.GetString("userID"), hours); err != nil {
		failFor(c, err, h.Logger)
		return
	}
	response.OK[any](c, http.StatusOK, map[string]any{"saved": true}, "working hours saved", nil)
}

func (h *SettingsHandler) ListUsers(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		failFor(c, err, h.Logger)
		return
	}
	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, userPayload(&users[i]))
	}
	response.OK(c, http.StatusOK, out, "users", map[string]any{"count": len(out)})
}

func (h *SettingsHandler) UpdateUserRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.UpdateUserRole(c.Request.Context(), c.GetString("userID"), c.Param("id"), entity.Role(req.Role))
	if err != nil {
		failFor(c, err, h.Logger)
		return
	}
	response.OK(c, http.StatusOK, userPayload(u), "role updated", nil)
}
