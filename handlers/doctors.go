package handlers

import (
	"errors"
	"net/http"

	doctorRepo "voicedesk/database/repository/doctor"
	"voicedesk/models"
	"voicedesk/services/scheduling"
	"voicedesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UpsertDoctorHandler creates or replaces a doctor's schedule.
func (h *HandlerBundle) UpsertDoctorHandler(c *gin.Context) {
	var schedule models.DoctorSchedule
	if err := c.ShouldBindJSON(&schedule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	schedule.Name = scheduling.NormalizeDoctor(schedule.Name)
	if schedule.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "doctor name is required"})
		return
	}
	for _, w := range schedule.Windows {
		if err := w.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window", "details": err.Error()})
			return
		}
	}

	id, err := h.DoctorRepo.Upsert(c.Request.Context(), schedule)
	if err != nil {
		h.Logger.Error("failed to upsert doctor schedule", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save schedule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "name": schedule.Name})
}

// ListDoctorsHandler returns every stored doctor schedule.
func (h *HandlerBundle) ListDoctorsHandler(c *gin.Context) {
	schedules, err := h.DoctorRepo.List(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list doctor schedules", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list schedules"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": schedules})
}

// GetDoctorHandler returns one doctor's schedule by name.
func (h *HandlerBundle) GetDoctorHandler(c *gin.Context) {
	name := scheduling.NormalizeDoctor(c.Param("name"))
	schedule, err := h.DoctorRepo.GetByName(c.Request.Context(), name)
	if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "doctor not found"})
		return
	}
	if err != nil {
		h.Logger.Error("failed to fetch doctor schedule", zap.String("name", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch schedule"})
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// DeleteDoctorHandler removes a doctor's schedule.
func (h *HandlerBundle) DeleteDoctorHandler(c *gin.Context) {
	name := scheduling.NormalizeDoctor(c.Param("name"))
	if err := h.DoctorRepo.DeleteByName(c.Request.Context(), name); err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "doctor not found"})
			return
		}
		h.Logger.Error("failed to delete doctor schedule", zap.String("name", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete schedule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": name})
}

// ListAppointmentsHandler returns the booking trace for one doctor.
func (h *HandlerBundle) ListAppointmentsHandler(c *gin.Context) {
	doctor := scheduling.NormalizeDoctor(c.Query("doctor"))
	if doctor == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "doctor query parameter is required"})
		return
	}
	records, err := h.RecordsRepo.GetByDoctor(c.Request.Context(), doctor)
	if err != nil {
		h.Logger.Error("failed to list appointments", zap.String("doctor", doctor), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list appointments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": records})
}

// HealthHandler reports the latest dependency health snapshot.
func (h *HandlerBundle) HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo || !status.Sessions {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
