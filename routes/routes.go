package routes

import (
	"time"

	"voicedesk/handlers"
	"voicedesk/middleware"
	"voicedesk/services/dialogue"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterVoiceRoutes registers the telephony webhook endpoints. The
// provider posts form-encoded turns; every response is a voice document.
func RegisterVoiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST(dialogue.ActionVoice, hb.VoiceHandler)
	r.POST(dialogue.ActionSelection, hb.ProcessSelectionHandler)
	r.POST(dialogue.ActionIntent, hb.ProcessIntentHandler)

	r.POST(dialogue.ActionBook, hb.BookAppointmentHandler)
	r.POST(dialogue.ActionCaptureDoctor, hb.CaptureDoctorNameHandler)
	r.POST(dialogue.ActionCaptureTime, hb.CaptureAppointmentTimeHandler)
	r.POST(dialogue.ActionCaptureName, hb.CaptureUserNameHandler)
	r.POST(dialogue.ActionCapturePhone, hb.CaptureUserPhoneHandler)
	r.POST(dialogue.ActionCaptureAddress, hb.CaptureUserAddressHandler)

	r.POST(dialogue.ActionCheckAvailability, hb.CheckAvailabilityHandler)
	r.POST(dialogue.ActionCaptureAvailDoc, hb.CaptureAvailabilityDoctorHandler)
}

// RegisterAdminRoutes registers the clinic-staff API for doctor schedules
// and booked-appointment records.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	admin := r.Group("/api/admin")
	{
		admin.Use(middleware.APIKeyAuthMiddleware())
		admin.POST("/doctors", hb.UpsertDoctorHandler)
		admin.GET("/doctors", hb.ListDoctorsHandler)
		admin.GET("/doctors/:name", hb.GetDoctorHandler)
		admin.DELETE("/doctors/:name", hb.DeleteDoctorHandler)
		admin.GET("/appointments", hb.ListAppointmentsHandler)
	}
}

// RegisterHealthRoute registers the dependency health endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterVoiceRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
