package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/clinicbook/config"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/pkg/metrics"
)

type Handlers struct {
	Bookings *BookingHandler
	Patients *PatientHandler
	Doctors  *DoctorHandler
	Clinics  *ClinicHandler
}

func NewRouter(cfg *config.Config, log *zap.Logger, collector *metrics.Collector, h Handlers) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(log), Metrics(collector))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.App.Version})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api/v1")
	{
		bookings := api.Group("/bookings")
		{
			bookings.POST("", h.Bookings.Create)
			bookings.GET("", h.Bookings.List)
			bookings.GET("/:id", h.Bookings.GetByID)
			bookings.POST("/:id/cancel", h.Bookings.Cancel)
		}

		patients := api.Group("/patients")
		{
			patients.POST("", h.Patients.Create)
			patients.GET("", h.Patients.List)
			patients.GET("/:id", h.Patients.GetByID)
			patients.GET("/:id/bookings/next", h.Bookings.PatientNext)
		}

		doctors := api.Group("/doctors")
		{
			doctors.POST("", h.Doctors.Create)
			doctors.GET("", h.Doctors.List)
			doctors.GET("/:id", h.Doctors.GetByID)
		}

		clinics := api.Group("/clinics")
		{
			clinics.POST("", h.Clinics.Create)
			clinics.GET("", h.Clinics.List)
			clinics.GET("/:id", h.Clinics.GetByID)
		}
	}

	return r
}
