package v1

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/clinic"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/service"
)

type ClinicHandler struct {
	svc *service.ClinicService
	log *zap.Logger
}

func NewClinicHandler(svc *service.ClinicService, log *zap.Logger) *ClinicHandler {
	return &ClinicHandler{svc: svc, log: log}
}

type createClinicRequest struct {
	Name        string `json:"name"`
	SurgeryType string `json:"surgery_type"`
}

func (h *ClinicHandler) Create(c *gin.Context) {
	var req createClinicRequest
	if !bindJSON(c, &req) {
		return
	}

	cl, err := h.svc.CreateClinic(c.Request.Context(), &clinic.CreateClinicCommand{
		Name:        req.Name,
		SurgeryType: clinic.SurgeryType(req.SurgeryType),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, cl)
}

func (h *ClinicHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	cl, err := h.svc.GetClinic(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, cl)
}

func (h *ClinicHandler) List(c *gin.Context) {
	clinics, err := h.svc.ListClinics(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, clinics)
}
