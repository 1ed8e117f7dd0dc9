package v1

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/booking"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/clinic"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/service"
)

type BookingHandler struct {
	svc *service.BookingService
	log *zap.Logger
}

func NewBookingHandler(svc *service.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, log: log}
}

type createBookingRequest struct {
	PatientID int64     `json:"patient_id"`
	DoctorID  int64     `json:"doctor_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type bookingResponse struct {
	ID          uuid.UUID          `json:"id"`
	PatientID   int64              `json:"patient_id"`
	DoctorID    int64              `json:"doctor_id"`
	StartTime   time.Time          `json:"start_time"`
	EndTime     time.Time          `json:"end_time"`
	SurgeryType clinic.SurgeryType `json:"surgery_type"`
	IsCancelled bool               `json:"is_cancelled"`
}

func toBookingResponse(b *booking.Booking) bookingResponse {
	return bookingResponse{
		ID:          b.ID,
		PatientID:   b.PatientID,
		DoctorID:    b.DoctorID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		SurgeryType: b.SurgeryType,
		IsCancelled: b.IsCancelled,
	}
}

// Create assigns the booking its identifier before validation runs, so
// the caller gets the id back even though the store never generates one.
func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.svc.AddBooking(c.Request.Context(), &booking.AddBookingRequest{
		ID:        uuid.New(),
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toBookingResponse(b))
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.CancelBooking(c.Request.Context(), id, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"id": id, "cancelled": true})
}

func (h *BookingHandler) GetByID(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	b, err := h.svc.GetBookingByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toBookingResponse(b))
}

func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.svc.GetBookings(c.Request.Context(), &service.ListBookingsRequest{
		PatientID:        parseQueryInt64(c, "patient_id"),
		ExcludeCancelled: parseQueryBool(c, "exclude_cancelled"),
		ExcludePastDue:   parseQueryBool(c, "exclude_past_due"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	respondOK(c, out)
}

// PatientNext returns the patient's next upcoming appointment. The list
// comes back unordered from the service, so the sort happens here.
func (h *BookingHandler) PatientNext(c *gin.Context) {
	patientID, ok := parseID(c, "id")
	if !ok {
		return
	}

	bookings, err := h.svc.GetBookings(c.Request.Context(), &service.ListBookingsRequest{
		PatientID:        patientID,
		ExcludeCancelled: true,
		ExcludePastDue:   true,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if len(bookings) == 0 {
		respondError(c, http.StatusNotFound, "no upcoming appointments for this patient")
		return
	}

	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].StartTime.Before(bookings[j].StartTime)
	})

	respondOK(c, toBookingResponse(bookings[0]))
}
