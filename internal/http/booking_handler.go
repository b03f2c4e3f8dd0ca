package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/space-booking/internal/application"
)

type bookingService interface {
	CreateBooking(ctx context.Context, params application.CreateBookingParams) (application.Booking, error)
	GetBooking(ctx context.Context, id string) (application.Booking, error)
	ListBookings(ctx context.Context) ([]application.Booking, error)
	ListClientBookings(ctx context.Context, principal application.Principal) ([]application.Booking, error)
	UpdateBooking(ctx context.Context, params application.UpdateBookingParams) (application.Booking, error)
	DeleteBooking(ctx context.Context, id string) (application.Booking, error)
	UnavailableDates(ctx context.Context) ([]application.DateRange, error)
}

// BookingHandler serves the /bookings endpoints.
type BookingHandler struct {
	service   bookingService
	responder responder
	logger    *slog.Logger
}

func NewBookingHandler(service bookingService, logger *slog.Logger) *BookingHandler {
	base := defaultLogger(logger)
	return &BookingHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *BookingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "BookingHandler", operation, attrs...)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "principal_id", principal.ID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode booking request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "principal_id", principal.ID)

	booking, err := h.service.CreateBooking(r.Context(), application.CreateBookingParams{
		Principal: principal,
		Input:     req.toInput(),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "booking creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("booking_id", booking.ID).InfoContext(r.Context(), "booking created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toBookingDTO(booking))
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		h.log(r.Context(), "Get", "error_kind", "bad_request").ErrorContext(r.Context(), "missing booking id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidBookingID)
		return
	}

	logger := h.log(r.Context(), "Get", "booking_id", id)

	booking, err := h.service.GetBooking(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "booking lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toBookingDTO(booking))
}

func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "ListAll")

	bookings, err := h.service.ListBookings(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "booking list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(bookings)).InfoContext(r.Context(), "bookings listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toBookingDTOs(bookings))
}

func (h *BookingHandler) ListForClient(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "ListForClient", "principal_id", principal.ID)

	bookings, err := h.service.ListClientBookings(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "client booking list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(bookings)).InfoContext(r.Context(), "client bookings listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toBookingDTOs(bookings))
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "missing booking id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidBookingID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "principal_id", principal.ID, "booking_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode booking update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "principal_id", principal.ID, "booking_id", id)

	booking, err := h.service.UpdateBooking(r.Context(), application.UpdateBookingParams{
		Principal: principal,
		BookingID: id,
		Input:     req.toInput(),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "booking update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "booking updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toBookingDTO(booking))
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing booking id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidBookingID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "principal_id", principal.ID, "booking_id", id)

	booking, err := h.service.DeleteBooking(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "booking delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "booking deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toBookingDTO(booking))
}

func (h *BookingHandler) UnavailableDates(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "UnavailableDates")

	ranges, err := h.service.UnavailableDates(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "unavailable date lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(ranges)).InfoContext(r.Context(), "unavailable dates served")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toDateRangeDTOs(ranges))
}

type bookingRequest struct {
	Company           string `json:"company"`
	TypeOfSpaceNeeded string `json:"typeOfSpaceNeeded"`
	BookingStartDate  string `json:"bookingStartDate"`
	BookingStartTime  string `json:"bookingStartTime"`
	BookingEndDate    string `json:"bookingEndDate"`
	BookingEndTime    string `json:"bookingEndTime"`
	Attendees         string `json:"attendees"`
	Reminder          bool   `json:"reminder"`
}

func (r bookingRequest) toInput() application.BookingInput {
	return application.BookingInput{
		Company:           strings.TrimSpace(r.Company),
		TypeOfSpaceNeeded: strings.TrimSpace(r.TypeOfSpaceNeeded),
		BookingStartDate:  strings.TrimSpace(r.BookingStartDate),
		BookingStartTime:  strings.TrimSpace(r.BookingStartTime),
		BookingEndDate:    strings.TrimSpace(r.BookingEndDate),
		BookingEndTime:    strings.TrimSpace(r.BookingEndTime),
		Attendees:         strings.TrimSpace(r.Attendees),
		Reminder:          r.Reminder,
	}
}

type bookingDTO struct {
	ID                string `json:"id"`
	ClientID          string `json:"clientId"`
	ClientName        string `json:"clientName"`
	ClientEmail       string `json:"clientEmail"`
	Company           string `json:"company,omitempty"`
	TypeOfSpaceNeeded string `json:"typeOfSpaceNeeded"`
	BookingStartDate  string `json:"bookingStartDate"`
	BookingStartTime  string `json:"bookingStartTime"`
	BookingEndDate    string `json:"bookingEndDate"`
	BookingEndTime    string `json:"bookingEndTime"`
	Attendees         string `json:"attendees,omitempty"`
	Reminder          bool   `json:"reminder"`
	CreatedAt         string `json:"createdAt,omitempty"`
	UpdatedAt         string `json:"updatedAt,omitempty"`
}

type dateRangeDTO struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func toBookingDTO(b application.Booking) bookingDTO {
	dto := bookingDTO{
		ID:                b.ID,
		ClientID:          b.ClientID,
		ClientName:        b.ClientName,
		ClientEmail:       b.ClientEmail,
		Company:           b.Company,
		TypeOfSpaceNeeded: b.TypeOfSpaceNeeded,
		BookingStartDate:  b.BookingStartDate,
		BookingStartTime:  b.BookingStartTime,
		BookingEndDate:    b.BookingEndDate,
		BookingEndTime:    b.BookingEndTime,
		Attendees:         b.Attendees,
		Reminder:          b.Reminder,
	}
	if !b.CreatedAt.IsZero() {
		dto.CreatedAt = b.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	if !b.UpdatedAt.IsZero() {
		dto.UpdatedAt = b.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return dto
}

func toBookingDTOs(bookings []application.Booking) []bookingDTO {
	out := make([]bookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingDTO(b))
	}
	return out
}

func toDateRangeDTOs(ranges []application.DateRange) []dateRangeDTO {
	out := make([]dateRangeDTO, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, dateRangeDTO{StartDate: r.StartDate, EndDate: r.EndDate})
	}
	return out
}
