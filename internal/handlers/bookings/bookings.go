package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/gymslot/internal/domain"
	"github.com/GlebRadaev/gymslot/internal/dto"
	"github.com/GlebRadaev/gymslot/internal/service/bookingservice"
	"github.com/GlebRadaev/gymslot/internal/service/ledgerservice"
	"github.com/GlebRadaev/gymslot/pkg/auth"
	"github.com/GlebRadaev/gymslot/pkg/utils"
	"github.com/GlebRadaev/gymslot/pkg/validate"
)

//go:generate mockgen -source=bookings.go -destination=mock_bookings.go -package=bookings

type Service interface {
	CreateBooking(ctx context.Context, req domain.BookingRequest) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID int64, reason string) (*domain.Booking, error)
	CheckIn(ctx context.Context, bookingID int64) (*domain.Booking, error)
	CheckOut(ctx context.Context, bookingID int64) (*domain.Booking, error)
	AssignCoachSession(ctx context.Context, req domain.CoachSessionRequest) (*domain.Booking, *domain.Booking, error)
	GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
	ListUserBookings(ctx context.Context, userID int64, limit int) ([]domain.Booking, error)
}

const defaultCancelReason = "Cancelled by user"

type BookingHandler struct {
	bookingService Service
}

func New(bookingService Service) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

func respondBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgerservice.ErrInsufficientBalance):
		utils.RespondWithError(w, http.StatusPaymentRequired, "insufficient tokens")
	case errors.Is(err, bookingservice.ErrConflict), errors.Is(err, bookingservice.ErrNoSlot):
		utils.RespondWithError(w, http.StatusConflict, "slot unavailable")
	case errors.Is(err, bookingservice.ErrAlreadyTerminal):
		utils.RespondWithError(w, http.StatusConflict, "booking already finalized")
	case errors.Is(err, bookingservice.ErrBookingNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "booking not found")
	case errors.Is(err, bookingservice.ErrInvalidWindow),
		errors.Is(err, bookingservice.ErrInvalidType),
		errors.Is(err, bookingservice.ErrEquipmentRequired),
		errors.Is(err, bookingservice.ErrCoachRequired):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, bookingservice.ErrNotCheckedIn):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "internal error, retry later")
	}
}

func toResponse(b *domain.Booking) dto.BookingResponseDTO {
	return dto.BookingResponseDTO{
		ID:                 b.ID,
		UserID:             b.UserID,
		EquipmentID:        b.EquipmentID,
		CoachID:            b.CoachID,
		Type:               string(b.Type),
		Status:             string(b.Status),
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		TokensCost:         b.TokensCost,
		AutoBooked:         b.AutoBooked,
		LinkedBookingID:    b.LinkedBookingID,
		CheckInAt:          b.CheckInAt,
		CheckOutAt:         b.CheckOutAt,
		CancellationReason: b.CancellationReason,
		Notes:              b.Notes,
		CreatedAt:          b.CreatedAt,
	}
}

// CreateBooking godoc
//
//	@Summary		Book a time slot
//	@Description	Reserve equipment, a coach session or an InBody scan. The token price is charged in the same transaction.
//	@Tags			Bookings
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateBookingRequestDTO	true	"Booking request"
//	@Success		201		{object}	dto.BookingResponseDTO		"Booking confirmed"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		402		{object}	utils.Response				"Insufficient tokens"
//	@Failure		409		{object}	utils.Response				"Slot unavailable"
//	@Failure		422		{object}	utils.Response				"Validation failed"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/bookings [post]
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFrom(r.Context())

	var req dto.CreateBookingRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	booking, err := h.bookingService.CreateBooking(r.Context(), domain.BookingRequest{
		UserID:      userID,
		EquipmentID: req.EquipmentID,
		CoachID:     req.CoachID,
		Type:        domain.BookingType(req.Type),
		Start:       req.StartTime,
		End:         req.EndTime,
		Notes:       req.Notes,
	})
	if err != nil {
		respondBookingError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toResponse(booking))
}

// GetBookings godoc
//
//	@Summary		List own bookings
//	@Description	Bookings of the authenticated user, newest first.
//	@Tags			Bookings
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int						false	"Maximum number of bookings"
//	@Success		200		{array}		dto.BookingResponseDTO	"Bookings"
//	@Success		204		{object}	utils.Response			"No bookings"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/bookings [get]
func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFrom(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	bookings, err := h.bookingService.ListUserBookings(r.Context(), userID, limit)
	if err != nil {
		respondBookingError(w, err)
		return
	}
	if len(bookings) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "bookings not found")
		return
	}

	response := make([]dto.BookingResponseDTO, len(bookings))
	for i := range bookings {
		response[i] = toResponse(&bookings[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetBooking godoc
//
//	@Summary	Get a booking
//	@Tags		Bookings
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int						true	"Booking id"
//	@Success	200	{object}	dto.BookingResponseDTO	"Booking"
//	@Failure	401	{object}	utils.Response			"User not authorized"
//	@Failure	404	{object}	utils.Response			"Booking not found"
//	@Failure	500	{object}	utils.Response			"Internal server error"
//	@Router		/api/bookings/{id} [get]
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, ok := h.ownedBooking(w, r)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponse(booking))
}

// CancelBooking godoc
//
//	@Summary		Cancel a booking
//	@Description	Cancel an active booking. Spent tokens are refunded unless the booking was created for a coach session.
//	@Tags			Bookings
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Booking id"
//	@Param			request	body		dto.CancelBookingRequestDTO	false	"Cancellation reason"
//	@Success		200		{object}	dto.BookingResponseDTO		"Booking cancelled"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		404		{object}	utils.Response				"Booking not found"
//	@Failure		409		{object}	utils.Response				"Booking already finalized"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	booking, ok := h.ownedBooking(w, r)
	if !ok {
		return
	}

	var req dto.CancelBookingRequestDTO
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if req.Reason == "" {
		req.Reason = defaultCancelReason
	}

	cancelled, err := h.bookingService.CancelBooking(r.Context(), booking.ID, req.Reason)
	if err != nil {
		respondBookingError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponse(cancelled))
}

// CheckIn godoc
//
//	@Summary	Check in to a booking
//	@Tags		Bookings
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int						true	"Booking id"
//	@Success	200	{object}	dto.BookingResponseDTO	"Checked in"
//	@Failure	401	{object}	utils.Response			"User not authorized"
//	@Failure	404	{object}	utils.Response			"Booking not found"
//	@Failure	409	{object}	utils.Response			"Booking already finalized"
//	@Failure	500	{object}	utils.Response			"Internal server error"
//	@Router		/api/bookings/{id}/check-in [post]
func (h *BookingHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	booking, ok := h.ownedBooking(w, r)
	if !ok {
		return
	}
	checkedIn, err := h.bookingService.CheckIn(r.Context(), booking.ID)
	if err != nil {
		respondBookingError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponse(checkedIn))
}

// CheckOut godoc
//
//	@Summary	Check out of a booking
//	@Tags		Bookings
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int						true	"Booking id"
//	@Success	200	{object}	dto.BookingResponseDTO	"Checked out"
//	@Failure	401	{object}	utils.Response			"User not authorized"
//	@Failure	404	{object}	utils.Response			"Booking not found"
//	@Failure	409	{object}	utils.Response			"Booking has no check-in"
//	@Failure	500	{object}	utils.Response			"Internal server error"
//	@Router		/api/bookings/{id}/check-out [post]
func (h *BookingHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	booking, ok := h.ownedBooking(w, r)
	if !ok {
		return
	}
	checkedOut, err := h.bookingService.CheckOut(r.Context(), booking.ID)
	if err != nil {
		respondBookingError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponse(checkedOut))
}

// AssignCoachSession godoc
//
//	@Summary		Schedule a coach session
//	@Description	A coach books a session for a member. Equipment, when given, is reserved for the same window at no extra cost.
//	@Tags			Coach
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CoachSessionRequestDTO	true	"Session request"
//	@Success		201		{object}	dto.CoachSessionResponseDTO	"Session confirmed"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		402		{object}	utils.Response				"Insufficient tokens"
//	@Failure		403		{object}	utils.Response				"Not a coach"
//	@Failure		409		{object}	utils.Response				"Slot unavailable"
//	@Failure		422		{object}	utils.Response				"Validation failed"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/coach/sessions [post]
func (h *BookingHandler) AssignCoachSession(w http.ResponseWriter, r *http.Request) {
	coachID := auth.UserIDFrom(r.Context())

	var req dto.CoachSessionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	session, equipment, err := h.bookingService.AssignCoachSession(r.Context(), domain.CoachSessionRequest{
		CoachID:     coachID,
		MemberID:    req.MemberID,
		EquipmentID: req.EquipmentID,
		Start:       req.StartTime,
		End:         req.EndTime,
		Notes:       req.Notes,
	})
	if err != nil {
		respondBookingError(w, err)
		return
	}

	response := dto.CoachSessionResponseDTO{Session: toResponse(session)}
	if equipment != nil {
		e := toResponse(equipment)
		response.Equipment = &e
	}
	utils.RespondWithJSON(w, http.StatusCreated, response)
}

// ownedBooking loads the booking from the path. Members see their own, coaches
// also the sessions they run, staff see all.
func (h *BookingHandler) ownedBooking(w http.ResponseWriter, r *http.Request) (*domain.Booking, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid booking id")
		return nil, false
	}

	booking, err := h.bookingService.GetBooking(r.Context(), id)
	if err != nil {
		respondBookingError(w, err)
		return nil, false
	}
	userID := auth.UserIDFrom(r.Context())
	coached := booking.CoachID != nil && *booking.CoachID == userID
	if booking.UserID != userID && !coached && !auth.RoleFrom(r.Context()).Staff() {
		utils.RespondWithError(w, http.StatusNotFound, "booking not found")
		return nil, false
	}
	return booking, true
}
