package bookingservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/gymslot/internal/domain"
	"github.com/GlebRadaev/gymslot/internal/notify"
	"github.com/GlebRadaev/gymslot/internal/pg"
	"github.com/GlebRadaev/gymslot/internal/service/ledgerservice"
)

//go:generate mockgen -source=bookingservice.go -destination=mock_bookingservice.go -package=bookingservice

type Repo interface {
	LockEquipment(ctx context.Context, equipmentID int64) (*domain.Equipment, error)
	HasOverlap(ctx context.Context, equipmentID int64, start, end time.Time) (bool, error)
	LockCoach(ctx context.Context, coachID int64) error
	HasCoachOverlap(ctx context.Context, coachID int64, start, end time.Time) (bool, error)
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Booking, error)
	ListExpired(ctx context.Context, now time.Time, after domain.ExpiredCursor, limit int) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, reason *string) error
	SetCheckIn(ctx context.Context, id int64, at time.Time) error
	SetCheckOut(ctx context.Context, id int64, at time.Time) error
}

type SlotRepo interface {
	CoversWindow(ctx context.Context, equipmentID int64, start, end time.Time) (bool, error)
}

type Ledger interface {
	Debit(ctx context.Context, userID, amount int64, kind domain.TxKind, ref domain.Reference) (*domain.LedgerEntry, error)
	CreditRefundForBooking(ctx context.Context, bookingID int64) (*domain.LedgerEntry, bool, error)
}

type Notifier interface {
	Emit(ctx context.Context, event notify.Event)
}

var (
	ErrInvalidWindow     = errors.New("booking window must be in the future and start before end")
	ErrInvalidType       = errors.New("unknown booking type")
	ErrNoSlot            = errors.New("window is not covered by a generated slot")
	ErrConflict          = errors.New("slot unavailable")
	ErrAlreadyTerminal   = errors.New("booking already finalized")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrEquipmentRequired = errors.New("equipment id is required")
	ErrCoachRequired     = errors.New("coach id is required")
	ErrNotCheckedIn      = errors.New("booking has no check-in")
	ErrNotExpired        = errors.New("booking window has not ended")
)

const defaultListLimit = 50

// Pricing is the flat token price per booking type.
type Pricing map[domain.BookingType]int64

func (p Pricing) Cost(t domain.BookingType) int64 {
	return p[t]
}

type Service struct {
	repo      Repo
	slots     SlotRepo
	ledger    Ledger
	notifier  Notifier
	txManager pg.TXManager
	pricing   Pricing
	now       func() time.Time
}

func New(repo Repo, slots SlotRepo, ledger Ledger, notifier Notifier, txManager pg.TXManager, pricing Pricing) *Service {
	return &Service{
		repo:      repo,
		slots:     slots,
		ledger:    ledger,
		notifier:  notifier,
		txManager: txManager,
		pricing:   pricing,
		now:       time.Now,
	}
}

func validate(req domain.BookingRequest, now time.Time) error {
	if !req.Type.Valid() {
		return ErrInvalidType
	}
	if !req.Start.Before(req.End) || req.Start.Before(now) {
		return ErrInvalidWindow
	}
	if req.Type == domain.BookingEquipment && req.EquipmentID == nil {
		return ErrEquipmentRequired
	}
	if req.Type == domain.BookingSession && req.CoachID == nil {
		return ErrCoachRequired
	}
	return nil
}

// CreateBooking admits a booking and debits its price in one transaction.
// Concurrent requests for the same equipment are serialized on the equipment row,
// so of two overlapping requests exactly one observes ErrConflict.
func (s *Service) CreateBooking(ctx context.Context, req domain.BookingRequest) (*domain.Booking, error) {
	if err := validate(req, s.now()); err != nil {
		return nil, err
	}

	var booking *domain.Booking
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		booking, err = s.admit(ctx, req, admission{cost: s.pricing.Cost(req.Type)})
		return err
	})
	if err != nil {
		s.logAdmissionError(err, req)
		return nil, err
	}

	s.emit(ctx, notify.BookingConfirmed, booking, fmt.Sprintf("Booking %d confirmed, %d tokens charged", booking.ID, booking.TokensCost))
	return booking, nil
}

type admission struct {
	cost       int64
	autoBooked bool
	linked     *int64
}

// admit runs inside a transaction. Lock order is equipment, then coach, then the
// new booking, then the user balance.
func (s *Service) admit(ctx context.Context, req domain.BookingRequest, a admission) (*domain.Booking, error) {
	if req.EquipmentID != nil {
		equipment, err := s.repo.LockEquipment(ctx, *req.EquipmentID)
		if err != nil {
			return nil, fmt.Errorf("lock equipment: %w", err)
		}
		if equipment == nil {
			return nil, ErrNoSlot
		}

		if req.Type == domain.BookingEquipment {
			covered, err := s.slots.CoversWindow(ctx, *req.EquipmentID, req.Start, req.End)
			if err != nil {
				return nil, fmt.Errorf("check slot: %w", err)
			}
			if !covered {
				return nil, ErrNoSlot
			}
		}

		overlap, err := s.repo.HasOverlap(ctx, *req.EquipmentID, req.Start, req.End)
		if err != nil {
			return nil, fmt.Errorf("check overlap: %w", err)
		}
		if overlap {
			return nil, ErrConflict
		}
	}

	if req.Type == domain.BookingSession && req.CoachID != nil {
		if err := s.repo.LockCoach(ctx, *req.CoachID); err != nil {
			return nil, fmt.Errorf("lock coach: %w", err)
		}
		busy, err := s.repo.HasCoachOverlap(ctx, *req.CoachID, req.Start, req.End)
		if err != nil {
			return nil, fmt.Errorf("check coach overlap: %w", err)
		}
		if busy {
			return nil, ErrConflict
		}
	}

	booking := &domain.Booking{
		UserID:          req.UserID,
		EquipmentID:     req.EquipmentID,
		CoachID:         req.CoachID,
		Type:            req.Type,
		StartTime:       req.Start,
		EndTime:         req.End,
		Status:          domain.StatusConfirmed,
		TokensCost:      a.cost,
		AutoBooked:      a.autoBooked,
		Notes:           req.Notes,
		LinkedBookingID: a.linked,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if a.cost > 0 {
		if _, err := s.ledger.Debit(ctx, req.UserID, a.cost, domain.TxSpend, domain.BookingRef(booking.ID)); err != nil {
			return nil, err
		}
	}
	return booking, nil
}

func (s *Service) logAdmissionError(err error, req domain.BookingRequest) {
	if errors.Is(err, ErrConflict) || errors.Is(err, ErrNoSlot) || errors.Is(err, ledgerservice.ErrInsufficientBalance) {
		return
	}
	fields := []zap.Field{zap.Int64("user_id", req.UserID), zap.String("type", string(req.Type)), zap.Error(err)}
	if req.EquipmentID != nil {
		fields = append(fields, zap.Int64("equipment_id", *req.EquipmentID))
	}
	zap.L().Error("booking admission failed", fields...)
}

// AssignCoachSession books a session for a member. When equipment is given it is
// reserved in the same transaction as an auto-booked, free equipment booking.
func (s *Service) AssignCoachSession(ctx context.Context, req domain.CoachSessionRequest) (*domain.Booking, *domain.Booking, error) {
	session := domain.BookingRequest{
		UserID:  req.MemberID,
		CoachID: &req.CoachID,
		Type:    domain.BookingSession,
		Start:   req.Start,
		End:     req.End,
		Notes:   req.Notes,
	}
	if err := validate(session, s.now()); err != nil {
		return nil, nil, err
	}

	var booked, equipmentBooking *domain.Booking
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if req.EquipmentID != nil {
			var err error
			equipmentBooking, err = s.admit(ctx, domain.BookingRequest{
				UserID:      req.MemberID,
				EquipmentID: req.EquipmentID,
				CoachID:     &req.CoachID,
				Type:        domain.BookingEquipment,
				Start:       req.Start,
				End:         req.End,
				Notes:       req.Notes,
			}, admission{autoBooked: true})
			if err != nil {
				return err
			}
		}

		a := admission{cost: s.pricing.Cost(domain.BookingSession)}
		if equipmentBooking != nil {
			a.linked = &equipmentBooking.ID
		}
		var err error
		booked, err = s.admit(ctx, session, a)
		return err
	})
	if err != nil {
		s.logAdmissionError(err, session)
		return nil, nil, err
	}

	s.emit(ctx, notify.BookingConfirmed, booked, fmt.Sprintf("Coach session %d confirmed, %d tokens charged", booked.ID, booked.TokensCost))
	return booked, equipmentBooking, nil
}

// CancelBooking cancels an active booking and refunds it unless it was auto-booked.
// Cancelling a coach session also cancels its linked equipment booking.
func (s *Service) CancelBooking(ctx context.Context, bookingID int64, reason string) (*domain.Booking, error) {
	var booking, linked *domain.Booking
	var refund *domain.LedgerEntry
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		booking, err = s.lockActive(ctx, bookingID)
		if err != nil {
			return err
		}
		refund, err = s.cancel(ctx, booking, reason)
		if err != nil {
			return err
		}
		linked, err = s.cancelLinked(ctx, booking, reason)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrAlreadyTerminal) && !errors.Is(err, ErrBookingNotFound) {
			zap.L().Error("cancel booking failed", zap.Int64("booking_id", bookingID), zap.Error(err))
		}
		return nil, err
	}

	s.emit(ctx, notify.BookingCancelled, booking, fmt.Sprintf("Booking %d cancelled: %s", booking.ID, reason))
	if linked != nil {
		s.emit(ctx, notify.BookingCancelled, linked, fmt.Sprintf("Booking %d cancelled with session %d", linked.ID, booking.ID))
	}
	if refund != nil {
		s.emit(ctx, notify.TokensRefunded, booking, fmt.Sprintf("%d tokens refunded for booking %d", refund.Delta, booking.ID))
	}
	return booking, nil
}

func (s *Service) lockActive(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := s.repo.GetForUpdate(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("lock booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.Status.Terminal() {
		return nil, ErrAlreadyTerminal
	}
	return booking, nil
}

// cancelLinked runs with the session already locked. A linked booking that has
// already ended is left alone.
func (s *Service) cancelLinked(ctx context.Context, session *domain.Booking, reason string) (*domain.Booking, error) {
	if session.LinkedBookingID == nil {
		return nil, nil
	}
	linked, err := s.repo.GetForUpdate(ctx, *session.LinkedBookingID)
	if err != nil {
		return nil, fmt.Errorf("lock linked booking: %w", err)
	}
	if linked == nil || linked.Status.Terminal() {
		return nil, nil
	}
	if _, err := s.cancel(ctx, linked, reason); err != nil {
		return nil, fmt.Errorf("cancel linked booking: %w", err)
	}
	return linked, nil
}

func (s *Service) cancel(ctx context.Context, booking *domain.Booking, reason string) (*domain.LedgerEntry, error) {
	if err := s.repo.UpdateStatus(ctx, booking.ID, domain.StatusCancelled, &reason); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	booking.Status = domain.StatusCancelled
	booking.CancellationReason = &reason

	if !booking.Refundable() {
		return nil, nil
	}
	entry, refunded, err := s.ledger.CreditRefundForBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if !refunded {
		return nil, nil
	}
	return entry, nil
}

// CheckIn records the first check-in time; the status is left unchanged.
func (s *Service) CheckIn(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	var booking *domain.Booking
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		booking, err = s.lockActive(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking.CheckInAt != nil {
			return nil
		}
		at := s.now()
		if err := s.repo.SetCheckIn(ctx, booking.ID, at); err != nil {
			return fmt.Errorf("set check-in: %w", err)
		}
		booking.CheckInAt = &at
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrAlreadyTerminal) && !errors.Is(err, ErrBookingNotFound) {
			zap.L().Error("check-in failed", zap.Int64("booking_id", bookingID), zap.Error(err))
		}
		return nil, err
	}
	return booking, nil
}

func (s *Service) CheckOut(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	var booking *domain.Booking
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		booking, err = s.repo.GetForUpdate(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("lock booking: %w", err)
		}
		if booking == nil {
			return ErrBookingNotFound
		}
		if booking.CheckInAt == nil {
			return ErrNotCheckedIn
		}
		if booking.CheckOutAt != nil {
			return nil
		}
		at := s.now()
		if err := s.repo.SetCheckOut(ctx, booking.ID, at); err != nil {
			return fmt.Errorf("set check-out: %w", err)
		}
		booking.CheckOutAt = &at
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *Service) GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *Service) ListUserBookings(ctx context.Context, userID int64, limit int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *Service) ListExpired(ctx context.Context, now time.Time, after domain.ExpiredCursor, limit int) ([]domain.Booking, error) {
	return s.repo.ListExpired(ctx, now, after, limit)
}

// FinalizeExpired moves one expired booking to its terminal state in its own
// transaction. The row is re-read under lock, so a booking cancelled after it was
// listed is skipped with ErrAlreadyTerminal.
func (s *Service) FinalizeExpired(ctx context.Context, bookingID int64, now time.Time) (*domain.Booking, bool, error) {
	var booking *domain.Booking
	var refund *domain.LedgerEntry
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		booking, err = s.lockActive(ctx, bookingID)
		if err != nil {
			return err
		}
		if !booking.EndTime.Before(now) {
			return ErrNotExpired
		}

		if booking.CheckInAt != nil {
			if err := s.repo.UpdateStatus(ctx, booking.ID, domain.StatusCompleted, nil); err != nil {
				return fmt.Errorf("update status: %w", err)
			}
			booking.Status = domain.StatusCompleted
			return nil
		}

		refund, err = s.cancel(ctx, booking, domain.NoShowReason)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	if booking.Status == domain.StatusCancelled {
		s.emit(ctx, notify.BookingCancelled, booking, fmt.Sprintf("Booking %d cancelled: %s", booking.ID, domain.NoShowReason))
	}
	if refund != nil {
		s.emit(ctx, notify.TokensRefunded, booking, fmt.Sprintf("%d tokens refunded for booking %d", refund.Delta, booking.ID))
	}
	return booking, refund != nil, nil
}

func (s *Service) emit(ctx context.Context, eventType notify.EventType, b *domain.Booking, message string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Emit(ctx, notify.NewEvent(eventType, b.UserID, b.ID, message, s.now()))
}
