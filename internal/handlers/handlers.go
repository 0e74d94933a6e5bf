package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/gymslot/docs"
	balancehandlers "github.com/GlebRadaev/gymslot/internal/handlers/balance"
	bookinghandlers "github.com/GlebRadaev/gymslot/internal/handlers/bookings"
	slothandlers "github.com/GlebRadaev/gymslot/internal/handlers/slots"
	"github.com/GlebRadaev/gymslot/internal/service"
	"github.com/GlebRadaev/gymslot/pkg/auth"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type BookingHandler interface {
	CreateBooking(w http.ResponseWriter, r *http.Request)
	GetBookings(w http.ResponseWriter, r *http.Request)
	GetBooking(w http.ResponseWriter, r *http.Request)
	CancelBooking(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	AssignCoachSession(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	Spend(w http.ResponseWriter, r *http.Request)
	Credit(w http.ResponseWriter, r *http.Request)
}

type SlotHandler interface {
	GetSlots(w http.ResponseWriter, r *http.Request)
	GenerateSlots(w http.ResponseWriter, r *http.Request)
	ClearSlots(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	BookingHandler BookingHandler
	BalanceHandler BalanceHandler
	SlotHandler    SlotHandler

	jwtService *auth.JWTService
}

func New(s *service.Services, jwtService *auth.JWTService, loc *time.Location) *Handlers {
	return &Handlers{
		BookingHandler: bookinghandlers.New(s.BookingService),
		BalanceHandler: balancehandlers.New(s.LedgerService),
		SlotHandler:    slothandlers.New(s.SlotService, loc),
		jwtService:     jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(h.jwtService))

		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", h.BookingHandler.CreateBooking)
			r.Get("/", h.BookingHandler.GetBookings)
			r.Get("/{id}", h.BookingHandler.GetBooking)
			r.Post("/{id}/cancel", h.BookingHandler.CancelBooking)
			r.Post("/{id}/check-in", h.BookingHandler.CheckIn)
			r.Post("/{id}/check-out", h.BookingHandler.CheckOut)
		})
		r.Route("/balance", func(r chi.Router) {
			r.Get("/", h.BalanceHandler.GetBalance)
			r.Get("/history", h.BalanceHandler.GetHistory)
			r.Post("/spend", h.BalanceHandler.Spend)
		})
		r.Get("/slots", h.SlotHandler.GetSlots)

		r.With(auth.RequireRole(auth.RoleCoach, auth.RoleAdmin)).
			Post("/coach/sessions", h.BookingHandler.AssignCoachSession)

		r.Route("/admin", func(r chi.Router) {
			r.With(auth.RequireRole(auth.RoleReception, auth.RoleAdmin)).
				Post("/credits", h.BalanceHandler.Credit)
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(auth.RoleAdmin))
				r.Post("/slots/generate", h.SlotHandler.GenerateSlots)
				r.Post("/slots/clear", h.SlotHandler.ClearSlots)
			})
		})
	})

	return r
}
