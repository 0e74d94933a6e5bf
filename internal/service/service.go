package service

import (
	"time"

	"github.com/GlebRadaev/gymslot/internal/handlers/balance"
	"github.com/GlebRadaev/gymslot/internal/handlers/bookings"
	"github.com/GlebRadaev/gymslot/internal/handlers/slots"
	"github.com/GlebRadaev/gymslot/internal/reconcile"
	"github.com/GlebRadaev/gymslot/internal/repo"
	"github.com/GlebRadaev/gymslot/internal/service/bookingservice"
	"github.com/GlebRadaev/gymslot/internal/service/ledgerservice"
	"github.com/GlebRadaev/gymslot/internal/service/slotservice"
)

type Options struct {
	SlotCache   slotservice.Cache
	Notifier    bookingservice.Notifier
	Location    *time.Location
	HorizonDays int
	Pricing     bookingservice.Pricing
}

type Services struct {
	LedgerService  balance.Service
	SlotService    slots.Service
	BookingService bookings.Service
	Reconcile      *reconcile.Job
}

func New(repo *repo.Repositories, opts Options) *Services {
	ledgerService := ledgerservice.New(repo.LedgerRepo, repo.TxManager)
	slotService := slotservice.New(repo.SlotRepo, opts.SlotCache, opts.Location, opts.HorizonDays)
	bookingService := bookingservice.New(repo.BookingRepo, repo.SlotRepo, ledgerService, opts.Notifier, repo.TxManager, opts.Pricing)

	return &Services{
		LedgerService:  ledgerService,
		SlotService:    slotService,
		BookingService: bookingService,
		Reconcile:      reconcile.New(bookingService, slotService),
	}
}
