package repo

import (
	"github.com/GlebRadaev/gymslot/internal/pg"
	bookingrepo "github.com/GlebRadaev/gymslot/internal/repo/booking-repo"
	ledgerrepo "github.com/GlebRadaev/gymslot/internal/repo/ledger-repo"
	slotrepo "github.com/GlebRadaev/gymslot/internal/repo/slot-repo"
	"github.com/GlebRadaev/gymslot/internal/service/bookingservice"
	"github.com/GlebRadaev/gymslot/internal/service/ledgerservice"
	"github.com/GlebRadaev/gymslot/internal/service/slotservice"
)

// SlotRepo serves both the generator and the admission coverage check.
type SlotRepo interface {
	slotservice.Repo
	bookingservice.SlotRepo
}

type Repositories struct {
	LedgerRepo  ledgerservice.Repo
	SlotRepo    SlotRepo
	BookingRepo bookingservice.Repo
	TxManager   pg.TXManager
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	ledgerRepo := ledgerrepo.New(conn, txManager)
	slotRepo := slotrepo.New(conn)
	bookingRepo := bookingrepo.New(conn)

	return &Repositories{
		LedgerRepo:  ledgerRepo,
		SlotRepo:    slotRepo,
		BookingRepo: bookingRepo,
		TxManager:   txManager,
	}
}
