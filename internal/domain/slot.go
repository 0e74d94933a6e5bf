package domain

import "time"

type Equipment struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Active      bool   `db:"active"`
	SlotMinutes int    `db:"slot_minutes"`
	SlotsPerDay int    `db:"slots_per_day"`
	// OpensAt is the offset of the first slot from local midnight.
	OpensAt time.Duration `db:"opens_at"`
}

type Slot struct {
	ID          int64     `db:"id" json:"id"`
	EquipmentID int64     `db:"equipment_id" json:"equipment_id"`
	Date        time.Time `db:"slot_date" json:"date"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
}

// Window is a half-open [Start, End) interval.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

type SlotState string

const (
	SlotOpen SlotState = "OPEN"
	SlotHeld SlotState = "HELD"
)

type SlotView struct {
	Slot
	State SlotState
}

type GenerationReport struct {
	Date      time.Time
	Created   int64
	Equipment int
	Failed    []int64
}

type ClearReport struct {
	Deleted int64
	Failed  []int64
}
