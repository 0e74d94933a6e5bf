package dto

import "time"

type SlotResponseDTO struct {
	ID          int64     `json:"id" example:"101"`
	EquipmentID int64     `json:"equipment_id" example:"7"`
	StartTime   time.Time `json:"start_time" example:"2024-03-10T10:00:00+03:00"`
	EndTime     time.Time `json:"end_time" example:"2024-03-10T11:00:00+03:00"`
	State       string    `json:"state" example:"OPEN"`
}

type GenerateSlotsRequestDTO struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02" example:"2024-03-10"`
}

type GenerationResponseDTO struct {
	Date      string  `json:"date" example:"2024-03-10"`
	Created   int64   `json:"created" example:"14"`
	Equipment int     `json:"equipment" example:"3"`
	Failed    []int64 `json:"failed,omitempty"`
}

type ClearResponseDTO struct {
	Deleted int64   `json:"deleted" example:"28"`
	Failed  []int64 `json:"failed,omitempty"`
}
