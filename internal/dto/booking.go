package dto

import "time"

type CreateBookingRequestDTO struct {
	EquipmentID *int64    `json:"equipment_id,omitempty" validate:"omitempty,gt=0" example:"7"`
	CoachID     *int64    `json:"coach_id,omitempty" validate:"omitempty,gt=0" example:"3"`
	Type        string    `json:"booking_type" validate:"required,oneof=EQUIPMENT SESSION INBODY" example:"EQUIPMENT"`
	StartTime   time.Time `json:"start_time" validate:"required" example:"2024-03-10T10:00:00+03:00"`
	EndTime     time.Time `json:"end_time" validate:"required,gtfield=StartTime" example:"2024-03-10T11:00:00+03:00"`
	Notes       *string   `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type CancelBookingRequestDTO struct {
	Reason string `json:"reason" validate:"max=255" example:"changed plans"`
}

type CoachSessionRequestDTO struct {
	MemberID    int64     `json:"member_id" validate:"required,gt=0" example:"1"`
	EquipmentID *int64    `json:"equipment_id,omitempty" validate:"omitempty,gt=0" example:"7"`
	StartTime   time.Time `json:"start_time" validate:"required" example:"2024-03-10T10:00:00+03:00"`
	EndTime     time.Time `json:"end_time" validate:"required,gtfield=StartTime" example:"2024-03-10T11:00:00+03:00"`
	Notes       *string   `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type BookingResponseDTO struct {
	ID                 int64      `json:"id" example:"42"`
	UserID             int64      `json:"user_id" example:"1"`
	EquipmentID        *int64     `json:"equipment_id,omitempty" example:"7"`
	CoachID            *int64     `json:"coach_id,omitempty"`
	Type               string     `json:"booking_type" example:"EQUIPMENT"`
	Status             string     `json:"status" example:"CONFIRMED"`
	StartTime          time.Time  `json:"start_time" example:"2024-03-10T10:00:00+03:00"`
	EndTime            time.Time  `json:"end_time" example:"2024-03-10T11:00:00+03:00"`
	TokensCost         int64      `json:"tokens_cost" example:"5"`
	AutoBooked         bool       `json:"auto_booked"`
	LinkedBookingID    *int64     `json:"linked_booking_id,omitempty"`
	CheckInAt          *time.Time `json:"check_in_at,omitempty"`
	CheckOutAt         *time.Time `json:"check_out_at,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type CoachSessionResponseDTO struct {
	Session   BookingResponseDTO  `json:"session"`
	Equipment *BookingResponseDTO `json:"equipment,omitempty"`
}
