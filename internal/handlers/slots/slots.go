package slots

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/GlebRadaev/gymslot/internal/domain"
	"github.com/GlebRadaev/gymslot/internal/dto"
	"github.com/GlebRadaev/gymslot/pkg/utils"
	"github.com/GlebRadaev/gymslot/pkg/validate"
)

//go:generate mockgen -source=slots.go -destination=mock_slots.go -package=slots

type Service interface {
	ListSlots(ctx context.Context, equipmentID int64, date time.Time) ([]domain.SlotView, error)
	GenerateDailySlots(ctx context.Context, date time.Time) (domain.GenerationReport, error)
	ClearExpiredSlots(ctx context.Context) (domain.ClearReport, error)
}

const dateLayout = "2006-01-02"

type SlotHandler struct {
	slotService Service
	loc         *time.Location
}

func New(slotService Service, loc *time.Location) *SlotHandler {
	return &SlotHandler{
		slotService: slotService,
		loc:         loc,
	}
}

// GetSlots godoc
//
//	@Summary		List slots of a day
//	@Description	Generated slots of one equipment item with their OPEN or HELD state.
//	@Tags			Slots
//	@Security		BearerAuth
//	@Produce		json
//	@Param			equipment_id	query		int						true	"Equipment id"
//	@Param			date			query		string					true	"Local date, YYYY-MM-DD"
//	@Success		200				{array}		dto.SlotResponseDTO		"Slots"
//	@Success		204				{object}	utils.Response			"No slots generated"
//	@Failure		400				{object}	utils.Response			"Invalid query"
//	@Failure		401				{object}	utils.Response			"User not authorized"
//	@Failure		500				{object}	utils.Response			"Internal server error"
//	@Router			/api/slots [get]
func (h *SlotHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	equipmentID, err := strconv.ParseInt(r.URL.Query().Get("equipment_id"), 10, 64)
	if err != nil || equipmentID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid equipment_id")
		return
	}
	date, err := time.ParseInLocation(dateLayout, r.URL.Query().Get("date"), h.loc)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid date")
		return
	}

	views, err := h.slotService.ListSlots(r.Context(), equipmentID, date)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "internal error, retry later")
		return
	}
	if len(views) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "slots not found")
		return
	}

	response := make([]dto.SlotResponseDTO, len(views))
	for i, v := range views {
		response[i] = dto.SlotResponseDTO{
			ID:          v.ID,
			EquipmentID: v.EquipmentID,
			StartTime:   v.StartTime,
			EndTime:     v.EndTime,
			State:       string(v.State),
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GenerateSlots godoc
//
//	@Summary		Generate slots for a date
//	@Description	Creates missing slots of every active equipment item. Running it twice creates nothing new.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.GenerateSlotsRequestDTO	true	"Target date"
//	@Success		200		{object}	dto.GenerationResponseDTO	"Generation report"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		403		{object}	utils.Response				"Not an admin"
//	@Failure		422		{object}	utils.Response				"Validation failed"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/admin/slots/generate [post]
func (h *SlotHandler) GenerateSlots(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateSlotsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	date, _ := time.ParseInLocation(dateLayout, req.Date, h.loc)

	// Per-equipment failures are listed in the report.
	report, err := h.slotService.GenerateDailySlots(r.Context(), date)
	if err != nil && len(report.Failed) == 0 {
		utils.RespondWithError(w, http.StatusInternalServerError, "internal error, retry later")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.GenerationResponseDTO{
		Date:      report.Date.In(h.loc).Format(dateLayout),
		Created:   report.Created,
		Equipment: report.Equipment,
		Failed:    report.Failed,
	})
}

// ClearSlots godoc
//
//	@Summary	Delete past slots
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	dto.ClearResponseDTO	"Clear report"
//	@Failure	403	{object}	utils.Response			"Not an admin"
//	@Failure	500	{object}	utils.Response			"Internal server error"
//	@Router		/api/admin/slots/clear [post]
func (h *SlotHandler) ClearSlots(w http.ResponseWriter, r *http.Request) {
	report, err := h.slotService.ClearExpiredSlots(r.Context())
	if err != nil && len(report.Failed) == 0 {
		utils.RespondWithError(w, http.StatusInternalServerError, "internal error, retry later")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ClearResponseDTO{
		Deleted: report.Deleted,
		Failed:  report.Failed,
	})
}
