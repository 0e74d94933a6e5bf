package balance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/gymslot/internal/domain"
	"github.com/GlebRadaev/gymslot/internal/dto"
	"github.com/GlebRadaev/gymslot/internal/service/ledgerservice"
	"github.com/GlebRadaev/gymslot/pkg/auth"
	"github.com/GlebRadaev/gymslot/pkg/utils"
	"github.com/GlebRadaev/gymslot/pkg/validate"
)

//go:generate mockgen -source=balance.go -destination=mock_balance.go -package=balance

type Service interface {
	BalanceOf(ctx context.Context, userID int64) (int64, error)
	History(ctx context.Context, userID int64, limit int) ([]domain.LedgerEntry, error)
	Debit(ctx context.Context, userID, amount int64, kind domain.TxKind, ref domain.Reference) (*domain.LedgerEntry, error)
	Credit(ctx context.Context, userID, amount int64, kind domain.TxKind, ref domain.Reference) (*domain.LedgerEntry, error)
}

type BalanceHandler struct {
	ledgerService Service
}

func New(ledgerService Service) *BalanceHandler {
	return &BalanceHandler{
		ledgerService: ledgerService,
	}
}

func toEntry(e *domain.LedgerEntry) dto.LedgerEntryDTO {
	return dto.LedgerEntryDTO{
		ID:           e.ID,
		Delta:        e.Delta,
		Kind:         string(e.Kind),
		Reference:    e.Ref.String(),
		BalanceAfter: e.BalanceAfter,
		CreatedAt:    e.CreatedAt,
	}
}

func respondLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgerservice.ErrInsufficientBalance):
		utils.RespondWithError(w, http.StatusPaymentRequired, "insufficient tokens")
	case errors.Is(err, ledgerservice.ErrDuplicateReference):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ledgerservice.ErrInvalidAmount), errors.Is(err, ledgerservice.ErrInvalidKind):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "internal error, retry later")
	}
}

// GetBalance godoc
//
//	@Summary		Get current token balance
//	@Description	Retrieve the token balance of the authenticated user.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFrom(r.Context())

	balance, err := h.ledgerService.BalanceOf(r.Context(), userID)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		UserID:  userID,
		Balance: balance,
	})
}

// GetHistory godoc
//
//	@Summary		Get token history
//	@Description	Ledger entries of the authenticated user, newest first.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int					false	"Maximum number of entries"
//	@Success		200		{array}		dto.LedgerEntryDTO	"Ledger entries"
//	@Success		204		{object}	utils.Response		"No entries"
//	@Failure		401		{object}	utils.Response		"User not authorized"
//	@Failure		500		{object}	utils.Response		"Internal server error"
//	@Router			/api/balance/history [get]
func (h *BalanceHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFrom(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.ledgerService.History(r.Context(), userID, limit)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	if len(entries) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "entries not found")
		return
	}

	response := make([]dto.LedgerEntryDTO, len(entries))
	for i := range entries {
		response[i] = toEntry(&entries[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Spend godoc
//
//	@Summary		Spend tokens on an AI plan
//	@Description	Charge tokens for a generated plan. The plan id is stored as the entry reference.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SpendRequestDTO	true	"Spend request"
//	@Success		200		{object}	dto.LedgerEntryDTO	"Tokens spent"
//	@Failure		400		{object}	utils.Response		"Invalid request body"
//	@Failure		401		{object}	utils.Response		"User not authorized"
//	@Failure		402		{object}	utils.Response		"Insufficient tokens"
//	@Failure		422		{object}	utils.Response		"Validation failed"
//	@Failure		500		{object}	utils.Response		"Internal server error"
//	@Router			/api/balance/spend [post]
func (h *BalanceHandler) Spend(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFrom(r.Context())

	var req dto.SpendRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	entry, err := h.ledgerService.Debit(r.Context(), userID, req.Amount, domain.TxSpend,
		domain.Reference{Type: domain.RefAIPlan, ID: req.PlanID})
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toEntry(entry))
}

// Credit godoc
//
//	@Summary		Credit tokens to a member
//	@Description	Reception records a purchase or grants a bonus. A purchase is applied once per payment id.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreditRequestDTO	true	"Credit request"
//	@Success		200		{object}	dto.LedgerEntryDTO		"Tokens credited"
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		403		{object}	utils.Response			"Not staff"
//	@Failure		409		{object}	utils.Response			"Payment already credited"
//	@Failure		422		{object}	utils.Response			"Validation failed"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/admin/credits [post]
func (h *BalanceHandler) Credit(w http.ResponseWriter, r *http.Request) {
	var req dto.CreditRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var ref domain.Reference
	if req.PaymentID != "" {
		ref = domain.Reference{Type: domain.RefPayment, ID: req.PaymentID}
	}
	entry, err := h.ledgerService.Credit(r.Context(), req.UserID, req.Amount, domain.TxKind(req.Kind), ref)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toEntry(entry))
}
