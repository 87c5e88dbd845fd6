package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	sdkmath "cosmossdk.io/math"
	"github.com/go-chi/chi/v5"

	"github.com/babylonlabs-io/payment-service/internal/services"
	"github.com/babylonlabs-io/payment-service/internal/types"
	"github.com/babylonlabs-io/payment-service/pkg"
)

const maxBodyBytes = 1 << 20

// PaymentService is the ledger surface served over HTTP.
type PaymentService interface {
	Ping(ctx context.Context) error
	GetConfig(ctx context.Context) (*services.Config, *types.Error)
	DepositBenefitAmount(ctx context.Context, caller string, value sdkmath.Uint) *types.Error
	SetStreamingTime(ctx context.Context, caller string, seconds uint64) *types.Error
	AddNewShares(ctx context.Context, caller, beneficiary string, amount sdkmath.Uint) *types.Error
	GetShareData(ctx context.Context, beneficiary string) (*services.ShareData, *types.Error)
	PreviewWithdraw(ctx context.Context, beneficiary string) (*services.WithdrawPreview, *types.Error)
	Withdraw(ctx context.Context, caller string) (*services.WithdrawResult, *types.Error)
	ListEvents(ctx context.Context, eventType string, limit int64) ([]services.StoredEvent, *types.Error)
}

type handlers struct {
	svc PaymentService
}

type depositRequest struct {
	Value string `json:"value"`
}

type streamingTimeRequest struct {
	Seconds uint64 `json:"seconds"`
}

type addSharesRequest struct {
	Beneficiary string `json:"beneficiary"`
	Amount      string `json:"amount"`
}

type eventsResponse struct {
	Events []services.StoredEvent `json:"events"`
}

func (h *handlers) healthcheck(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		writeError(w, r, types.NewError(http.StatusServiceUnavailable, types.InternalServiceError, fmt.Errorf("database unavailable: %w", err)))
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) getConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.GetConfig(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cfg)
}

func (h *handlers) deposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	value, err := parseAmount("value", req.Value)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.DepositBenefitAmount(r.Context(), callerFromContext(r.Context()), value); err != nil {
		writeError(w, r, err)
		return
	}
	h.getConfig(w, r)
}

func (h *handlers) setStreamingTime(w http.ResponseWriter, r *http.Request) {
	var req streamingTimeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.SetStreamingTime(r.Context(), callerFromContext(r.Context()), req.Seconds); err != nil {
		writeError(w, r, err)
		return
	}
	h.getConfig(w, r)
}

func (h *handlers) addShares(w http.ResponseWriter, r *http.Request) {
	var req addSharesRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.AddNewShares(r.Context(), callerFromContext(r.Context()), req.Beneficiary, amount); err != nil {
		writeError(w, r, err)
		return
	}
	h.writeShareData(w, r, req.Beneficiary)
}

func (h *handlers) getMyShares(w http.ResponseWriter, r *http.Request) {
	h.writeShareData(w, r, callerFromContext(r.Context()))
}

func (h *handlers) getShares(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	if err := pkg.ValidateAddress(address); err != nil {
		writeError(w, r, types.NewValidationFailedError(err))
		return
	}
	h.writeShareData(w, r, address)
}

func (h *handlers) writeShareData(w http.ResponseWriter, r *http.Request, beneficiary string) {
	data, err := h.svc.GetShareData(r.Context(), beneficiary)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, data)
}

func (h *handlers) previewWithdraw(w http.ResponseWriter, r *http.Request) {
	preview, err := h.svc.PreviewWithdraw(r.Context(), callerFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, preview)
}

func (h *handlers) withdraw(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Withdraw(r.Context(), callerFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (h *handlers) listEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var limit int64
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			writeError(w, r, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	events, err := h.svc.ListEvents(r.Context(), query.Get("type"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, eventsResponse{Events: events})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) *types.Error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return types.NewError(http.StatusBadRequest, types.BadRequest, fmt.Errorf("invalid request body: %w", err))
	}
	return nil
}

// parseAmount reads a non-negative decimal string. Zero is left for the ledger to reject.
func parseAmount(field, raw string) (sdkmath.Uint, *types.Error) {
	if raw == "" {
		return sdkmath.ZeroUint(), nil
	}

	amount, err := sdkmath.ParseUint(raw)
	if err != nil {
		return sdkmath.Uint{}, types.NewError(http.StatusBadRequest, types.BadRequest, fmt.Errorf("%s: %w", field, err))
	}
	return amount, nil
}
