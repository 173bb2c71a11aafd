package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	sdkmath "cosmossdk.io/math"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/stakeflow-labs/stakeflow-engine/internal/amm"
	"github.com/stakeflow-labs/stakeflow-engine/internal/config"
	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/services"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{ErrorCode: code, Message: message})
}

func writeServiceError(w http.ResponseWriter, err *types.Error) {
	message := ""
	if err.Err != nil {
		message = err.Err.Error()
	}
	writeError(w, err.StatusCode, err.ErrorCode.String(), message)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "malformed request body")
		return false
	}
	return true
}

// parseAmount accepts a positive decimal string. Amounts cross the wire as
// strings so 64-bit JSON number limits never truncate them.
func parseAmount(w http.ResponseWriter, raw string) (ledger.Amount, bool) {
	v, ok := sdkmath.NewIntFromString(raw)
	if !ok || !v.IsPositive() {
		writeError(w, http.StatusBadRequest, types.ZeroAmount.String(), "amount must be a positive decimal string")
		return ledger.ZeroAmount(), false
	}
	return v, true
}

func (s *Server) handleBindReferrer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User     string `json:"user"`
		Referrer string `json:"referrer"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.service.BindReferrer(r.Context(), req.User, req.Referrer); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "bound"})
}

func (s *Server) handleBuyTicket(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User   string `json:"user"`
		Amount string `json:"amount"`
	}
	if !decode(w, r, &req) {
		return
	}
	amount, ok := parseAmount(w, req.Amount)
	if !ok {
		return
	}
	if err := s.service.BuyTicket(r.Context(), req.User, amount); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "purchased"})
}

func (s *Server) handleStakeLiquidity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User      string `json:"user"`
		Amount    string `json:"amount"`
		CycleDays uint32 `json:"cycleDays"`
	}
	if !decode(w, r, &req) {
		return
	}
	amount, ok := parseAmount(w, req.Amount)
	if !ok {
		return
	}
	if err := s.service.StakeLiquidity(r.Context(), req.User, amount, req.CycleDays); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "staked"})
}

// handleRedeem settles one stake when stakeId is given, otherwise every
// accruing stake of the account.
func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User    string `json:"user"`
		StakeID string `json:"stakeId,omitempty"`
	}
	if !decode(w, r, &req) {
		return
	}
	var err *types.Error
	if req.StakeID != "" {
		err = s.service.RedeemStake(r.Context(), req.User, req.StakeID)
	} else {
		err = s.service.Redeem(r.Context(), req.User)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "redeemed"})
}

type swapResponse struct {
	AmountIn  string `json:"amountIn"`
	GrossOut  string `json:"grossOut"`
	Burned    string `json:"burned"`
	AmountOut string `json:"amountOut"`
}

func (s *Server) handleSwapAToB(w http.ResponseWriter, r *http.Request) {
	s.handleSwap(w, r, s.service.SwapAToB)
}

func (s *Server) handleSwapBToA(w http.ResponseWriter, r *http.Request) {
	s.handleSwap(w, r, s.service.SwapBToA)
}

func (s *Server) handleSwap(
	w http.ResponseWriter,
	r *http.Request,
	swap func(ctx context.Context, user string, amountIn ledger.Amount) (amm.SwapResult, *types.Error),
) {
	var req struct {
		User   string `json:"user"`
		Amount string `json:"amount"`
	}
	if !decode(w, r, &req) {
		return
	}
	amount, ok := parseAmount(w, req.Amount)
	if !ok {
		return
	}
	result, err := swap(r.Context(), req.User, amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, swapResponse{
		AmountIn:  result.AmountIn.String(),
		GrossOut:  result.GrossOut.String(),
		Burned:    result.Burned.String(),
		AmountOut: result.AmountOut.String(),
	})
}

func (s *Server) handleDailyBurn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Caller string `json:"caller"`
	}
	if !decode(w, r, &req) {
		return
	}
	burned, err := s.service.DailyBurn(r.Context(), req.Caller)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"burned": burned.String()})
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.GetAccount(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetStakes(w http.ResponseWriter, r *http.Request) {
	views, err := s.service.GetStakes(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	views = paginate(views, r)
	if views == nil {
		views = []services.StakeView{}
	}
	writeJSON(w, http.StatusOK, views)
}

// paginate applies optional offset/limit query parameters to a stake list.
func paginate(views []services.StakeView, r *http.Request) []services.StakeView {
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
		if offset >= len(views) {
			return nil
		}
		views = views[offset:]
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 && limit < len(views) {
		views = views[:limit]
	}
	return views
}

func (s *Server) handleGetPool(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.GetPool(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetTiers(w http.ResponseWriter, r *http.Request) {
	views, err := s.service.GetTiers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleSetOperationalStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Caller string `json:"caller"`
		Paused bool   `json:"paused"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.service.SetOperationalStatus(r.Context(), req.Caller, req.Paused); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"paused": req.Paused})
}

func (s *Server) handleSetWallets(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Caller string `json:"caller"`
		Owner  string `json:"owner"`
		Fee    string `json:"fee"`
	}
	if !decode(w, r, &req) {
		return
	}
	wallets := services.Wallets{Owner: req.Owner, Fee: req.Fee}
	if err := s.service.SetWallets(r.Context(), req.Caller, wallets); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleSetDistributionConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Caller   string                `json:"caller"`
		Protocol config.ProtocolConfig `json:"protocol"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.service.SetDistributionConfig(r.Context(), req.Caller, req.Protocol); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleSetLevelConfigs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Caller               string `json:"caller"`
		DirectRateBillionths int64  `json:"directRateBillionths"`
		LevelRateBillionths  int64  `json:"levelRateBillionths"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.service.SetLevelConfigs(r.Context(), req.Caller, req.DirectRateBillionths, req.LevelRateBillionths); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleSetSwapTaxes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Caller             string `json:"caller"`
		BuyTaxBillionths   int64  `json:"buyTaxBillionths"`
		SellTaxBillionths  int64  `json:"sellTaxBillionths"`
		BurnRateBillionths int64  `json:"burnRateBillionths"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.service.SetSwapTaxes(r.Context(), req.Caller, req.BuyTaxBillionths, req.SellTaxBillionths, req.BurnRateBillionths); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleAddLiquidity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Caller  string `json:"caller"`
		AmountA string `json:"amountA"`
		AmountB string `json:"amountB"`
	}
	if !decode(w, r, &req) {
		return
	}
	amountA, ok := parseAmount(w, req.AmountA)
	if !ok {
		return
	}
	amountB, ok := parseAmount(w, req.AmountB)
	if !ok {
		return
	}
	if err := s.service.AddLiquidity(r.Context(), req.Caller, amountA, amountB); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

func (s *Server) handleFundTreasury(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Caller  string `json:"caller"`
		AmountB string `json:"amountB"`
	}
	if !decode(w, r, &req) {
		return
	}
	amountB, ok := parseAmount(w, req.AmountB)
	if !ok {
		return
	}
	if err := s.service.FundTreasury(r.Context(), req.Caller, amountB); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "funded"})
}

func (s *Server) handleWithdrawTreasury(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Caller  string `json:"caller"`
		AmountB string `json:"amountB"`
	}
	if !decode(w, r, &req) {
		return
	}
	amountB, ok := parseAmount(w, req.AmountB)
	if !ok {
		return
	}
	if err := s.service.WithdrawTreasury(r.Context(), req.Caller, amountB); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "withdrawn"})
}
