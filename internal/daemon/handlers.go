package daemon

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/theirongolddev/agentcost/internal/calc"
	"github.com/theirongolddev/agentcost/internal/metrics"
	"github.com/theirongolddev/agentcost/internal/model"
	"github.com/theirongolddev/agentcost/internal/report"
	"github.com/theirongolddev/agentcost/internal/store"
)

// maxBodyBytes bounds request bodies; inputs are small JSON documents.
const maxBodyBytes = 1 << 20

// GrowthRequest is the body of POST /v1/growth.
type GrowthRequest struct {
	BaseMonthlyCostUSD float64              `json:"baseMonthlyCostUsd"`
	ExchangeRate       float64              `json:"exchangeRate"`
	Scenario           model.GrowthScenario `json:"scenario"`
}

// PromptEstimateResponse is the body returned by POST /v1/prompt-estimate.
type PromptEstimateResponse struct {
	Chars int `json:"chars"`
}

// AddComparisonResponse reports whether a new entry was stored.
type AddComparisonResponse struct {
	Entry model.ComparisonEntry `json:"entry"`
	Added bool                  `json:"added"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, errorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request body: %w", err))
		return false
	}
	return true
}

// estimateStatus maps a calculation error to an HTTP status.
func estimateStatus(err error) int {
	switch {
	case errors.Is(err, calc.ErrUnknownModel), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Service) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.source.Snapshot())
}

func (s *Service) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var in model.DetailedInput
	if !decodeBody(w, r, &in) {
		return
	}
	s.applyDefaults(&in)
	if err := calc.ValidateDetailed(in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := calc.Calculate(in, s.source.Snapshot(), s.pairs.RecommendAuxiliary)
	if err != nil {
		writeError(w, estimateStatus(err), err)
		return
	}
	s.recordEstimate(metrics.ModeDetailed, res)
	writeJSON(w, http.StatusOK, res)
}

func (s *Service) handleEstimateSimple(w http.ResponseWriter, r *http.Request) {
	var in model.SimpleInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := calc.ValidateSimple(in, s.presets); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := calc.CalculateSimple(in, s.source.Snapshot(), s.pairs.RecommendAuxiliary, s.presets)
	if err != nil {
		writeError(w, estimateStatus(err), err)
		return
	}
	s.recordEstimate(metrics.ModeSimple, res)
	writeJSON(w, http.StatusOK, res)
}

// applyDefaults fills the display fields a client may omit.
func (s *Service) applyDefaults(in *model.DetailedInput) {
	if in.Currency == "" {
		in.Currency = s.cfg.Currency
	}
	if in.ExchangeRate == 0 {
		in.ExchangeRate = s.cfg.ExchangeRate
	}
}

func (s *Service) recordEstimate(mode string, res model.CostResult) {
	a := res.Assumptions
	s.metrics.RecordEstimate(mode, a.ProviderName, a.ModelName, res.CostPerRequest, res.MonthlyCostUSD)

	s.mu.Lock()
	s.estimateCount++
	s.mu.Unlock()

	s.publish(EventEstimate, map[string]any{
		"mode":           mode,
		"model":          a.ModelName,
		"costPerRequest": res.CostPerRequest,
		"monthlyCostUsd": res.MonthlyCostUSD,
	})
}

func (s *Service) handleGrowth(w http.ResponseWriter, r *http.Request) {
	var req GrowthRequest
	if !decodeBody(w, r, &req) {
		return
	}
	switch req.Scenario.Mode {
	case model.GrowthMultiplier, model.GrowthMonthlyRate:
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown growth mode %q", req.Scenario.Mode))
		return
	}
	if req.ExchangeRate == 0 {
		req.ExchangeRate = s.cfg.ExchangeRate
	}
	writeJSON(w, http.StatusOK, calc.CalcGrowthProjection(req.BaseMonthlyCostUSD, req.ExchangeRate, req.Scenario))
}

func (s *Service) handlePromptEstimate(w http.ResponseWriter, r *http.Request) {
	var est model.SystemPromptEstimation
	if !decodeBody(w, r, &est) {
		return
	}
	for f, l := range est {
		if _, err := model.ParseLevel(string(l)); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("%s: %w", f, err))
			return
		}
	}
	writeJSON(w, http.StatusOK, PromptEstimateResponse{Chars: calc.EstimateSystemPromptChars(est)})
}

func (s *Service) handleListComparisons(w http.ResponseWriter, r *http.Request) {
	entries, err := s.comparisons.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if entries == nil {
		entries = []model.ComparisonEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Service) handleAddComparison(w http.ResponseWriter, r *http.Request) {
	var res model.CostResult
	if !decodeBody(w, r, &res) {
		return
	}
	if res.Assumptions.ModelName == "" {
		writeError(w, http.StatusBadRequest, errors.New("result has no assumptions.modelName"))
		return
	}

	entry, added, err := s.comparisons.Add(r.Context(), res)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	code := http.StatusOK
	if added {
		code = http.StatusCreated
		s.publish(EventComparisonAdded, map[string]string{"id": entry.ID, "label": entry.Label})
	}
	writeJSON(w, code, AddComparisonResponse{Entry: entry, Added: added})
}

func (s *Service) handleClearComparisons(w http.ResponseWriter, r *http.Request) {
	n, err := s.comparisons.Clear(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if n > 0 {
		s.publish(EventComparisonRemoved, map[string]int{"deleted": n})
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": n})
}

func (s *Service) handleGetComparison(w http.ResponseWriter, r *http.Request) {
	entry, err := s.comparisons.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, estimateStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Service) handleRemoveComparison(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.comparisons.Remove(r.Context(), id); err != nil {
		writeError(w, estimateStatus(err), err)
		return
	}
	s.publish(EventComparisonRemoved, map[string]string{"id": id})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleReport(w http.ResponseWriter, r *http.Request) {
	currency := model.Currency(strings.ToUpper(r.URL.Query().Get("currency")))
	switch currency {
	case "":
		currency = s.cfg.Currency
	case model.CurrencyUSD, model.CurrencyJPY:
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown currency %q", currency))
		return
	}

	entries, err := s.comparisons.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_ = report.Write(w, entries, report.Options{Currency: currency, ExchangeRate: s.cfg.ExchangeRate})
}
