package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"TrendSentinel/internal/collector"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/recorder"
	"TrendSentinel/internal/strategy"
	"TrendSentinel/internal/watch"
)

// maxPoints bounds the size of a POSTed series.
const maxPoints = 10000

// Handler holds dependencies for HTTP handlers
type Handler struct {
	collector *collector.Collector
	watch     *watch.Manager
	recorder  recorder.Recorder
}

// NewHandler creates a new Handler
func NewHandler(col *collector.Collector, wm *watch.Manager, rec recorder.Recorder) *Handler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Handler{
		collector: col,
		watch:     wm,
		recorder:  rec,
	}
}

// GetDMI handles GET /dmi/{symbol}?period=&timeframe=&from=&to=
func (h *Handler) GetDMI(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	report, err := h.collector.Collect(q)
	if err != nil {
		if errors.Is(err, collector.ErrNoSymbol) {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		log.WithField("symbol", q.Symbol).Errorf("collect: %v", err)
		respondError(w, http.StatusBadGateway, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

type computeRequest struct {
	Period int                `json:"period"`
	Points []model.PricePoint `json:"points"`
}

// ComputeDMI handles POST /dmi with a caller supplied close series.
func (h *Handler) ComputeDMI(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if len(req.Points) > maxPoints {
		respondError(w, http.StatusBadRequest, fmt.Errorf("at most %d points are accepted", maxPoints))
		return
	}
	if err := checkSeries(req.Points); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	res, err := strategy.Analyze(req.Points, req.Period)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err)
		return
	}

	respondJSON(w, http.StatusOK, res)
}

// GetHistory handles GET /history/{symbol}?limit=
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}

	rows, err := h.recorder.RecentTrends(symbol, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	if rows == nil {
		rows = []recorder.TrendRow{}
	}

	respondJSON(w, http.StatusOK, rows)
}

// GetWatchlist handles GET /watchlist
func (h *Handler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.watch.GetState())
}

// AddSymbol handles POST /watchlist
func (h *Handler) AddSymbol(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symbol string `json:"symbol"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Symbol) == "" {
		respondError(w, http.StatusBadRequest, collector.ErrNoSymbol)
		return
	}

	added, err := h.watch.Add(req.Symbol)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	entry, _ := h.watch.Entry(req.Symbol)
	respondJSON(w, status, entry)
}

// RemoveSymbol handles DELETE /watchlist/{symbol}
func (h *Handler) RemoveSymbol(w http.ResponseWriter, r *http.Request) {
	if err := h.watch.Remove(mux.Vars(r)["symbol"]); err != nil {
		if errors.Is(err, watch.ErrUnknownSymbol) {
			respondError(w, http.StatusNotFound, err)
			return
		}
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func parseQuery(r *http.Request) (collector.Query, error) {
	v := r.URL.Query()
	q := collector.Query{
		Symbol:    mux.Vars(r)["symbol"],
		Timeframe: model.Timeframe(strings.ToLower(v.Get("timeframe"))),
	}
	switch q.Timeframe {
	case "", model.TimeframeDaily, model.TimeframeWeekly:
	default:
		return q, fmt.Errorf("unsupported timeframe %q", q.Timeframe)
	}

	if s := v.Get("period"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return q, fmt.Errorf("invalid period %q", s)
		}
		q.Period = n
	}

	var err error
	if q.From, err = parseDate(v.Get("from")); err != nil {
		return q, fmt.Errorf("invalid from: %w", err)
	}
	if q.To, err = parseDate(v.Get("to")); err != nil {
		return q, fmt.Errorf("invalid to: %w", err)
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return q, errors.New("from is after to")
	}
	return q, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return dateparse.ParseIn(s, time.UTC)
}

// checkSeries rejects series the engine cannot compute on: out of order or
// duplicate timestamps, and closes or close-to-close moves outside float64.
func checkSeries(points []model.PricePoint) error {
	for i, p := range points {
		if math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
			return fmt.Errorf("close at index %d is not finite", i)
		}
		if i == 0 {
			continue
		}
		if !p.Time.After(points[i-1].Time) {
			return fmt.Errorf("points must be in strictly increasing time order (index %d)", i)
		}
		if d := p.Close - points[i-1].Close; math.IsInf(d, 0) {
			return fmt.Errorf("close change at index %d overflows", i)
		}
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		log.Errorf("encode response: %v", err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"failed to encode response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}
