package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/camuig/clac/internal/ai"
	"github.com/camuig/clac/internal/calculator"
	"github.com/camuig/clac/internal/format"
	"github.com/camuig/clac/internal/stocks"
	"github.com/camuig/clac/internal/storage"
	"github.com/camuig/clac/internal/telegram"
	"github.com/camuig/clac/internal/upbit"
	"github.com/camuig/clac/internal/yahoo"
)

const (
	marketsCacheControl = "public, s-maxage=3600, stale-while-revalidate=86400"
	maxBatchSymbols     = 20
)

type calcResponse struct {
	Result    any    `json:"result"`
	HistoryID string `json:"historyId,omitempty"`
}

type profitResponse struct {
	calculator.ProfitResult
	Formatted profitFormatted `json:"formatted"`
}

type profitFormatted struct {
	TotalBuy   string `json:"totalBuy"`
	TotalSell  string `json:"totalSell"`
	Profit     string `json:"profit"`
	ProfitRate string `json:"profitRate"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *Server) handleAveragingDown(w http.ResponseWriter, r *http.Request) {
	var in calculator.AveragingDownInput
	if !s.decodeBody(w, r, &in) {
		return
	}

	res, err := calculator.AveragingDown(in)
	if err != nil {
		s.writeCalcError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, calcResponse{
		Result:    res,
		HistoryID: s.record(storage.KindAveragingDown, in, res),
	})
}

func (s *Server) handleTargetAverage(w http.ResponseWriter, r *http.Request) {
	var in calculator.TargetAverageInput
	if !s.decodeBody(w, r, &in) {
		return
	}

	res, err := calculator.TargetAverage(in)
	if err != nil {
		s.writeCalcError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, calcResponse{
		Result:    res,
		HistoryID: s.record(storage.KindTargetAverage, in, res),
	})
}

func (s *Server) handleProfit(w http.ResponseWriter, r *http.Request) {
	buy, sell, qty := profitParams(r)
	res := calculator.Profit(buy, sell, qty)

	s.writeJSON(w, http.StatusOK, profitResponse{
		ProfitResult: res,
		Formatted: profitFormatted{
			TotalBuy:   format.Currency(res.TotalBuy),
			TotalSell:  format.Currency(res.TotalSell),
			Profit:     format.Currency(res.Profit),
			ProfitRate: format.Percentage(res.ProfitRate),
		},
	})
}

func (s *Server) handleShareProfit(w http.ResponseWriter, r *http.Request) {
	buy, sell, qty := profitParams(r)
	res := calculator.Profit(buy, sell, qty)

	if err := s.notifier.ShareProfit(buy, sell, qty, res); err != nil {
		s.writeShareError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpbitTicker(w http.ResponseWriter, r *http.Request) {
	market := r.URL.Query().Get("market")
	if market == "" {
		s.writeError(w, http.StatusBadRequest, "Market parameter is required")
		return
	}

	ticker, err := s.upbit.Ticker(r.Context(), market)
	switch {
	case errors.Is(err, upbit.ErrInvalidMarket):
		s.writeError(w, http.StatusBadRequest, "Invalid market format")
		return
	case errors.Is(err, upbit.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "Ticker not found")
		return
	case err != nil:
		s.logger.Error("upbit ticker", "market", market, "error", err)
		s.writeError(w, http.StatusBadGateway, "Failed to fetch ticker")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]float64{"trade_price": ticker.TradePrice})
}

func (s *Server) handleUpbitMarkets(w http.ResponseWriter, r *http.Request) {
	markets, err := s.upbit.Markets(r.Context())
	if err != nil {
		s.logger.Error("upbit markets", "error", err)
		s.writeError(w, http.StatusBadGateway, "Failed to fetch markets")
		return
	}

	w.Header().Set("Cache-Control", marketsCacheControl)
	s.writeJSON(w, http.StatusOK, markets)
}

func (s *Server) handleStockPrice(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		s.writeError(w, http.StatusBadRequest, "Symbol parameter is required")
		return
	}

	quote, err := s.yahoo.Quote(r.Context(), symbol)
	if err != nil {
		s.writeQuoteError(w, symbol, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"price":    quote.Price,
		"currency": quote.Currency,
	})
}

func (s *Server) handleStockPrices(w http.ResponseWriter, r *http.Request) {
	var symbols []string
	for _, sym := range strings.Split(r.URL.Query().Get("symbols"), ",") {
		if sym = strings.TrimSpace(sym); sym != "" {
			symbols = append(symbols, sym)
		}
	}
	if len(symbols) == 0 {
		s.writeError(w, http.StatusBadRequest, "Symbols parameter is required")
		return
	}
	if len(symbols) > maxBatchSymbols {
		s.writeError(w, http.StatusBadRequest, "Too many symbols")
		return
	}

	quotes, err := s.yahoo.Quotes(r.Context(), symbols)
	if err != nil {
		s.writeQuoteError(w, strings.Join(symbols, ","), err)
		return
	}
	s.writeJSON(w, http.StatusOK, quotes)
}

func (s *Server) handleStockSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "Query parameter is required")
		return
	}

	results := s.catalog.Search(query, s.config.Stocks.SearchLimit)
	if results == nil {
		results = []stocks.Result{}
	}
	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.repo.ListHistory()
	if err != nil {
		s.logger.Error("list history", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to load history")
		return
	}
	if entries == nil {
		entries = []storage.HistoryEntry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.ClearHistory(); err != nil {
		s.logger.Error("clear history", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to clear history")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveHistory(w http.ResponseWriter, r *http.Request) {
	err := s.repo.RemoveHistory(chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "History entry not found")
		return
	case err != nil:
		s.logger.Error("remove history", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to remove history entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleShareHistory(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.loadEntry(w, r)
	if !ok {
		return
	}

	var err error
	switch entry.Kind {
	case storage.KindAveragingDown:
		var in calculator.AveragingDownInput
		var res calculator.AveragingDownResult
		if err = decodeEntry(entry, &in, &res); err == nil {
			err = s.notifier.ShareAveragingDown(in, res)
		}
	case storage.KindTargetAverage:
		var in calculator.TargetAverageInput
		var res calculator.TargetAverageResult
		if err = decodeEntry(entry, &in, &res); err == nil {
			err = s.notifier.ShareTargetAverage(in, res)
		}
	default:
		s.writeError(w, http.StatusUnprocessableEntity, "Unsupported history entry")
		return
	}

	if err != nil {
		s.writeShareError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExplainHistory(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.loadEntry(w, r)
	if !ok {
		return
	}

	text, err := s.advisor.Explain(r.Context(), entry)
	switch {
	case errors.Is(err, ai.ErrAdvisorDisabled):
		s.writeError(w, http.StatusServiceUnavailable, "Commentary is disabled")
		return
	case err != nil:
		s.logger.Error("explain history", "entry_id", entry.EntryID, "error", err)
		s.writeError(w, http.StatusBadGateway, "Failed to get commentary")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"explanation": text})
}

// record appends a successful calculation to the history. A storage failure
// is logged and the result is still returned to the caller.
func (s *Server) record(kind string, input, result any) string {
	entry, err := s.repo.AddHistory(kind, input, result)
	if err != nil {
		s.logger.Error("add history", "kind", kind, "error", err)
		return ""
	}
	return entry.EntryID
}

func (s *Server) loadEntry(w http.ResponseWriter, r *http.Request) (*storage.HistoryEntry, bool) {
	entry, err := s.repo.GetHistory(chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "History entry not found")
		return nil, false
	case err != nil:
		s.logger.Error("get history", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to load history entry")
		return nil, false
	}
	return entry, true
}

func decodeEntry(entry *storage.HistoryEntry, in, res any) error {
	if err := entry.DecodeInput(in); err != nil {
		return err
	}
	return entry.DecodeResult(res)
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// Helper methods

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode JSON response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) writeCalcError(w http.ResponseWriter, err error) {
	var verr *calculator.ValidationError
	if errors.As(err, &verr) {
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": verr.Message,
			"code":  string(verr.Kind),
		})
		return
	}
	s.logger.Error("calculation", "error", err)
	s.writeError(w, http.StatusInternalServerError, "Calculation failed")
}

func (s *Server) writeQuoteError(w http.ResponseWriter, symbol string, err error) {
	switch {
	case errors.Is(err, yahoo.ErrInvalidSymbol):
		s.writeError(w, http.StatusBadRequest, "Invalid symbol format")
	case errors.Is(err, yahoo.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "Quote not found")
	default:
		s.logger.Error("yahoo quote", "symbol", symbol, "error", err)
		s.writeError(w, http.StatusBadGateway, "Failed to fetch stock price")
	}
}

func (s *Server) writeShareError(w http.ResponseWriter, err error) {
	if errors.Is(err, telegram.ErrSharingDisabled) {
		s.writeError(w, http.StatusServiceUnavailable, "Sharing is disabled")
		return
	}
	s.writeError(w, http.StatusBadGateway, "Failed to share")
}
