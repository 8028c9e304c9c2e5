package server

import (
	"net/http"
	"time"

	"finsight/internal/analysis"
	"finsight/internal/indicator"
	"finsight/internal/metrics"
	"finsight/internal/risk"
)

const (
	smaFastPeriod = 50
	smaSlowPeriod = 200
)

func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	prices := s.loadSeries(w, r, 0)
	if prices == nil {
		return
	}
	if err := prices.Validate(); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	ind := s.Cfg.Indicators

	sma50, err := indicator.SMA(prices, smaFastPeriod)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	sma200, err := indicator.SMA(prices, smaSlowPeriod)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	rsi, err := indicator.RSI(prices, ind.RSIPeriod)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	boll, err := indicator.Bollinger(prices, ind.BollingerPeriod, ind.BollingerMult)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	macd, err := indicator.MACD(prices, ind.MACDFast, ind.MACDSlow, ind.MACDSignal)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	crossovers := indicator.Crossovers(prices, sma50, sma200)

	writeJSON(w, http.StatusOK, map[string]any{
		"symbol": prices.Symbol,
		"dates":  prices.Dates(),
		"sma_50": seriesJSON(sma50),
		"sma_200": seriesJSON(sma200),
		"rsi": seriesJSON(rsi),
		"bollinger": map[string]any{
			"middle": seriesJSON(boll.Middle),
			"upper":  seriesJSON(boll.Upper),
			"lower":  seriesJSON(boll.Lower),
		},
		"macd": map[string]any{
			"macd":      seriesJSON(macd.MACD),
			"signal":    seriesJSON(macd.Signal),
			"histogram": seriesJSON(macd.Histogram),
		},
		"crossovers": crossovers,
	})
}

func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	prices := s.loadSeries(w, r, 0)
	if prices == nil {
		return
	}
	if err := prices.Validate(); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	ind := s.Cfg.Indicators

	vol, err := risk.Volatility(prices, ind.VolatilityWindow, true)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	path := risk.Drawdowns(prices)
	maxDD := risk.MaxDrawdown(prices)
	rng, err := risk.FiftyTwoWeekRange(prices, ind.RangeWindow)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := map[string]any{
		"symbol":       prices.Symbol,
		"dates":        prices.Dates(),
		"returns":      seriesJSON(risk.SimpleReturns(prices)),
		"volatility":   seriesJSON(vol),
		"drawdown":     seriesJSON(path.Drawdown),
		"peak":         seriesJSON(path.Peak),
		"max_drawdown": maxDD,
		"range_52w":    rng,
	}

	benchmark := s.Cfg.DataSource.BenchmarkSymbol
	if benchmark != "" && benchmark != prices.Symbol {
		bench, err := s.Store.PriceSeries(benchmark, 0)
		if err == nil && bench.Len() > 0 {
			beta, err := risk.Beta(prices, bench, ind.BetaLookback)
			if err == nil {
				resp["beta"] = beta
				resp["beta_benchmark"] = benchmark
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	prices := s.loadSeries(w, r, 0)
	if prices == nil {
		return
	}
	fund, err := s.Store.LatestFundamentals(prices.Symbol)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	start := time.Now()
	result, err := analysis.Analyze(prices, fund)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, map[string]any{
		"symbol":   prices.Symbol,
		"analysis": result,
	})
}
