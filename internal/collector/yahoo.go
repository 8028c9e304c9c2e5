package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"finsight/internal/model"
)

// YahooFetcher implements Fetcher using the Yahoo Finance public chart API.
type YahooFetcher struct {
	Client *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (f *YahooFetcher) fetchChart(symbol, interval, rng string) ([]model.PricePoint, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=%s&range=%s",
		url.PathEscape(symbol), interval, rng)

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	points := make([]model.PricePoint, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		points = append(points, model.PricePoint{
			Date:   tradingDay(ts),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}

// tradingDay normalizes a bar timestamp to its UTC calendar day. Daily bars
// must carry date-only values so cross-series alignment can join on them.
func tradingDay(ts int64) time.Time {
	t := time.Unix(ts, 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (f *YahooFetcher) FetchDailyBars(symbol string, days int) ([]model.PricePoint, error) {
	rng := "2y"
	if days <= 30 {
		rng = "1mo"
	} else if days <= 90 {
		rng = "3mo"
	} else if days <= 180 {
		rng = "6mo"
	} else if days <= 365 {
		rng = "1y"
	}
	points, err := f.fetchChart(symbol, "1d", rng)
	if err != nil {
		return nil, err
	}
	if len(points) > days {
		points = points[len(points)-days:]
	}
	return points, nil
}

// yahooSummary is the subset of the quoteSummary response the fundamentals
// fetch needs.
type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				TrailingPE    yahooValue `json:"trailingPE"`
				ForwardPE     yahooValue `json:"forwardPE"`
				DividendYield yahooValue `json:"dividendYield"`
				DividendRate  yahooValue `json:"dividendRate"`
				PayoutRatio   yahooValue `json:"payoutRatio"`
				PriceToSales  yahooValue `json:"priceToSalesTrailing12Months"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				PegRatio    yahooValue `json:"pegRatio"`
				PriceToBook yahooValue `json:"priceToBook"`
				TrailingEPS yahooValue `json:"trailingEps"`
				ForwardEPS  yahooValue `json:"forwardEps"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				ProfitMargins    yahooValue `json:"profitMargins"`
				OperatingMargins yahooValue `json:"operatingMargins"`
				RevenueGrowth    yahooValue `json:"revenueGrowth"`
				EarningsGrowth   yahooValue `json:"earningsGrowth"`
			} `json:"financialData"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

type yahooValue struct {
	Raw *float64 `json:"raw"`
}

// FetchFundamentals fetches the current fundamental ratios for a symbol.
// Missing modules or fields come back as nil pointers, never as errors.
func (f *YahooFetcher) FetchFundamentals(symbol string) (*model.FundamentalSnapshot, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=summaryDetail,defaultKeyStatistics,financialData",
		url.PathEscape(symbol))

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fundamentals: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("yahoo fundamentals: status %d, body: %s", resp.StatusCode, string(body))
	}

	var summary yahooSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("yahoo fundamentals decode: %w", err)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo fundamentals: no data for %s", symbol)
	}

	r := summary.QuoteSummary.Result[0]
	now := time.Now().UTC()
	return &model.FundamentalSnapshot{
		Date:             time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		TrailingPE:       r.SummaryDetail.TrailingPE.Raw,
		ForwardPE:        r.SummaryDetail.ForwardPE.Raw,
		PEGRatio:         r.DefaultKeyStatistics.PegRatio.Raw,
		PriceToBook:      r.DefaultKeyStatistics.PriceToBook.Raw,
		PriceToSales:     r.SummaryDetail.PriceToSales.Raw,
		ProfitMargins:    r.FinancialData.ProfitMargins.Raw,
		OperatingMargins: r.FinancialData.OperatingMargins.Raw,
		RevenueGrowth:    r.FinancialData.RevenueGrowth.Raw,
		EarningsGrowth:   r.FinancialData.EarningsGrowth.Raw,
		TrailingEPS:      r.DefaultKeyStatistics.TrailingEPS.Raw,
		ForwardEPS:       r.DefaultKeyStatistics.ForwardEPS.Raw,
		DividendYield:    r.SummaryDetail.DividendYield.Raw,
		DividendRate:     r.SummaryDetail.DividendRate.Raw,
		PayoutRatio:      r.SummaryDetail.PayoutRatio.Raw,
	}, nil
}
