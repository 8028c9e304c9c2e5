package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"finsight/internal/model"
)

// RESTFetcher implements Fetcher against a configurable bars/fundamentals
// REST API, for deployments that front market data with their own gateway.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string) *RESTFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape of one daily bar.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (f *RESTFetcher) FetchDailyBars(symbol string, days int) ([]model.PricePoint, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&limit=%d",
		f.BaseURL, url.QueryEscape(symbol), days)

	body, err := f.get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}

	var bars []restBar
	if err := json.Unmarshal(body, &bars); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}

	points := make([]model.PricePoint, 0, len(bars))
	for _, b := range bars {
		points = append(points, model.PricePoint{
			Date:   tradingDay(b.Timestamp),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	return points, nil
}

func (f *RESTFetcher) FetchFundamentals(symbol string) (*model.FundamentalSnapshot, error) {
	endpoint := fmt.Sprintf("%s/api/v1/fundamentals?symbol=%s",
		f.BaseURL, url.QueryEscape(symbol))

	body, err := f.get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch fundamentals: %w", err)
	}

	var snap model.FundamentalSnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("decode fundamentals: %w", err)
	}
	if snap.Date.IsZero() {
		now := time.Now().UTC()
		snap.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	return &snap, nil
}

func (f *RESTFetcher) get(endpoint string) ([]byte, error) {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
