// Package feeds fetches the weather forecast, official exchange rates and
// cryptocurrency prices and renders them as ready-to-send report texts.
// Fetchers never return errors: a failed fetch yields an error text and false.
package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// RequestTimeout bounds every outgoing call. There are no retries.
const RequestTimeout = 10 * time.Second

const (
	DefaultWeatherURL = "https://api.open-meteo.com/v1/forecast"
	DefaultRatesURL   = "https://www.nbrb.by/api/exrates/rates"
	DefaultCryptoURL  = "https://api.coingecko.com/api/v3/simple/price"
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

type Client struct {
	httpClient HTTPClient

	// WeatherURL, RatesURL and CryptoURL override the public endpoints
	WeatherURL string
	RatesURL   string
	CryptoURL  string
}

func NewClient(httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: RequestTimeout}
	}

	return &Client{
		httpClient: httpClient,
		WeatherURL: DefaultWeatherURL,
		RatesURL:   DefaultRatesURL,
		CryptoURL:  DefaultCryptoURL,
	}
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.code)
}

// get performs a GET and returns the status code with the body. A non-nil
// error means the call itself failed.
func (c *Client) get(ctx context.Context, rawURL string, query url.Values) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("doing request: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, fmt.Errorf("reading response body: %w", err)
	}

	return res.StatusCode, body, nil
}

// getJSON is get plus a decode of a 2xx body into result.
func (c *Client) getJSON(ctx context.Context, rawURL string, query url.Values, result any) error {
	code, body, err := c.get(ctx, rawURL, query)
	if err != nil {
		return err
	}

	if code < 200 || code > 299 {
		return &statusError{code: code}
	}

	if err = json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
