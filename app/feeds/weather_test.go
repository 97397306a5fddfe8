package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client())
	c.WeatherURL = srv.URL + "/v1/forecast"
	c.RatesURL = srv.URL + "/api/exrates/rates"
	c.CryptoURL = srv.URL + "/api/v3/simple/price"

	return c
}

func TestWeather(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "53.9", q.Get("latitude"))
		assert.Equal(t, "27.5667", q.Get("longitude"))
		assert.Equal(t, "Europe/Minsk", q.Get("timezone"))
		assert.Equal(t, "7", q.Get("forecast_days"))
		assert.Equal(t, "weathercode,temperature_2m_max,temperature_2m_min", q.Get("daily"))

		_, _ = w.Write([]byte(`{"daily":{
			"time":["2025-09-13","2025-09-14","2025-09-15"],
			"temperature_2m_max":[18.6,20.2,15.0],
			"temperature_2m_min":[9.4,11.5,7.2],
			"weathercode":[0,61,42]
		}}`))
	})

	report, ok := c.Weather(context.Background())
	require.True(t, ok, report)

	want := "Погода в Минске на неделю:\n\n" +
		"Дата: 13.09.2025:\n   Температура: 9C - 19C\n   Ясно\n\n" +
		"Дата: 14.09.2025:\n   Температура: 12C - 20C\n   Небольшой дождь\n\n" +
		"Дата: 15.09.2025:\n   Температура: 7C - 15C\n   Неизвестная погода\n\n"
	assert.Equal(t, want, report)
	assert.Equal(t, 3, strings.Count(report, "Дата:"))
}

func TestWeatherCapsAtSevenDays(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		dates := make([]string, 0, 8)
		vals := make([]string, 0, 8)
		for i := 1; i <= 8; i++ {
			dates = append(dates, `"2025-09-0`+string(rune('0'+i))+`"`)
			vals = append(vals, "1")
		}
		_, _ = w.Write([]byte(`{"daily":{"time":[` + strings.Join(dates, ",") +
			`],"temperature_2m_max":[` + strings.Join(vals, ",") +
			`],"temperature_2m_min":[` + strings.Join(vals, ",") +
			`],"weathercode":[` + strings.Join(vals, ",") + `]}}`))
	})

	report, ok := c.Weather(context.Background())
	require.True(t, ok, report)
	assert.Equal(t, 7, strings.Count(report, "Дата:"))
}

func TestWeatherErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"no daily", http.StatusOK, `{"hourly":{}}`, "Ошибка получения данных о погоде"},
		{"server error", http.StatusInternalServerError, `oops`, "Ошибка получения данных о погоде: unexpected status code: 500"},
		{"bad json", http.StatusOK, `{`, "Ошибка получения данных о погоде: decoding response"},
		{"short arrays", http.StatusOK, `{"daily":{"time":["2025-09-13"],"temperature_2m_max":[],"temperature_2m_min":[],"weathercode":[]}}`, "Ошибка получения данных о погоде: "},
		{"null value", http.StatusOK, `{"daily":{"time":["2025-09-13"],"temperature_2m_max":[null],"temperature_2m_min":[1],"weathercode":[1]}}`, "Ошибка получения данных о погоде: missing forecast value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			report, ok := c.Weather(context.Background())
			assert.False(t, ok)
			if tt.name == "no daily" {
				assert.Equal(t, tt.want, report)
				return
			}
			assert.True(t, strings.HasPrefix(report, tt.want), report)
		})
	}
}

func TestWeatherTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := NewClient(nil)
	c.WeatherURL = srv.URL

	report, ok := c.Weather(context.Background())
	assert.False(t, ok)
	assert.True(t, strings.HasPrefix(report, "Ошибка получения данных о погоде: doing request"), report)
}

func TestDescribeWeather(t *testing.T) {
	assert.Equal(t, "Пасмурно", DescribeWeather(3))
	assert.Equal(t, "Сильная гроза с градом", DescribeWeather(99))
	assert.Equal(t, "Неизвестная погода", DescribeWeather(4))
	assert.Equal(t, "Неизвестная погода", DescribeWeather(-1))
}
