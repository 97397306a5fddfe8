package feeds

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	weatherLatitude  = "53.9"
	weatherLongitude = "27.5667"
	weatherTimezone  = "Europe/Minsk"
	weatherDays      = 7
)

const unknownWeather = "Неизвестная погода"

var weatherCodes = map[int]string{
	0:  "Ясно",
	1:  "Преимущественно ясно",
	2:  "Переменная облачность",
	3:  "Пасмурно",
	45: "Туман",
	48: "Инейный туман",
	51: "Легкая морось",
	53: "Умеренная морось",
	55: "Сильная морось",
	61: "Небольшой дождь",
	63: "Умеренный дождь",
	65: "Сильный дождь",
	80: "Ливень",
	81: "Сильный ливень",
	82: "Очень сильный ливень",
	95: "Гроза",
	96: "Гроза с градом",
	99: "Сильная гроза с градом",
}

// DescribeWeather maps a WMO weather code to its description.
func DescribeWeather(code int) string {
	if desc, ok := weatherCodes[code]; ok {
		return desc
	}

	return unknownWeather
}

type forecastResponse struct {
	Daily *dailyForecast `json:"daily"`
}

type dailyForecast struct {
	Time           []string   `json:"time"`
	TemperatureMax []*float64 `json:"temperature_2m_max"`
	TemperatureMin []*float64 `json:"temperature_2m_min"`
	WeatherCode    []*int     `json:"weathercode"`
}

var errNoDaily = errors.New("no daily forecast in response")

// Weather returns the 7-day forecast for Minsk.
func (c *Client) Weather(ctx context.Context) (string, bool) {
	query := url.Values{}
	query.Set("latitude", weatherLatitude)
	query.Set("longitude", weatherLongitude)
	query.Set("hourly", "temperature_2m,weathercode")
	query.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min")
	query.Set("timezone", weatherTimezone)
	query.Set("forecast_days", fmt.Sprint(weatherDays))

	var res forecastResponse
	if err := c.getJSON(ctx, c.WeatherURL, query, &res); err != nil {
		return "Ошибка получения данных о погоде: " + err.Error(), false
	}

	report, err := formatWeather(res.Daily)
	if errors.Is(err, errNoDaily) {
		return "Ошибка получения данных о погоде", false
	}
	if err != nil {
		return "Ошибка получения данных о погоде: " + err.Error(), false
	}

	return report, true
}

func formatWeather(daily *dailyForecast) (string, error) {
	if daily == nil {
		return "", errNoDaily
	}

	if daily.Time == nil {
		return "", errors.New("no dates in daily forecast")
	}

	var sb strings.Builder
	sb.WriteString("Погода в Минске на неделю:\n\n")

	days := min(weatherDays, len(daily.Time))
	for i := 0; i < days; i++ {
		day, err := time.Parse(time.DateOnly, daily.Time[i])
		if err != nil {
			return "", fmt.Errorf("parsing date %q: %w", daily.Time[i], err)
		}

		if i >= len(daily.TemperatureMax) || i >= len(daily.TemperatureMin) || i >= len(daily.WeatherCode) {
			return "", fmt.Errorf("forecast arrays are shorter than dates at index %d", i)
		}

		tMax, tMin, code := daily.TemperatureMax[i], daily.TemperatureMin[i], daily.WeatherCode[i]
		if tMax == nil || tMin == nil || code == nil {
			return "", fmt.Errorf("missing forecast value for %s", daily.Time[i])
		}

		fmt.Fprintf(&sb, "Дата: %s:\n", day.Format("02.01.2006"))
		fmt.Fprintf(&sb, "   Температура: %.0fC - %.0fC\n", *tMin, *tMax)
		fmt.Fprintf(&sb, "   %s\n\n", DescribeWeather(*code))
	}

	return sb.String(), nil
}
