package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type currency struct {
	Code string
	Name string
}

var currencies = []currency{
	{Code: "USD", Name: "Доллар США"},
	{Code: "EUR", Name: "Евро"},
	{Code: "RUB", Name: "Российский рубль"},
	{Code: "CNY", Name: "Китайский юань"},
	{Code: "KZT", Name: "Казахстанский тенге"},
}

const rateUnavailable = "Данные временно недоступны"

type rateResponse struct {
	OfficialRate *float64 `json:"Cur_OfficialRate"`
	Scale        *int     `json:"Cur_Scale"`
}

// ExchangeRates returns the official National Bank rates of the fixed
// currency list. A currency whose endpoint does not answer 200 gets an
// unavailable line, the rest of the batch is unaffected. A failed call or an
// undecodable body aborts the whole batch.
func (c *Client) ExchangeRates(ctx context.Context) (string, bool) {
	report, err := c.exchangeRates(ctx)
	if err != nil {
		return "Ошибка получения курсов валют: " + err.Error(), false
	}

	return report, true
}

func (c *Client) exchangeRates(ctx context.Context) (string, error) {
	var sb strings.Builder
	sb.WriteString("Курсы валют НБРБ:\n\n")

	query := url.Values{}
	query.Set("parammode", "2")

	for _, cur := range currencies {
		code, body, err := c.get(ctx, c.RatesURL+"/"+url.PathEscape(cur.Code), query)
		if err != nil {
			return "", fmt.Errorf("getting %s rate: %w", cur.Code, err)
		}

		fmt.Fprintf(&sb, "%s (%s):\n", cur.Name, cur.Code)

		if code != http.StatusOK {
			fmt.Fprintf(&sb, "   %s\n\n", rateUnavailable)
			continue
		}

		var rate rateResponse
		if err = json.Unmarshal(body, &rate); err != nil {
			return "", fmt.Errorf("decoding %s rate: %w", cur.Code, err)
		}

		if rate.OfficialRate == nil || rate.Scale == nil {
			return "", fmt.Errorf("incomplete %s rate in response", cur.Code)
		}

		fmt.Fprintf(&sb, "   %d %s = %.4f BYN\n\n", *rate.Scale, cur.Code, *rate.OfficialRate)
	}

	sb.WriteString("Источник: Национальный банк Республики Беларусь")

	return sb.String(), nil
}
