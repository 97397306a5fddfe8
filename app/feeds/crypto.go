package feeds

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"
)

type coin struct {
	ID   string
	Name string
}

var coins = []coin{
	{ID: "bitcoin", Name: "Bitcoin"},
	{ID: "ethereum", Name: "Ethereum"},
	{ID: "binancecoin", Name: "Binance Coin"},
	{ID: "cardano", Name: "Cardano"},
	{ID: "solana", Name: "Solana"},
}

type coinQuote struct {
	USD       *float64 `json:"usd"`
	Change24h *float64 `json:"usd_24h_change"`
}

// CryptoPrices returns USD prices with the 24h change of the fixed coin list.
// Coins missing from the response are skipped, as are ids not in the list.
func (c *Client) CryptoPrices(ctx context.Context) (string, bool) {
	ids := make([]string, 0, len(coins))
	for _, cn := range coins {
		ids = append(ids, cn.ID)
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("vs_currencies", "usd")
	query.Set("include_24hr_change", "true")

	var quotes map[string]coinQuote
	if err := c.getJSON(ctx, c.CryptoURL, query, &quotes); err != nil {
		return "Ошибка получения курсов криптовалют: " + err.Error(), false
	}

	report, err := formatCrypto(quotes)
	if err != nil {
		return "Ошибка получения курсов криптовалют: " + err.Error(), false
	}

	return report, true
}

func formatCrypto(quotes map[string]coinQuote) (string, error) {
	var sb strings.Builder
	sb.WriteString("Курсы криптовалют (USD):\n\n")

	for _, cn := range coins {
		quote, ok := quotes[cn.ID]
		if !ok {
			continue
		}

		if quote.USD == nil || quote.Change24h == nil {
			return "", fmt.Errorf("incomplete quote for %s", cn.ID)
		}

		fmt.Fprintf(&sb, "%s:\n", cn.Name)
		fmt.Fprintf(&sb, "   Цена: $%s\n", humanize.FormatFloat("#,###.##", *quote.USD))
		fmt.Fprintf(&sb, "   Изменение: %s %+.1f%% (24ч)\n\n", changeGlyph(*quote.Change24h), *quote.Change24h)
	}

	return sb.String(), nil
}

// changeGlyph is up only for a strictly positive change.
func changeGlyph(change float64) string {
	if change > 0 {
		return "▲"
	}

	return "▼"
}
