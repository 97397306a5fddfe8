package feeds

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoPrices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "bitcoin,ethereum,binancecoin,cardano,solana", q.Get("ids"))
		assert.Equal(t, "usd", q.Get("vs_currencies"))
		assert.Equal(t, "true", q.Get("include_24hr_change"))

		_, _ = w.Write([]byte(`{
			"solana":{"usd":142.5,"usd_24h_change":0},
			"dogecoin":{"usd":0.1,"usd_24h_change":5},
			"bitcoin":{"usd":67123.456,"usd_24h_change":2.345},
			"cardano":{"usd":0.45,"usd_24h_change":-1.26}
		}`))
	})

	report, ok := c.CryptoPrices(context.Background())
	require.True(t, ok, report)

	want := "Курсы криптовалют (USD):\n\n" +
		"Bitcoin:\n   Цена: $67,123.46\n   Изменение: ▲ +2.3% (24ч)\n\n" +
		"Cardano:\n   Цена: $0.45\n   Изменение: ▼ -1.3% (24ч)\n\n" +
		"Solana:\n   Цена: $142.50\n   Изменение: ▼ +0.0% (24ч)\n\n"
	assert.Equal(t, want, report)
	assert.NotContains(t, report, "dogecoin")
}

func TestCryptoPricesErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	report, ok := c.CryptoPrices(context.Background())
	assert.False(t, ok)
	assert.True(t, strings.HasPrefix(report, "Ошибка получения курсов криптовалют: "), report)
}

func TestChangeGlyph(t *testing.T) {
	assert.Equal(t, "▲", changeGlyph(0.01))
	assert.Equal(t, "▼", changeGlyph(0))
	assert.Equal(t, "▼", changeGlyph(-3))
}
