package entities

const (
	ButtonWeather = "Погода на неделю"
	ButtonRates   = "Курсы валют НБРБ"
	ButtonCrypto  = "Криптовалюты"
	ButtonHelp    = "Помощь"
)

// KeyboardLabels is the fixed reply keyboard, one button per row, in display order.
var KeyboardLabels = []string{
	ButtonWeather,
	ButtonRates,
	ButtonCrypto,
	ButtonHelp,
}

func IsKeyboardLabel(text string) bool {
	for _, label := range KeyboardLabels {
		if text == label {
			return true
		}
	}

	return false
}
