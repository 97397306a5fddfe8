// Package handlers holds the bot replies: the /start and /help commands, the
// four keyboard buttons and a catch-all for anything else. Every reply carries
// the reply keyboard.
package handlers

import (
	"context"
	"fmt"

	"nuclight.org/feeds-tg-bot/app/router"
	e "nuclight.org/feeds-tg-bot/pkg/entities"
	"nuclight.org/feeds-tg-bot/pkg/logger"
)

const helpText = "Используйте кнопки для получения информации: Погода, Курсы валют, Криптовалюты"

type Sender interface {
	Send(ctx context.Context, chatID int64, text string, withKeyboard bool) error
}

type Feeds interface {
	Weather(ctx context.Context) (string, bool)
	ExchangeRates(ctx context.Context) (string, bool)
	CryptoPrices(ctx context.Context) (string, bool)
}

type Handlers struct {
	Log    logger.Logger
	Sender Sender
	Feeds  Feeds
}

// Register binds the handlers in match order: buttons, commands, catch-all.
func (h *Handlers) Register(r *router.Router) {
	r.Handle("weather", router.Text(e.ButtonWeather), h.feed("weather", h.Feeds.Weather))
	r.Handle("rates", router.Text(e.ButtonRates), h.feed("rates", h.Feeds.ExchangeRates))
	r.Handle("crypto", router.Text(e.ButtonCrypto), h.feed("crypto", h.Feeds.CryptoPrices))
	r.Handle("help_button", router.Text(e.ButtonHelp), h.HelpButton)
	r.Handle("start", router.Command("start"), h.Start)
	r.Handle("help", router.Command("help"), h.Help)
	r.Handle("unknown", router.Any(), h.Unknown)
}

func (h *Handlers) Start(ctx context.Context, msg e.Message) (e.Answer, error) {
	text := fmt.Sprintf("Привет, %s!\nЯ бот с полезной информацией! Выберите один из вариантов:", msg.Sender.FirstName)
	if err := h.reply(ctx, msg, text); err != nil {
		return e.Answer{}, err
	}

	return e.TextAnswer(text), nil
}

func (h *Handlers) Help(ctx context.Context, msg e.Message) (e.Answer, error) {
	if err := h.reply(ctx, msg, helpText); err != nil {
		return e.Answer{}, err
	}

	return e.TextAnswer(helpText), nil
}

func (h *Handlers) HelpButton(ctx context.Context, msg e.Message) (e.Answer, error) {
	if err := h.reply(ctx, msg, helpText); err != nil {
		return e.Answer{}, err
	}

	return e.ReportAnswer(helpText, true), nil
}

func (h *Handlers) Unknown(ctx context.Context, msg e.Message) (e.Answer, error) {
	text := fmt.Sprintf("Неизвестная команда: %s. Используйте кнопки или /help", msg.Text)
	if err := h.reply(ctx, msg, text); err != nil {
		return e.Answer{}, err
	}

	return e.TextAnswer(text), nil
}

func (h *Handlers) feed(name string, fetch func(context.Context) (string, bool)) router.HandlerFunc {
	return func(ctx context.Context, msg e.Message) (e.Answer, error) {
		report, ok := fetch(ctx)
		if !ok {
			h.Log.Warn("feed failed", "feed", name, "report", report)
		}

		if err := h.reply(ctx, msg, report); err != nil {
			return e.Answer{}, err
		}

		return e.ReportAnswer(report, ok), nil
	}
}

func (h *Handlers) reply(ctx context.Context, msg e.Message, text string) error {
	if err := h.Sender.Send(ctx, msg.ChatID, text, true); err != nil {
		return fmt.Errorf("sending reply: %w", err)
	}

	return nil
}
