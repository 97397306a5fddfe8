package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/getsentry/sentry-go"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	e "nuclight.org/feeds-tg-bot/pkg/entities"
	"nuclight.org/feeds-tg-bot/pkg/logger"
)

const pollTimeout = 30

var errUpdatesClosed = errors.New("updates channel closed")

type MessageHandler interface {
	HandleMessage(ctx context.Context, msg e.Message) (e.Answer, error)
}

// BotAPI is the part of *tgbotapi.BotAPI the client uses.
type BotAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Client struct {
	Log      logger.Logger
	APIToken string
	Handler  MessageHandler

	bot      BotAPI
	username string
}

// Connect creates the bot api, which checks the token against the server.
func (c *Client) Connect(_ context.Context) error {
	bot, err := tgbotapi.NewBotAPI(c.APIToken)
	if err != nil {
		return fmt.Errorf("creating bot api: %w", err)
	}

	c.bot = bot
	c.username = bot.Self.UserName
	c.Log.Info("bot api created", "username", c.username)

	return nil
}

func (c *Client) Username() string {
	return c.username
}

// Run receives updates and handles them one at a time until ctx is done.
func (c *Client) Run(ctx context.Context) error {
	if c.bot == nil {
		return fmt.Errorf("client is not connected")
	}

	updatesConf := tgbotapi.NewUpdate(0)
	updatesConf.Timeout = pollTimeout

	updatesChan := c.bot.GetUpdatesChan(updatesConf)
	defer c.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updatesChan:
			if !ok {
				return errUpdatesClosed
			}

			err := c.handleUpdate(ctx, update)
			if err != nil {
				c.Log.Error("handling update", "tg_update_id", update.UpdateID, "error", err)
			}
		}
	}
}

// Send sends a text message, with the reply keyboard when withKeyboard is set.
func (c *Client) Send(_ context.Context, chatID int64, text string, withKeyboard bool) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if withKeyboard {
		msg.ReplyMarkup = replyKeyboard()
	}

	_, err := c.bot.Send(msg)
	return err
}

func (c *Client) handleUpdate(ctx context.Context, update tgbotapi.Update) (err error) {
	log := c.Log.With("tg_update_id", update.UpdateID)

	defer func() {
		if r := recover(); r != nil {
			log.Error("panic", "error", r)
			sentry.CurrentHub().Recover(r)
			err = fmt.Errorf("recovered panic: %v", r)
		}
	}()

	if update.Message == nil {
		log.Debug("message is nil")
		return nil
	}

	if update.Message.From == nil {
		log.Warn("message from is nil")
		return nil
	}

	if update.Message.Chat == nil {
		log.Warn("message chat is nil")
		return nil
	}

	if update.Message.Text == "" {
		log.Debug("message has no text")
		return nil
	}

	log.Info(
		"new message",
		"tg_message_id", update.Message.MessageID,
		"tg_user_id", update.Message.From.ID,
		"tg_user_nick", update.Message.From.UserName,
		"tg_user_first_name", update.Message.From.FirstName,
		"tg_chat_id", update.Message.Chat.ID,
		"text", update.Message.Text,
	)

	msg := e.Message{
		Sender: e.User{
			ID:        takeUserID(update.Message.From),
			UserName:  update.Message.From.UserName,
			FirstName: update.Message.From.FirstName,
		},
		ChatID:  update.Message.Chat.ID,
		Text:    update.Message.Text,
		Command: update.Message.Command(),
	}

	ans, err := c.Handler.HandleMessage(ctx, msg)
	if err != nil {
		return fmt.Errorf("handling message: %w", err)
	}

	log.Info("message handled", "answer_kind", ans.Kind, "ok", ans.OK)

	return nil
}

func replyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(e.KeyboardLabels))
	for _, label := range e.KeyboardLabels {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(label)))
	}

	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true

	return kb
}

func takeUserID(user *tgbotapi.User) string {
	return strconv.FormatInt(user.ID, 10)
}
