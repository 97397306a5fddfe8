// Package audit records every handled message as one row of an append-only
// log. The Logger is applied to handlers as router middleware.
package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"nuclight.org/feeds-tg-bot/app/router"
	e "nuclight.org/feeds-tg-bot/pkg/entities"
	"nuclight.org/feeds-tg-bot/pkg/logger"
)

type Sink interface {
	Write(ctx context.Context, row Row) error
}

type Logger struct {
	// Log is the operator console
	Log logger.Logger

	// Sinks receive every row in order; the first one is the primary log
	Sinks []Sink

	// RawUTF8 keeps non-ASCII characters in rows
	RawUTF8 bool

	// Now defaults to time.Now
	Now func() time.Time
}

// Middleware wraps a handler so that each call it completes is recorded.
// A handler error skips the row and is returned unchanged.
func (l *Logger) Middleware(next router.HandlerFunc) router.HandlerFunc {
	return func(ctx context.Context, msg e.Message) (e.Answer, error) {
		row := NewRow(l.now())
		row.UserID = msg.Sender.ID
		row.Nickname = msg.Sender.DisplayName()
		row.Motion, row.API = Classify(msg)

		ans, err := next(ctx, msg)
		if err != nil {
			return ans, err
		}

		row.Answer = AnswerText(row.Motion, ans)
		l.Record(ctx, row)

		return ans, nil
	}
}

// RecordStart writes the synthetic row marking the process start.
func (l *Logger) RecordStart(ctx context.Context) {
	row := NewRow(l.now())
	row.Nickname = "SYSTEM"
	row.Motion = e.MotionSystem
	row.API = "BOT STARTED"
	row.Answer = "Бот запущен"

	l.Record(ctx, row)
}

// Record sanitizes a row and appends it to every sink. Failures are reported
// and never returned.
func (l *Logger) Record(ctx context.Context, row Row) {
	row = row.Sanitized(l.RawUTF8)

	for _, sink := range l.Sinks {
		if err := sink.Write(ctx, row); err != nil {
			err = fmt.Errorf("writing audit row: %w", err)
			l.Log.Error("audit log failure", "sink", fmt.Sprintf("%T", sink), "error", err)
			sentry.CaptureException(err)
		}
	}

	l.Log.Debug("audit row written", "user_id", row.UserID, "motion", row.Motion, "api", row.API)
}

func (l *Logger) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}

	return time.Now()
}

// Classify tells how a message was produced and what goes to the API column.
func Classify(msg e.Message) (e.Motion, string) {
	switch {
	case msg.IsButton():
		return e.MotionButtonClick, strings.TrimSpace(msg.Text)
	case strings.HasPrefix(msg.Text, "/"):
		return e.MotionCommand, none
	default:
		return e.MotionKeyboardTyping, none
	}
}

// AnswerText derives the logged answer from a handler result.
func AnswerText(motion e.Motion, ans e.Answer) string {
	if motion == e.MotionButtonClick {
		switch ans.Kind {
		case e.AnswerKindReport, e.AnswerKindText:
			return ans.Text
		default:
			return "No response"
		}
	}

	if ans.Kind == e.AnswerKindText {
		return ans.Text
	}

	return none
}
