package audit

import (
	"strings"
	"time"
	"unicode"

	e "nuclight.org/feeds-tg-bot/pkg/entities"
)

// Header is the column set of the audit log, in file order.
var Header = []string{"Unic ID", "@TG nick", "Motion", "API", "Date", "Time", "API answer"}

const none = "NONE"

type Row struct {
	UserID   string
	Nickname string
	Motion   e.Motion
	API      string
	Date     string
	Time     string
	Answer   string
}

func NewRow(at time.Time) Row {
	return Row{
		Date: at.Format(time.DateOnly),
		Time: at.Format(time.TimeOnly),
	}
}

func (r Row) Record() []string {
	return []string{r.UserID, r.Nickname, string(r.Motion), r.API, r.Date, r.Time, r.Answer}
}

// Sanitized strips characters that must not reach the log. In ASCII mode only
// printable ASCII survives, otherwise valid printable UTF-8 plus newlines and tabs.
func (r Row) Sanitized(rawUTF8 bool) Row {
	clean := cleanASCII
	if rawUTF8 {
		clean = cleanUTF8
	}

	return Row{
		UserID:   clean(r.UserID),
		Nickname: clean(r.Nickname),
		Motion:   e.Motion(clean(string(r.Motion))),
		API:      clean(r.API),
		Date:     r.Date,
		Time:     r.Time,
		Answer:   clean(r.Answer),
	}
}

func cleanASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return -1
		}
		return r
	}, s)
}

func cleanUTF8(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.ToValidUTF8(s, ""))
}
