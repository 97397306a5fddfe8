package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"nuclight.org/feeds-tg-bot/app/audit"
	"nuclight.org/feeds-tg-bot/app/feeds"
	"nuclight.org/feeds-tg-bot/app/handlers"
	"nuclight.org/feeds-tg-bot/app/router"
	"nuclight.org/feeds-tg-bot/app/storage"
	"nuclight.org/feeds-tg-bot/app/telegram"
	"nuclight.org/feeds-tg-bot/pkg/logger"
)

var opts struct {
	TelegramAPIToken string `long:"telegram-api-token" env:"TELEGRAM_API_TOKEN" required:"true" description:"telegram api token"`
	AuditCSV         string `long:"audit-csv" env:"AUDIT_CSV" default:"./logs/bot_log.csv" description:"path to the csv interaction log"`
	AuditRawUTF8     bool   `long:"audit-raw-utf8" env:"AUDIT_RAW_UTF8" description:"keep non-ascii characters in the interaction log"`
	DBPath           string `long:"db-path" env:"DB_PATH" description:"path to an sqlite database mirroring the interaction log, disabled if empty"`
	SentryDSN        string `long:"sentry-dsn" env:"SENTRY_DSN" description:"sentry dsn, error reporting is disabled if empty"`
	Debug            bool   `long:"debug" env:"DEBUG" description:"enable debug logging"`
}

var Revision = "dev"

func main() {
	// .env is optional and holds the secrets that are not tracked
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
		os.Exit(1)
	}

	_, err := flags.Parse(&opts)
	if err != nil {
		os.Exit(1)
	}

	log := logger.NewLogger(opts.Debug)
	log.Info("starting bot", "revision", Revision)

	if opts.SentryDSN != "" {
		err = sentry.Init(sentry.ClientOptions{
			Dsn:     opts.SentryDSN,
			Release: Revision,
		})
		if err != nil {
			log.Error("initializing sentry", "error", err)
			os.Exit(1)
		}
	}

	var closers []func() error
	exit := func(code int) {
		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				log.Error("closing resource", "error", err)
			}
		}
		sentry.Flush(2 * time.Second)
		os.Exit(code)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	csvLog, err := audit.NewCSVFile(opts.AuditCSV)
	if err != nil {
		log.Error("creating interaction log", "error", err)
		exit(1)
	}

	sinks := []audit.Sink{csvLog}

	if opts.DBPath != "" {
		db, err := storage.NewSQLite(ctx, opts.DBPath)
		if err != nil {
			log.Error("creating sqlite3 database", "error", err)
			exit(1)
		}
		closers = append(closers, db.Close)
		sinks = append(sinks, db)
	}

	auditLog := &audit.Logger{
		Log:     log,
		Sinks:   sinks,
		RawUTF8: opts.AuditRawUTF8,
	}

	bot := &telegram.Client{
		Log:      log,
		APIToken: opts.TelegramAPIToken,
	}

	err = bot.Connect(ctx)
	if err != nil {
		log.Error("connecting to telegram", "error", err)
		exit(1)
	}

	r := router.New(auditLog.Middleware)
	h := &handlers.Handlers{
		Log:    log,
		Sender: bot,
		Feeds:  feeds.NewClient(nil),
	}
	h.Register(r)
	bot.Handler = r

	log.Info(
		"bot is ready",
		"username", "@"+bot.Username(),
		"audit_csv", csvLog.Path,
		"audit_db", opts.DBPath,
	)

	auditLog.RecordStart(ctx)

	runErr := make(chan error, 1)
	go func() {
		runErr <- bot.Run(ctx)
	}()

	// a handler still running is not waited for
	select {
	case <-ctx.Done():
		log.Info("stopping bot")
		exit(0)
	case err = <-runErr:
		log.Error("polling updates", "error", err)
		exit(1)
	}
}
