package main

import (
	"BookingBridge/bot"
	"BookingBridge/impl/core"
	"BookingBridge/internal/config"
	"BookingBridge/internal/http-server/api"
	"BookingBridge/internal/lib/logger"
	"BookingBridge/internal/lib/sl"
	"BookingBridge/internal/service/mail"
	"BookingBridge/internal/service/notifier"
	"BookingBridge/internal/service/spreadsheet"
	"BookingBridge/internal/service/webhook"
	"context"
	"flag"
	"github.com/joho/godotenv"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const alertFlushTimeout = 5 * time.Second

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	notifyOnce := flag.Bool("notify-once", false, "send the last sheet row to the webhook and exit")
	testEmail := flag.String("test-email", "", "send a test email to this address and exit")
	checkMail := flag.Bool("check-mail", false, "verify mail permissions and exit")
	flag.Parse()

	// .env is optional; values there feed the env overrides of the config
	_ = godotenv.Load()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = bot.NewTgBot(conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelError)
			lg.With(
				slog.Int64("admin_id", conf.Telegram.AdminId),
			).Info("telegram alerts enabled")
		}
	}

	// pending telegram alerts are sent before the process ends
	exit := func(code int) {
		if tgBot != nil && !tgBot.Flush(alertFlushTimeout) {
			lg.Warn("telegram alerts not delivered before exit")
		}
		os.Exit(code)
	}
	defer func() {
		if tgBot != nil {
			tgBot.Flush(alertFlushTimeout)
		}
	}()

	lg.Info("starting bookingbridge", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := core.New(lg)
	handler.SetSenderName(conf.Mail.SenderName)

	mailService, err := mail.NewMailService(ctx, conf, lg)
	if err != nil {
		lg.With(
			slog.String("driver", conf.Mail.Driver),
			sl.Err(err),
		).Error("mail service")
	} else {
		handler.SetMailer(mailService)
		lg.With(
			slog.String("driver", conf.Mail.Driver),
			slog.String("from", conf.Mail.From),
		).Info("mail service initialized")
	}

	if *checkMail {
		if err = handler.CheckMail(ctx); err != nil {
			lg.Error("check mail", sl.Err(err))
			exit(1)
		}
		lg.Info("permissions setup successful")
		return
	}

	if *testEmail != "" {
		if err = handler.SendTestEmail(ctx, *testEmail); err != nil {
			lg.Error("test email", sl.Err(err))
			exit(1)
		}
		return
	}

	var watcher *notifier.Watcher
	sheetService, err := spreadsheet.NewSpreadsheetService(ctx, conf, lg)
	if err != nil {
		lg.Error("spreadsheet service", sl.Err(err))
	} else {
		lg.With(
			slog.String("spreadsheet", conf.Sheets.SpreadsheetID),
			slog.String("sheet", conf.Notifier.SheetName),
		).Info("spreadsheet service initialized")

		n := notifier.New(conf, sheetService, webhook.NewWebhookClient(conf, lg), lg)

		if *notifyOnce {
			res := n.Notify(ctx)
			lg.With(
				slog.String("outcome", string(res.Outcome)),
				slog.Int("row", res.Row),
				slog.Bool("marked", res.Marked),
			).Info("notify once")
			if res.Outcome == notifier.OutcomeFailed {
				exit(1)
			}
			return
		}

		if conf.Notifier.Enabled {
			watcher = notifier.NewWatcher(conf, n, lg)
			if err = watcher.Start(); err != nil {
				lg.Error("start watcher", sl.Err(err))
				watcher = nil
			}
		}
	}

	if *notifyOnce {
		lg.Error("notify once: spreadsheet not available")
		exit(1)
	}

	if watcher != nil {
		defer func() {
			<-watcher.Stop().Done()
		}()
	}

	if !conf.Listen.Enabled {
		<-ctx.Done()
		lg.Info("service stopped")
		return
	}

	// *** http server runs until it fails or a signal arrives ***
	go func() {
		err := api.New(conf, lg, handler)
		if err != nil {
			lg.Error("server start", sl.Err(err))
		}
		stop()
	}()

	<-ctx.Done()
	lg.Info("service stopped")
}
