package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v3"

	"github.com/pershin-daniil/BoardMeetings/internal/calendar"
	"github.com/pershin-daniil/BoardMeetings/internal/rest"
	"github.com/pershin-daniil/BoardMeetings/internal/telegram"
	"github.com/pershin-daniil/BoardMeetings/pkg/logger"
	"github.com/pershin-daniil/BoardMeetings/pkg/memstore"
	"github.com/pershin-daniil/BoardMeetings/pkg/notifier"
	"github.com/pershin-daniil/BoardMeetings/pkg/pgstore"
	"github.com/pershin-daniil/BoardMeetings/pkg/service"
	"github.com/pershin-daniil/BoardMeetings/pkg/worker"
)

const version = "0.1.0"

func main() {
	_ = godotenv.Load()
	log := logger.New()

	var (
		address        = lookupEnv("ADDRESS", ":8080")
		pgDSN          = os.Getenv("PG_DSN")
		tgToken        = os.Getenv("TG_TOKEN")
		tgChatID       = os.Getenv("TG_CHAT_ID")
		credentials    = os.Getenv("GOOGLE_CREDENTIALS")
		calendarID     = lookupEnv("GOOGLE_CALENDAR_ID", "primary")
		timezone       = lookupEnv("TIMEZONE", "Europe/Oslo")
		reminderLead   = lookupDuration(log, "REMINDER_LEAD", time.Hour)
		reminderPeriod = lookupDuration(log, "REMINDER_INTERVAL", time.Minute)
	)

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := newStore(ctx, log, pgDSN, time.Now().In(loc))
	if err != nil {
		log.Panic(err)
	}

	notifiers := notifier.Fanout{notifier.NewDummyNotifier(log)}
	opts := []service.Option{service.WithLocation(loc)}
	var tgBot *tele.Bot
	if tgToken != "" {
		if tgBot, err = telegram.NewBot(tgToken); err != nil {
			log.Panic(err)
		}
		if tgChatID != "" {
			chatID, err := strconv.ParseInt(tgChatID, 10, 64)
			if err != nil {
				log.Panicf("invalid TG_CHAT_ID: %v", err)
			}
			notifiers = append(notifiers, telegram.NewNotifier(log, tgBot, chatID))
		}
	}
	if credentials != "" {
		cal, err := calendar.New(ctx, log, credentials, calendarID)
		if err != nil {
			log.Panic(err)
		}
		opts = append(opts, service.WithPublisher(cal))
	}

	app := service.NewMeetingService(log, store, notifiers, opts...)
	server := rest.NewServer(log, app, address, version)
	reminders := worker.New(log, store, notifiers, reminderLead, reminderPeriod)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
		<-sigCh
		log.Info("Received signal, shutting down...")
		cancel()
	}()

	var wg sync.WaitGroup
	if tgBot != nil {
		bot := telegram.New(log, tgBot, app)
		wg.Add(1)
		go func() {
			defer wg.Done()
			bot.Run(ctx)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := reminders.Run(ctx); err != nil {
			log.Warnf("reminder worker stopped: %v", err)
		}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.Run(ctx); err != nil {
			log.Panic(err)
		}
	}()
	wg.Wait()
	log.Info("Server stopped")
}

// newStore uses Postgres when a DSN is given and the in-memory sample data otherwise.
func newStore(ctx context.Context, log *logrus.Logger, dsn string, now time.Time) (service.Store, error) {
	if dsn == "" {
		log.Info("PG_DSN not set, using in-memory sample meetings")
		return memstore.New(log, memstore.SampleMeetings(now), memstore.SampleParticipants()), nil
	}
	store, err := pgstore.NewStore(ctx, log, dsn)
	if err != nil {
		return nil, err
	}
	if err = store.Migrate(migrate.Up); err != nil {
		return nil, err
	}
	if seedSample(lookupEnv("SEED_SAMPLE", "")) {
		if err = store.Seed(ctx, memstore.SampleMeetings(now), memstore.SampleParticipants()); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// seedSample accepts any strconv.ParseBool spelling, so both "1" and "true" seed.
func seedSample(value string) bool {
	seed, err := strconv.ParseBool(value)
	return err == nil && seed
}

func lookupEnv(key, defaultValue string) string {
	result := os.Getenv(key)
	if result == "" {
		return defaultValue
	}
	return result
}

func lookupDuration(log *logrus.Logger, key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Warnf("invalid %s %q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
