package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	withdrawal "jumpa_withdrawal_back"
	"jumpa_withdrawal_back/internal/wallet"
	"jumpa_withdrawal_back/pkg/banks"
	"jumpa_withdrawal_back/pkg/cache"
	"jumpa_withdrawal_back/pkg/chain"
	"jumpa_withdrawal_back/pkg/handler"
	"jumpa_withdrawal_back/pkg/intent"
	"jumpa_withdrawal_back/pkg/metrics"
	"jumpa_withdrawal_back/pkg/notify"
	"jumpa_withdrawal_back/pkg/payout"
	"jumpa_withdrawal_back/pkg/paystack"
	"jumpa_withdrawal_back/pkg/rates"
	"jumpa_withdrawal_back/pkg/repository"
	"jumpa_withdrawal_back/pkg/service"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))
	logrus.Info("starting withdrawal service")
	if err := godotenv.Load(); err != nil {
		logrus.Infof("no .env file loaded: %s", err)
	}

	if err := InitConfig(); err != nil {
		logrus.Fatalf("read config.yaml: %s", err)
	}
	if lvl, err := logrus.ParseLevel(viper.GetString("log_level")); err == nil {
		logrus.SetLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewPostgresDB(dbConfig())
	if err != nil {
		logrus.Fatalf("connect database: %s", err)
	}
	defer db.Close()
	if viper.GetBool("db.migrate") {
		if err := repository.EnsureSchema(ctx, db); err != nil {
			logrus.Fatalf("apply schema: %s", err)
		}
	}
	repos := repository.NewRepository(db)

	keys, err := wallet.NewKeyring(os.Getenv("WALLET_ENCRYPTION_KEY"))
	if err != nil {
		logrus.Fatalf("wallet keyring: %s", err)
	}
	dispatcher, err := chain.NewDispatcherFromConfig(ctx, chainConfig(), keys)
	if err != nil {
		logrus.Fatalf("chain dispatcher: %s", err)
	}

	rateCfg, payoutCfg := ratesConfig(), payoutConfig()
	if rateCfg.URL == "" {
		logrus.Warn("PAYMENT_RATE_URL not set, every conversion will fail")
	}
	if payoutCfg.URL == "" {
		logrus.Warn("PAYMENT_WIDGET_URL not set, every payout will fail")
	}

	sessions := cache.NewMemoryStore(viper.GetDuration("session.ttl"))
	go sessions.RunSweeper(ctx, viper.GetDuration("session.sweep_every"))

	locks := cache.NewUserLocks()
	registry := metrics.New()
	withdrawals := service.NewWithdrawalService(service.Deps{
		Extractor:  intent.NewExtractor(intentConfig()),
		Banks:      banks.NewDefaultResolver(),
		Accounts:   paystack.NewValidator(paystackConfig()),
		Rates:      rates.NewConverter(rateCfg),
		Payouts:    payout.NewInitiator(payoutCfg),
		Dispatcher: dispatcher,
		Sessions:   sessions,
		Users:      repos.Users,
		Ledger:     repos.Ledger,
		Notifier:   notify.New(notifyConfig()),
		Metrics:    registry,
		Locks:      locks,
	})
	services := service.NewService(withdrawals, service.NewAccountService(repos.Users, keys, sessions, locks))

	if recs, err := services.Reconciliation.Undispatched(ctx); err != nil {
		logrus.WithError(err).Error("startup reconcile")
	} else if len(recs) > 0 {
		logrus.WithField("count", len(recs)).Warn("recorded payouts without a dispatch outcome")
	}

	handlers := handler.NewHandler(services, handler.Options{
		AllowOrigins: viper.GetStringSlice("http.allow_origins"),
		HMACSecret:   os.Getenv("BOT_HMAC_SECRET"),
		Metrics:      registry.Handler(),
	})

	srv := new(withdrawal.Server)
	go func() {
		port := envOr("PORT", "port")
		logrus.WithField("port", port).Info("http server listening")
		if err := srv.Run(port, handlers.InitRoute()); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("run http server: %s", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("http server shutdown: %s", err)
	}
}
