package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/conso-maestro/conso-sync/config"
	"github.com/conso-maestro/conso-sync/internal/expiration"
	"github.com/conso-maestro/conso-sync/internal/fakeremote"
	invRepoPkg "github.com/conso-maestro/conso-sync/internal/inventory/repository"
	invUCPkg "github.com/conso-maestro/conso-sync/internal/inventory/usecase"
	"github.com/conso-maestro/conso-sync/internal/logger"
	recallRepoPkg "github.com/conso-maestro/conso-sync/internal/recall/repository"
	recallUCPkg "github.com/conso-maestro/conso-sync/internal/recall/usecase"
	"github.com/conso-maestro/conso-sync/internal/remote"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const usage = `usage: conso [flags] <command> [args]

commands:
  list [-location Frigo|Congelo|Placard]   show the inventory with expiration urgency
  advance <item-id>                        move an item to the next storage place
  delete <item-id>                         remove an item
  recalls                                  check product recalls

flags:
`

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	fs := flag.NewFlagSet("conso", flag.ExitOnError)
	userID := fs.String("user", cfg.Server.UserID, "user id (CONSO_USER_ID)")
	server := fs.String("server", "", "inventory service base URL (REMOTE_BASE_URL)")
	recallServer := fs.String("recall-server", "", "recall service base URL (RECALL_BASE_URL)")
	demo := fs.Bool("demo", false, "run against an in-process demo service")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	if *server != "" {
		cfg.Remote.BaseURL = strings.TrimRight(*server, "/")
		if *recallServer == "" {
			cfg.Remote.RecallBaseURL = cfg.Remote.BaseURL
		}
	}
	if *recallServer != "" {
		cfg.Remote.RecallBaseURL = strings.TrimRight(*recallServer, "/")
	}

	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv == "development",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	if *demo {
		demoServer := fakeremote.New()
		baseURL := demoServer.Start()
		defer demoServer.Close()
		if *userID == "" {
			*userID = demoUserID
		}
		seedDemo(demoServer, *userID, expiration.SystemClock{}.Now())
		cfg.Remote.BaseURL = baseURL
		cfg.Remote.RecallBaseURL = baseURL
		appLogger.Info("Demo service started", zap.String("url", baseURL))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{}
	invClient := remote.NewClient(remote.Config{
		BaseURL:   cfg.Remote.BaseURL,
		Timeout:   cfg.Remote.Timeout(),
		UserAgent: cfg.Remote.UserAgent,
	}, httpClient, appLogger)
	recallClient := remote.NewClient(remote.Config{
		BaseURL:   cfg.Remote.RecallBaseURL,
		Timeout:   cfg.Remote.Timeout(),
		UserAgent: cfg.Remote.UserAgent,
	}, httpClient, appLogger)

	a := &app{
		inventory: invUCPkg.NewInventoryUseCase(
			invRepoPkg.NewHTTPRepository(invClient),
			expiration.SystemClock{},
			appLogger,
			invUCPkg.Options{RefreshAfterDelete: cfg.Sync.RefreshAfterDelete},
		),
		recalls: recallUCPkg.NewRecallUseCase(recallRepoPkg.NewHTTPRepository(recallClient), appLogger),
		out:     os.Stdout,
		userID:  *userID,
	}

	if err := a.run(ctx, fs.Args()); err != nil {
		if errors.Is(err, errUsage) {
			fs.Usage()
			os.Exit(2)
		}
		appLogger.Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, failureMessage(err))
		os.Exit(1)
	}
}
