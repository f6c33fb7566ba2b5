package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloud-wave-best-zizon/till-service/internal/domain"
	"github.com/cloud-wave-best-zizon/till-service/internal/events"
	"github.com/cloud-wave-best-zizon/till-service/internal/handler"
	"github.com/cloud-wave-best-zizon/till-service/internal/repository"
	"github.com/cloud-wave-best-zizon/till-service/internal/service"
	"github.com/cloud-wave-best-zizon/till-service/pkg/config"
	"github.com/cloud-wave-best-zizon/till-service/pkg/logger"
	"github.com/cloud-wave-best-zizon/till-service/pkg/money"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "till",
		Usage: "point-of-sale till: sales, services and daily cash reports",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "override LOG_LEVEL",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:  "no-seed",
				Usage: "start with an empty catalog",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	// Config 로드
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if c.Bool("no-seed") {
		cfg.SeedDemo = false
	}

	// Logger 초기화
	zl, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := c.App.Writer
	bus := events.NewBus(zl)
	if err := subscribe(bus, out); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	if err := events.RegisterAudit(bus, zl); err != nil {
		return fmt.Errorf("subscribe audit: %w", err)
	}

	// Repository, Service, Handler 초기화
	var (
		users    []domain.User
		products []domain.Product
		services []domain.ServiceDefinition
	)
	users = repository.SeedUsers()
	if cfg.SeedDemo {
		products = repository.SeedProducts()
		services = repository.SeedServices()
	}
	loc := cfg.TimeLocation()
	catalogRepo := repository.NewCatalogRepository(products, services)
	ledgerRepo := repository.NewLedgerRepository(repository.WithLocation(loc))
	userRepo := repository.NewUserRepository(users)

	formatter := money.NewFormatter(cfg.Currency)
	catalogService := service.NewCatalogService(catalogRepo, userRepo, bus, zl)
	session := service.NewSession(catalogService)
	tillService := service.NewTillService(catalogRepo, ledgerRepo, bus, formatter, zl.With(zap.String("session_id", session.ID())),
		service.WithSessionID(session.ID()))
	reportService := service.NewReportService(catalogRepo, ledgerRepo, bus, zl, nil)

	console := handler.NewConsoleHandler(handler.Deps{
		Session:    session,
		Till:       tillService,
		Catalogs:   catalogService,
		Reports:    reportService,
		Notifier:   bus,
		Money:      formatter,
		Out:        out,
		Logger:     zl,
		ReportDays: cfg.ReportDays,
	})

	zl.Info("Till started",
		zap.String("session_id", session.ID()),
		zap.String("location", loc.String()),
		zap.Bool("seeded", cfg.SeedDemo))
	fmt.Fprintln(out, "Entrez votre code PIN avec: login <pin>  (help pour l'aide)")

	lines, _ := readLines(ctx, c.App.Reader)

	for {
		fmt.Fprint(out, "> ")
		select {
		case <-ctx.Done():
			zl.Info("Till stopped", zap.Int("transactions", ledgerRepo.Len()))
			return nil
		case line, ok := <-lines:
			if !ok || !console.Handle(ctx, line) {
				zl.Info("Till closed", zap.Int("transactions", ledgerRepo.Len()))
				return nil
			}
		}
	}
}

// readLines feeds r line by line until EOF or ctx is done. done is closed
// once the reader goroutine has returned.
func readLines(ctx context.Context, r io.Reader) (<-chan string, <-chan struct{}) {
	lines := make(chan string)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines, done
}

// subscribe prints notifications and rings the terminal bell on low stock.
func subscribe(bus *events.Bus, out io.Writer) error {
	if err := bus.OnNotification(func(n domain.Notification) {
		if n.Details != "" {
			fmt.Fprintf(out, "[%s] %s - %s\n", n.Type, n.Message, n.Details)
			return
		}
		fmt.Fprintf(out, "[%s] %s\n", n.Type, n.Message)
	}); err != nil {
		return err
	}
	return bus.OnLowStock(func(events.LowStockAlertEvent) {
		fmt.Fprint(out, "\a")
	})
}
