package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"IDXScreener/internal/api"
	"IDXScreener/internal/config"
	"IDXScreener/internal/logger"
	"IDXScreener/internal/model"
	"IDXScreener/internal/notifier"
	"IDXScreener/internal/report"
	"IDXScreener/internal/scheduler"
	"IDXScreener/internal/screener"
)

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(cmd *cli.Command) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, nil, err
	}
	if cmd.IsSet("mode") {
		cfg.Mode = cmd.String("mode")
	}
	if cmd.IsSet("capital") {
		cfg.Capital = cmd.Float("capital")
	}
	if cmd.IsSet("email") {
		cfg.RecipientEmail = cmd.String("email")
	}
	if cmd.IsSet("out") {
		cfg.OutputDir = cmd.String("out")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	lg, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, lg, nil
}

// runAction screens once, prints the table and writes the exports.
func runAction(ctx context.Context, cmd *cli.Command) error {
	cfg, lg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer lg.Sync()

	a, err := newApp(cfg, lg, true)
	if err != nil {
		return err
	}

	runCfg := cfg.RunConfig()
	rep, err := a.screener.Run(ctx, runCfg)
	if err != nil && !errors.Is(err, screener.ErrNoCandidates) {
		return fmt.Errorf("screen: %w", err)
	}
	fmt.Print(report.RenderTable(rep))

	atts, err := report.Attachments(rep)
	if err != nil {
		return err
	}
	files, err := report.WriteFiles(cfg.OutputDir, rep, atts)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Printf("saved %s\n", f)
	}

	if !cmd.Bool("send") {
		return nil
	}
	if len(a.notifiers) == 0 {
		return errors.New("no notifier configured: set smtp credentials with recipient_email, or telegram")
	}
	msg := notifier.ReportMessage(runCfg.RecipientEmail, rep, atts)
	for _, n := range a.notifiers {
		d := notifier.Deliver(ctx, n, msg)
		fmt.Println(d.Message)
	}
	return nil
}

// serveAction runs the daily cron job, Telegram polling and the HTTP API until interrupted.
func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, lg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer lg.Sync()
	lg.Info("IDXScreener starting")

	a, err := newApp(cfg, lg, false)
	if err != nil {
		return err
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched := scheduler.NewScheduler(ctx, a.screener, cfg.RunConfig(), cfg.OutputDir, lg, a.notifiers...)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if a.telegram != nil {
		go a.telegram.StartPolling(ctx, sched.HandleCommand)
		lg.Info("telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		lg.Info("RUN_ON_START enabled, running daily report now")
		go func() {
			if _, err := sched.RunNow(); err != nil {
				lg.Error("startup run failed", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.SetupRoutes(api.NewHandler(a.screener, a.email, cfg.RunConfig(), lg)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		lg.Info("http server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		lg.Info("shutdown signal received, stopping")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Warn("http shutdown", zap.Error(err))
	}
	lg.Info("IDXScreener stopped")
	return nil
}

// commonFlags returns fresh flag values; commands must not share them.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Usage:   fmt.Sprintf("Signal mode (%s or %s)", model.ModeScreening, model.ModeSingle),
		},
		&cli.FloatFlag{
			Name:    "capital",
			Aliases: []string{"c"},
			Usage:   "Trading capital in rupiah, at least 1000000",
		},
		&cli.StringFlag{
			Name:    "email",
			Aliases: []string{"e"},
			Usage:   "Recipient e-mail address",
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Directory for the exported spreadsheet and PDF",
		},
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "screener",
		Usage: "Daily IDX stock screening report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the YAML config file",
				Value:   "configs/config.yaml",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Screen once, print the table and export the report",
				Flags: append(commonFlags(), &cli.BoolFlag{
					Name:  "send",
					Usage: "Deliver the report through the configured notifiers",
				}),
				Action: runAction,
			},
			{
				Name:   "serve",
				Usage:  "Run the daily schedule, the Telegram bot and the HTTP API",
				Flags:  commonFlags(),
				Action: serveAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
