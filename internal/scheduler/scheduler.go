package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"IDXScreener/internal/logger"
	"IDXScreener/internal/model"
	"IDXScreener/internal/notifier"
	"IDXScreener/internal/report"
	"IDXScreener/internal/screener"
)

// Scheduler runs the daily report job on a cron schedule and answers chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Pipeline  screener.Pipeline
	Notifiers []notifier.Notifier
	RunConfig model.RunConfig
	// OutputDir receives the exported files; empty disables writing.
	OutputDir string
	Logger    *logger.Logger
	Ctx       context.Context
}

// Result is what one job run produced.
type Result struct {
	Report     *model.Report
	Files      []string
	Deliveries []notifier.Delivery
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, p screener.Pipeline, run model.RunConfig, outputDir string, log *logger.Logger, notifiers ...notifier.Notifier) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Pipeline:  p,
		Notifiers: notifiers,
		RunConfig: run,
		OutputDir: outputDir,
		Logger:    logger.OrNop(log),
		Ctx:       ctx,
	}
}

// Register adds the daily report job.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started", zap.Int("jobs", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info("scheduler stopped")
}

// RunNow executes the daily job immediately.
func (s *Scheduler) RunNow() (*Result, error) {
	return s.Run(s.context(), s.RunConfig)
}

func (s *Scheduler) dailyTask() {
	s.Logger.Info("running daily report")
	if _, err := s.RunNow(); err != nil {
		s.Logger.Error("daily report failed", zap.Error(err))
	}
}

// Run screens, exports and notifies once. A run without candidates still
// exports and notifies the "no candidates" report.
func (s *Scheduler) Run(ctx context.Context, cfg model.RunConfig) (*Result, error) {
	rep, err := s.Pipeline.Run(ctx, cfg)
	if err != nil && !errors.Is(err, screener.ErrNoCandidates) {
		return nil, fmt.Errorf("screen: %w", err)
	}
	rep = orEmpty(rep, cfg)
	res := &Result{Report: rep}

	atts, err := report.Attachments(rep)
	if err != nil {
		return res, fmt.Errorf("render attachments: %w", err)
	}
	if s.OutputDir != "" {
		files, err := report.WriteFiles(s.OutputDir, rep, atts)
		res.Files = files
		if err != nil {
			return res, err
		}
		s.Logger.Info("report exported", zap.Strings("files", files))
	}

	msg := notifier.ReportMessage(cfg.RecipientEmail, rep, atts)
	for _, n := range s.Notifiers {
		d := notifier.Deliver(ctx, n, msg)
		res.Deliveries = append(res.Deliveries, d)
		if d.OK {
			s.Logger.Info("report delivered", zap.String("notifier", n.Name()), zap.String("result", d.Message))
		} else {
			s.Logger.Warn("report not delivered", zap.String("notifier", n.Name()), zap.String("result", d.Message))
		}
	}
	return res, nil
}

// HandleCommand processes a chat command and returns the reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) *model.Message {
	var cmd string
	if fields := strings.Fields(command); len(fields) > 0 {
		cmd = strings.ToLower(fields[0])
	}
	// strip a "@botname" suffix
	if i := strings.IndexByte(cmd, '@'); i > 0 {
		cmd = cmd[:i]
	}

	var mode model.Mode
	switch cmd {
	case "/screen":
		mode = model.ModeScreening
	case "/single":
		mode = model.ModeSingle
	default:
		return &model.Message{Body: notifier.HelpText(), Markup: true}
	}

	cfg := s.RunConfig
	cfg.Mode = mode
	rep, err := s.Pipeline.Run(ctx, cfg)
	if err != nil && !errors.Is(err, screener.ErrNoCandidates) {
		s.Logger.Error("command run failed", zap.String("command", cmd), zap.Error(err))
		return &model.Message{Body: fmt.Sprintf("❌ Screening failed: %v", err)}
	}
	rep = orEmpty(rep, cfg)

	reply := &model.Message{Body: notifier.FormatSummary(rep, true), Markup: true}
	if rep.Empty() {
		return reply
	}
	pdf, err := report.RenderPDF(report.BuildDocument(rep))
	if err != nil {
		s.Logger.Error("render pdf", zap.Error(err))
		return reply
	}
	reply.Attachments = []model.Attachment{{Name: report.PDFName, ContentType: report.PDFContentType, Data: pdf}}
	return reply
}

func orEmpty(rep *model.Report, cfg model.RunConfig) *model.Report {
	if rep != nil {
		return rep
	}
	return &model.Report{Mode: cfg.Mode, GeneratedAt: time.Now(), Capital: cfg.Capital}
}

func (s *Scheduler) context() context.Context {
	if s.Ctx != nil {
		return s.Ctx
	}
	return context.Background()
}
