package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"IDXScreener/internal/logger"
	"IDXScreener/internal/model"
	"IDXScreener/internal/notifier"
	"IDXScreener/internal/report"
	"IDXScreener/internal/screener"
	"IDXScreener/mocks"
)

var runCfg = model.RunConfig{Capital: 10_000_000, RecipientEmail: "trader@example.com", Mode: model.ModeScreening}

func candidates() *model.Report {
	return &model.Report{
		RunID:       "abcdef0123456789",
		Mode:        model.ModeScreening,
		GeneratedAt: time.Date(2026, 10, 16, 16, 30, 0, 0, time.UTC),
		Capital:     10_000_000,
		Results: []model.SignalResult{{
			Symbol: "ANTM.JK", Price: 1000, Lot: 100, TakeProfit: 1030, StopLoss: 980,
			EstProfit: 300000, EstLoss: 200000, RSI: optional.Some(48.5), Signal: model.SignalUptrend,
		}},
	}
}

func TestRegister(t *testing.T) {
	s := NewScheduler(context.Background(), nil, runCfg, "", logger.Nop())
	require.NoError(t, s.Register("0 30 16 * * 1-5"))
	assert.Len(t, s.Cron.Entries(), 1)
	assert.Error(t, s.Register("every day"))
}

func TestRun_ExportsAndNotifies(t *testing.T) {
	ctrl := gomock.NewController(t)
	pipeline := mocks.NewMockPipeline(ctrl)
	pipeline.EXPECT().Run(gomock.Any(), runCfg).Return(candidates(), nil)

	email := mocks.NewMockNotifier(ctrl)
	email.EXPECT().Name().Return("email").AnyTimes()
	var sent model.Message
	email.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg model.Message) error {
		sent = msg
		return nil
	})

	chat := mocks.NewMockNotifier(ctrl)
	chat.EXPECT().Name().Return("telegram").AnyTimes()
	chat.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("network down"))

	dir := t.TempDir()
	s := NewScheduler(context.Background(), pipeline, runCfg, dir, logger.Nop(), email, chat)
	res, err := s.RunNow()
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "stock_analysis_2026-10-16_abcdef01.pdf"),
		filepath.Join(dir, "stock_analysis_2026-10-16_abcdef01.xlsx"),
	}, res.Files)
	for _, f := range res.Files {
		_, err := os.Stat(f)
		assert.NoError(t, err)
	}

	assert.Equal(t, "trader@example.com", sent.To)
	assert.Equal(t, notifier.ReportSubject, sent.Subject)
	require.Len(t, sent.Attachments, 2)
	assert.Equal(t, report.PDFName, sent.Attachments[0].Name)
	assert.Equal(t, report.SpreadsheetName, sent.Attachments[1].Name)

	require.Len(t, res.Deliveries, 2)
	assert.True(t, res.Deliveries[0].OK)
	assert.False(t, res.Deliveries[1].OK)
	assert.Contains(t, res.Deliveries[1].Message, "network down")
}

func TestRun_NoCandidatesStillNotifies(t *testing.T) {
	ctrl := gomock.NewController(t)
	pipeline := mocks.NewMockPipeline(ctrl)
	pipeline.EXPECT().Run(gomock.Any(), runCfg).Return(&model.Report{Mode: model.ModeScreening}, screener.ErrNoCandidates)

	n := mocks.NewMockNotifier(ctrl)
	n.EXPECT().Name().Return("email").AnyTimes()
	n.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg model.Message) error {
		assert.Contains(t, msg.Body, report.NoCandidatesText)
		return nil
	})

	s := NewScheduler(context.Background(), pipeline, runCfg, "", logger.Nop(), n)
	res, err := s.RunNow()
	require.NoError(t, err)
	assert.True(t, res.Report.Empty())
	assert.Empty(t, res.Files)
}

func TestRun_PipelineFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	pipeline := mocks.NewMockPipeline(ctrl)
	pipeline.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil, errors.New("unknown mode"))
	n := mocks.NewMockNotifier(ctrl)

	s := NewScheduler(context.Background(), pipeline, runCfg, t.TempDir(), logger.Nop(), n)
	_, err := s.RunNow()
	assert.Error(t, err)
}

func TestHandleCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	pipeline := mocks.NewMockPipeline(ctrl)

	screening := runCfg
	pipeline.EXPECT().Run(gomock.Any(), screening).Return(candidates(), nil)
	s := NewScheduler(context.Background(), pipeline, runCfg, "", logger.Nop())

	reply := s.HandleCommand(context.Background(), "/screen@idx_bot")
	require.NotNil(t, reply)
	assert.Contains(t, reply.Body, "<b>ANTM.JK</b>")
	assert.True(t, reply.Markup)
	require.Len(t, reply.Attachments, 1)
	assert.Equal(t, report.PDFName, reply.Attachments[0].Name)
	assert.True(t, strings.HasPrefix(string(reply.Attachments[0].Data), "%PDF"))

	single := runCfg
	single.Mode = model.ModeSingle
	pipeline.EXPECT().Run(gomock.Any(), single).Return(&model.Report{Mode: model.ModeSingle}, screener.ErrNoCandidates)
	reply = s.HandleCommand(context.Background(), "/SINGLE")
	assert.Contains(t, reply.Body, report.NoCandidatesText)
	assert.Empty(t, reply.Attachments)

	for _, cmd := range []string{"/help", "hello", "   "} {
		reply = s.HandleCommand(context.Background(), cmd)
		assert.Equal(t, notifier.HelpText(), reply.Body)
		assert.True(t, reply.Markup)
	}
}
