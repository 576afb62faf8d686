package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"ppe-tracker/internal/dto"
	"ppe-tracker/pkg/types"
)

type stubDashboard struct {
	result    *dto.DashboardDTO
	err       error
	refreshes int
}

func (s *stubDashboard) InvalidateDashboard(ctx context.Context) {}

func (s *stubDashboard) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	return s.result, s.err
}

func (s *stubDashboard) Refresh(ctx context.Context) (*dto.DashboardDTO, error) {
	s.refreshes++
	return s.result, s.err
}

func TestRunDigest_LogsOverdueItems(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dash := &stubDashboard{result: &dto.DashboardDTO{
		AsOf:           "2024-06-15",
		TotalEquipment: 3,
		Counts:         types.DashboardCounts{Current: 1, DueSoon: 1, Overdue: 1},
		Overdue: []types.DashboardDueItem{
			{EquipmentID: 3, CustomIdentifier: "H-3", NextDueDate: "2024-01-01", DaysLeft: -166},
		},
	}}

	s, err := New("0 6 * * *", time.UTC, dash, zap.New(core))
	require.NoError(t, err)
	require.NoError(t, s.RunDigest(context.Background()))

	assert.Equal(t, 1, dash.refreshes)
	summary := logs.FilterMessage("alert digest").All()
	require.Len(t, summary, 1)
	assert.Equal(t, int64(1), summary[0].ContextMap()["overdue"])

	overdue := logs.FilterMessage("equipment overdue for inspection").All()
	require.Len(t, overdue, 1)
	assert.Equal(t, zapcore.WarnLevel, overdue[0].Level)
	assert.Equal(t, "H-3", overdue[0].ContextMap()["customIdentifier"])
}

func TestRunDigest_PropagatesError(t *testing.T) {
	boom := errors.New("db down")
	s, err := New("@daily", nil, &stubDashboard{err: boom}, zap.NewNop())
	require.NoError(t, err)

	assert.ErrorIs(t, s.RunDigest(context.Background()), boom)
}

func TestNew_RejectsBadSchedule(t *testing.T) {
	_, err := New("every morning", time.UTC, &stubDashboard{}, zap.NewNop())
	assert.Error(t, err)
}

func TestStartStop(t *testing.T) {
	s, err := New("0 6 * * *", time.UTC, &stubDashboard{}, zap.NewNop())
	require.NoError(t, err)

	s.Start()
	s.Stop()
}
