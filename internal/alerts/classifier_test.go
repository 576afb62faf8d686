package alerts

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppe-tracker/internal/entities"
	apperrors "ppe-tracker/pkg/errors"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func ptr(d civil.Date) *civil.Date { return &d }

func harness(id uint64, commission *civil.Date, interval int) entities.Equipment {
	return entities.Equipment{
		ID:                       id,
		CustomIdentifier:         "HRN-" + string(rune('A'+id)),
		Brand:                    "Petzl",
		Model:                    "Avao",
		SerialNumber:             "SN1",
		CommissionDate:           commission,
		InspectionIntervalMonths: interval,
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		in   civil.Date
		n    int
		want civil.Date
	}{
		{"same day next month", date(2024, 3, 15), 1, date(2024, 4, 15)},
		{"leap year clamp", date(2024, 1, 31), 1, date(2024, 2, 29)},
		{"non leap clamp", date(2023, 1, 31), 1, date(2023, 2, 28)},
		{"thirty day month clamp", date(2024, 3, 31), 1, date(2024, 4, 30)},
		{"year rollover", date(2024, 11, 30), 3, date(2025, 2, 28)},
		{"twelve months", date(2024, 1, 1), 12, date(2025, 1, 1)},
		{"backwards", date(2025, 1, 1), -1, date(2024, 12, 1)},
		{"backwards clamp", date(2024, 3, 31), -1, date(2024, 2, 29)},
		{"backwards across years", date(2024, 2, 10), -14, date(2022, 12, 10)},
		{"zero", date(2024, 5, 5), 0, date(2024, 5, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.in, tt.n))
		})
	}
}

func TestClassify_Scenarios(t *testing.T) {
	item := harness(1, ptr(date(2024, 1, 1)), 12)

	tests := []struct {
		name       string
		today      civil.Date
		wantStatus Status
	}{
		{"overdue the day after due", date(2025, 1, 2), StatusOverdue},
		{"due soon inside window", date(2024, 12, 15), StatusDueSoon},
		{"current well before", date(2024, 6, 1), StatusCurrent},
		{"due date itself is not overdue", date(2025, 1, 1), StatusDueSoon},
		{"window opens on warnFrom", date(2024, 12, 1), StatusDueSoon},
		{"day before window", date(2024, 11, 30), StatusCurrent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alert, err := Classify(item, nil, tt.today)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, alert.Status)
			assert.Equal(t, date(2025, 1, 1), alert.NextDueDate)
			assert.Equal(t, date(2024, 12, 1), alert.WarnFrom)
		})
	}
}

func TestClassify_FallbackToCommissionDate(t *testing.T) {
	commission := date(2024, 1, 31)
	alert, err := Classify(harness(1, &commission, 1), nil, date(2024, 1, 31))
	require.NoError(t, err)

	assert.Equal(t, commission, alert.LastInspectionDate)
	assert.Equal(t, date(2024, 2, 29), alert.NextDueDate)
}

func TestClassify_LatestInspectionWins(t *testing.T) {
	item := harness(1, ptr(date(2020, 1, 1)), 6)
	alert, err := Classify(item, ptr(date(2024, 5, 10)), date(2024, 6, 1))
	require.NoError(t, err)

	assert.Equal(t, date(2024, 5, 10), alert.LastInspectionDate)
	assert.Equal(t, date(2024, 11, 10), alert.NextDueDate)
	assert.Equal(t, StatusCurrent, alert.Status)
}

func TestClassify_InspectionWithoutCommissionDate(t *testing.T) {
	alert, err := Classify(harness(1, nil, 3), ptr(date(2024, 1, 10)), date(2024, 3, 20))
	require.NoError(t, err)
	assert.Equal(t, StatusDueSoon, alert.Status)
}

func TestClassify_InvalidInput(t *testing.T) {
	var invalid *apperrors.InvalidInputError

	_, err := Classify(harness(1, ptr(date(2024, 1, 1)), 0), nil, date(2024, 2, 1))
	require.Error(t, err)
	assert.True(t, errors.As(err, &invalid))

	_, err = Classify(harness(1, nil, 12), nil, date(2024, 2, 1))
	require.Error(t, err)
	assert.True(t, errors.As(err, &invalid))
}

func TestClassify_Deterministic(t *testing.T) {
	item := harness(1, ptr(date(2023, 8, 31)), 6)
	first, err := Classify(item, nil, date(2024, 2, 10))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Classify(item, nil, date(2024, 2, 10))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestClassify_MonotonicOverTime(t *testing.T) {
	item := harness(1, ptr(date(2024, 1, 31)), 1)
	start := date(2024, 1, 1)

	prev := -1
	for i := 0; i < 120; i++ {
		alert, err := Classify(item, nil, start.AddDays(i))
		require.NoError(t, err)
		rank := alert.Status.Rank()
		require.GreaterOrEqual(t, rank, prev, "status went backwards on %s", start.AddDays(i))
		prev = rank
	}
	assert.Equal(t, StatusOverdue.Rank(), prev)
}

func TestClassifyAll_FilterKeepsOrder(t *testing.T) {
	today := date(2025, 1, 2)
	list := []entities.Equipment{
		harness(1, ptr(date(2024, 1, 1)), 12), // overdue
		harness(2, ptr(date(2024, 6, 1)), 12), // current
		harness(3, ptr(date(2023, 1, 1)), 12), // inspected below, due soon
		harness(4, ptr(date(2022, 5, 5)), 24), // overdue
	}
	latest := map[uint64]civil.Date{3: date(2024, 1, 20)}

	all, err := ClassifyAll(list, latest, today, nil)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []Status{StatusOverdue, StatusCurrent, StatusDueSoon, StatusOverdue},
		[]Status{all[0].Status, all[1].Status, all[2].Status, all[3].Status})

	overdue := StatusOverdue
	filtered, err := ClassifyAll(list, latest, today, &overdue)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, uint64(1), filtered[0].Equipment.ID)
	assert.Equal(t, uint64(4), filtered[1].Equipment.ID)
}

func TestClassifyAll_FailsOnFirstInvalidItem(t *testing.T) {
	list := []entities.Equipment{
		harness(1, ptr(date(2024, 1, 1)), 12),
		harness(7, nil, 12),
	}
	_, err := ClassifyAll(list, nil, date(2024, 3, 1), nil)
	require.Error(t, err)

	var invalid *apperrors.InvalidInputError
	assert.True(t, errors.As(err, &invalid))
	assert.Contains(t, err.Error(), "equipment 7")
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("DueSoon")
	require.NoError(t, err)
	assert.Equal(t, StatusDueSoon, s)

	_, err = ParseStatus("overdue")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
