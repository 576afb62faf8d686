package listeners

import (
	"context"
	"testing"

	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"ppe-tracker/internal/entities"
	"ppe-tracker/internal/events"
	"ppe-tracker/pkg/eventbus"
)

type unrelatedEvent struct{}

func (unrelatedEvent) Name() string { return events.InspectionRecorded }

func TestRepairListener_WarnsOnFailedInspection(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	bus := eventbus.New(zap.NewNop())
	NewRepairListener(zap.New(core)).Register(bus)

	date := civil.Date{Year: 2024, Month: 6, Day: 15}
	bus.Publish(context.Background(), events.InspectionRecordedEvent{
		InspectionID: 1, EquipmentID: 7, InspectionDate: date, ResultStatusCode: entities.StatusCodeNeedsRepair,
	})
	bus.Publish(context.Background(), events.InspectionRecordedEvent{
		InspectionID: 2, EquipmentID: 8, InspectionDate: date, ResultStatusCode: entities.StatusCodeDecommissioned,
	})
	bus.Publish(context.Background(), events.InspectionRecordedEvent{
		InspectionID: 3, EquipmentID: 9, InspectionDate: date, ResultStatusCode: entities.StatusCodeOperational,
	})
	bus.Wait()

	repair := logs.FilterMessage("equipment needs repair").All()
	if assert.Len(t, repair, 1) {
		assert.EqualValues(t, 7, repair[0].ContextMap()["equipmentId"])
		assert.Equal(t, "2024-06-15", repair[0].ContextMap()["date"])
	}
	assert.Equal(t, 1, logs.FilterMessage("equipment decommissioned").Len())
	assert.Equal(t, 2, logs.Len())
}

func TestRepairListener_RejectsForeignEvent(t *testing.T) {
	l := NewRepairListener(zap.NewNop())
	err := l.handleInspectionRecorded(context.Background(), unrelatedEvent{})
	assert.Error(t, err)
}
