package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ppe-tracker/internal/entities"
	"ppe-tracker/internal/events"
	"ppe-tracker/pkg/eventbus"
)

// RepairListener warns when an inspection takes an item out of service.
type RepairListener struct {
	logger *zap.Logger
}

func NewRepairListener(logger *zap.Logger) *RepairListener {
	return &RepairListener{logger: logger}
}

func (l *RepairListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.InspectionRecorded, l.handleInspectionRecorded)
}

func (l *RepairListener) handleInspectionRecorded(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.InspectionRecordedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	fields := []zap.Field{
		zap.Uint64("equipmentId", e.EquipmentID),
		zap.Uint64("inspectionId", e.InspectionID),
		zap.Uint64("inspectorId", e.InspectorID),
		zap.String("date", e.InspectionDate.String()),
	}
	switch e.ResultStatusCode {
	case entities.StatusCodeNeedsRepair:
		l.logger.Warn("equipment needs repair", fields...)
	case entities.StatusCodeDecommissioned:
		l.logger.Warn("equipment decommissioned", fields...)
	default:
		l.logger.Debug("equipment passed inspection", fields...)
	}
	return nil
}
