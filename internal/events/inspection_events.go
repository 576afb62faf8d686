package events

import "github.com/golang-sql/civil"

const InspectionRecorded = "inspection.recorded"

// InspectionRecordedEvent is published after an inspection row is committed.
type InspectionRecordedEvent struct {
	InspectionID     uint64
	EquipmentID      uint64
	InspectionDate   civil.Date
	InspectorID      uint64
	ResultStatusCode string
}

func (e InspectionRecordedEvent) Name() string {
	return InspectionRecorded
}
