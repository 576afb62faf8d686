package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ppe-tracker/internal/dto"
	"ppe-tracker/internal/entities"
	"ppe-tracker/internal/events"
	apperrors "ppe-tracker/pkg/errors"
	"ppe-tracker/pkg/utils"
)

type inspectionFixture struct {
	svc         *InspectionService
	inspections *fakeInspectionRepo
	tx          *fakeTxManager
	inv         *countingInvalidator
	events      *recordingPublisher
}

func newInspectionFixture() inspectionFixture {
	f := inspectionFixture{
		inspections: &fakeInspectionRepo{},
		tx:          &fakeTxManager{},
		inv:         &countingInvalidator{},
		events:      &recordingPublisher{},
	}
	equipment := newFakeEquipmentRepo(harness(1, "H-1", dayPtr(2023, time.January, 1), 12))
	statuses := &fakeStatusRepo{items: []entities.Status{{ID: 1, Code: entities.StatusCodeOperational, Name: "Operational"}}}
	users := &fakeUserRepo{items: []entities.User{
		{ID: 10, FullName: "Ivy Inspector", Role: entities.RoleInspector},
		{ID: 11, FullName: "Tom Technician", Role: entities.RoleTechnician},
	}}
	svc := NewInspectionService(f.inspections, equipment, statuses, users, f.tx, f.inv, f.events, time.UTC, zap.NewNop()).(*InspectionService)
	svc.now = fixedNow(time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC))
	f.svc = svc
	return f
}

func inspectorCtx(id uint64, role string) context.Context {
	return utils.WithUser(context.Background(), id, role)
}

func TestInspectionService_CreateUsesAuthenticatedInspector(t *testing.T) {
	f := newInspectionFixture()

	res, err := f.svc.CreateInspection(inspectorCtx(10, entities.RoleInspector), dto.CreateInspectionDTO{
		EquipmentID:    1,
		InspectionDate: day(2024, time.June, 15),
		ResultStatusID: 1,
		Notes:          null.StringFrom("stitching ok"),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(10), res.InspectorID)
	assert.Equal(t, day(2024, time.June, 15), res.InspectionDate)
	assert.Len(t, f.inspections.items, 1)
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, 1, f.inv.calls)

	require.Len(t, f.events.events, 1)
	recorded := f.events.events[0].(events.InspectionRecordedEvent)
	assert.Equal(t, uint64(1), recorded.EquipmentID)
	assert.Equal(t, uint64(10), recorded.InspectorID)
	assert.Equal(t, entities.StatusCodeOperational, recorded.ResultStatusCode)
}

func TestInspectionService_CreateExplicitInspector(t *testing.T) {
	f := newInspectionFixture()
	inspector := uint64(10)

	res, err := f.svc.CreateInspection(inspectorCtx(1, entities.RoleAdmin), dto.CreateInspectionDTO{
		EquipmentID:    1,
		InspectionDate: day(2024, time.May, 2),
		InspectorID:    &inspector,
		ResultStatusID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(10), res.InspectorID)
}

func TestInspectionService_CreateRejectsFutureDate(t *testing.T) {
	f := newInspectionFixture()

	_, err := f.svc.CreateInspection(inspectorCtx(10, entities.RoleInspector), dto.CreateInspectionDTO{
		EquipmentID:    1,
		InspectionDate: day(2024, time.June, 16),
		ResultStatusID: 1,
	})
	var invalid *apperrors.InvalidInputError
	require.True(t, errors.As(err, &invalid), "got %v", err)
	assert.Empty(t, f.inspections.items)
	assert.Zero(t, f.inv.calls)
}

func TestInspectionService_CreateRequiresDate(t *testing.T) {
	f := newInspectionFixture()

	_, err := f.svc.CreateInspection(inspectorCtx(10, entities.RoleInspector), dto.CreateInspectionDTO{
		EquipmentID:    1,
		ResultStatusID: 1,
	})
	var invalid *apperrors.InvalidInputError
	assert.True(t, errors.As(err, &invalid), "got %v", err)
}

func TestInspectionService_CreateUnknownReferences(t *testing.T) {
	technician := uint64(11)
	ghost := uint64(99)

	cases := []struct {
		name string
		req  dto.CreateInspectionDTO
		code int
	}{
		{"unknown status", dto.CreateInspectionDTO{EquipmentID: 1, InspectionDate: day(2024, time.June, 1), ResultStatusID: 7}, http.StatusBadRequest},
		{"unknown inspector", dto.CreateInspectionDTO{EquipmentID: 1, InspectionDate: day(2024, time.June, 1), ResultStatusID: 1, InspectorID: &ghost}, http.StatusBadRequest},
		{"technician as inspector", dto.CreateInspectionDTO{EquipmentID: 1, InspectionDate: day(2024, time.June, 1), ResultStatusID: 1, InspectorID: &technician}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newInspectionFixture()
			_, err := f.svc.CreateInspection(inspectorCtx(10, entities.RoleInspector), tc.req)

			var httpErr *apperrors.HttpError
			require.True(t, errors.As(err, &httpErr), "got %v", err)
			assert.Equal(t, tc.code, httpErr.Code)
			assert.Empty(t, f.inspections.items)
		})
	}
}

func TestInspectionService_CreateUnknownEquipment(t *testing.T) {
	f := newInspectionFixture()

	_, err := f.svc.CreateInspection(inspectorCtx(10, entities.RoleInspector), dto.CreateInspectionDTO{
		EquipmentID:    404,
		InspectionDate: day(2024, time.June, 1),
		ResultStatusID: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, f.inspections.items)
}

func TestInspectionService_ListForEquipment(t *testing.T) {
	f := newInspectionFixture()
	f.inspections.items = []entities.Inspection{
		{ID: 1, EquipmentID: 1, InspectionDate: day(2023, time.December, 1)},
		{ID: 2, EquipmentID: 1, InspectionDate: day(2024, time.March, 1)},
	}

	list, err := f.svc.ListForEquipment(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, uint64(2), list[0].ID)

	_, err = f.svc.ListForEquipment(context.Background(), 2)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
