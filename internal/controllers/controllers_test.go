package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-sql/civil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ppe-tracker/internal/alerts"
	"ppe-tracker/internal/dto"
	"ppe-tracker/internal/services"
	apperrors "ppe-tracker/pkg/errors"
)

type stubAlertService struct {
	gotFilter *alerts.Status
	list      []dto.AlertDTO
	err       error
}

func (s *stubAlertService) ListAlerts(ctx context.Context, filter *alerts.Status) ([]dto.AlertDTO, error) {
	s.gotFilter = filter
	return s.list, s.err
}

func (s *stubAlertService) EquipmentAlert(ctx context.Context, id uint64) (*dto.AlertDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.list[0], nil
}

func (s *stubAlertService) Evaluate(ctx context.Context, filter *alerts.Status) (*services.AlertSnapshot, error) {
	return nil, s.err
}

func (s *stubAlertService) Today() civil.Date { return civil.Date{Year: 2024, Month: 6, Day: 15} }

type importRecorder struct {
	called bool
	got    []byte
}

func (s *importRecorder) Import(ctx context.Context, r io.Reader) (*dto.ImportResultDTO, error) {
	s.called = true
	s.got, _ = io.ReadAll(r)
	return &dto.ImportResultDTO{Created: 1, Errors: []dto.ImportRowErrorDTO{}}, nil
}

type stubReportService struct{}

func (stubReportService) ExportAlerts(ctx context.Context, filter *alerts.Status) (*services.Report, error) {
	return &services.Report{FileName: "alerts_2024-06-15.xlsx", Content: bytes.NewBufferString("xlsx")}, nil
}

func (stubReportService) ExportInspectionHistory(ctx context.Context, id uint64) (*services.Report, error) {
	return nil, apperrors.ErrNotFound
}

func call(h echo.HandlerFunc, req *http.Request, params ...string) *httptest.ResponseRecorder {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) == 2 {
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}
	_ = h(c)
	return rec
}

func TestAlertController_GetAlerts(t *testing.T) {
	svc := &stubAlertService{list: []dto.AlertDTO{{
		EquipmentDTO: dto.EquipmentDTO{ID: 1, CustomIdentifier: "H-1"},
		NextDueDate:  civil.Date{Year: 2024, Month: 6, Day: 20},
		Status:       "DueSoon",
	}}}
	ctrl := NewAlertController(svc, zap.NewNop())

	rec := call(ctrl.GetAlerts, httptest.NewRequest(http.MethodGet, "/api/alerts?status=DueSoon", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotFilter)
	assert.Equal(t, alerts.StatusDueSoon, *svc.gotFilter)

	var body struct {
		Body []map[string]interface{} `json:"body"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Body, 1)
	assert.Equal(t, "H-1", body.Body[0]["customIdentifier"])
	assert.Equal(t, "2024-06-20", body.Body[0]["nextDueDate"])
	assert.Equal(t, "DueSoon", body.Body[0]["status"])
}

func TestAlertController_UnknownStatus(t *testing.T) {
	svc := &stubAlertService{}
	ctrl := NewAlertController(svc, zap.NewNop())

	rec := call(ctrl.GetAlerts, httptest.NewRequest(http.MethodGet, "/api/alerts?status=overdue", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAlertController_InvalidDataIs422(t *testing.T) {
	svc := &stubAlertService{err: fmt.Errorf("equipment 2 (H-2): %w", apperrors.NewInvalidInputError("no commission date and no inspection, due date cannot be derived"))}
	ctrl := NewAlertController(svc, zap.NewNop())

	rec := call(ctrl.GetAlerts, httptest.NewRequest(http.MethodGet, "/api/alerts", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "H-2")

	svc.err = apperrors.ErrNotFound
	rec = call(ctrl.EquipmentAlert, httptest.NewRequest(http.MethodGet, "/", nil), "id", "9")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func multipartFile(t *testing.T, name string, content []byte) *http.Request {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/equipment/import", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestEquipmentController_ImportValidatesUpload(t *testing.T) {
	importSvc := &importRecorder{}
	ctrl := NewEquipmentController(nil, importSvc, zap.NewNop())

	rec := call(ctrl.ImportEquipment, httptest.NewRequest(http.MethodPost, "/api/equipment/import", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(ctrl.ImportEquipment, multipartFile(t, "inventory.csv", []byte("a,b")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, importSvc.called)

	rec = call(ctrl.ImportEquipment, multipartFile(t, "renamed.xlsx", []byte("just text")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, importSvc.called)

	workbook := []byte("PK\x03\x04\x14\x00\x06\x00")
	rec = call(ctrl.ImportEquipment, multipartFile(t, "Inventory.XLSX", workbook))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, importSvc.called)
	assert.Equal(t, workbook, importSvc.got)
}

func TestReportController_SendsWorkbook(t *testing.T) {
	ctrl := NewReportController(stubReportService{}, zap.NewNop())

	rec := call(ctrl.ExportAlerts, httptest.NewRequest(http.MethodGet, "/api/reports/alerts", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.XLSXContentType, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "attachment; filename=alerts_2024-06-15.xlsx", rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "xlsx", rec.Body.String())

	rec = call(ctrl.ExportInspectionHistory, httptest.NewRequest(http.MethodGet, "/", nil), "id", "3")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
