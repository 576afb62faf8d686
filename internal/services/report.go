package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"ppe-tracker/internal/alerts"
	"ppe-tracker/internal/repositories"
	"ppe-tracker/pkg/utils"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	alertReportHeaders = []interface{}{
		"ID", "Identifier", "Type", "Brand", "Model", "Serial number",
		"Commission date", "Interval (months)", "Last inspection", "Next due", "Status",
	}
	historyReportHeaders = []interface{}{
		"ID", "Inspection date", "Inspector", "Result", "Notes", "Recorded at",
	}
)

var fileSafe = strings.NewReplacer("/", "_", "\\", "_", " ", "_")

// Report is a generated workbook ready to be sent.
type Report struct {
	FileName string
	Content  *bytes.Buffer
}

type ReportServiceInterface interface {
	ExportAlerts(ctx context.Context, filter *alerts.Status) (*Report, error)
	ExportInspectionHistory(ctx context.Context, equipmentID uint64) (*Report, error)
}

type ReportService struct {
	alertService   AlertServiceInterface
	equipmentRepo  repositories.EquipmentRepositoryInterface
	inspectionRepo repositories.InspectionRepositoryInterface
	logger         *zap.Logger
}

func NewReportService(
	alertService AlertServiceInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	inspectionRepo repositories.InspectionRepositoryInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{
		alertService:   alertService,
		equipmentRepo:  equipmentRepo,
		inspectionRepo: inspectionRepo,
		logger:         logger,
	}
}

func newSheet(sheet string, headers []interface{}) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", style); err != nil {
		return nil, err
	}
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func finish(f *excelize.File, name string) (*Report, error) {
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &Report{FileName: name, Content: buf}, nil
}

func (s *ReportService) ExportAlerts(ctx context.Context, filter *alerts.Status) (*Report, error) {
	snapshot, err := s.alertService.Evaluate(ctx, filter)
	if err != nil {
		return nil, err
	}

	const sheet = "Alerts"
	f, err := newSheet(sheet, alertReportHeaders)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(snapshot.Alerts))
	for _, a := range snapshot.Alerts {
		e := a.Equipment
		rows = append(rows, []interface{}{
			e.ID, e.CustomIdentifier, e.EquipmentTypeName, e.Brand, e.Model, e.SerialNumber,
			utils.FormatDatePtr(e.CommissionDate), e.InspectionIntervalMonths,
			a.LastInspectionDate.String(), a.NextDueDate.String(), a.Status.String(),
		})
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(sheet, "B", "F", 20)
	_ = f.SetColWidth(sheet, "G", "K", 16)

	name := fmt.Sprintf("alerts_%s.xlsx", snapshot.Today)
	if filter != nil {
		name = fmt.Sprintf("alerts_%s_%s.xlsx", *filter, snapshot.Today)
	}
	s.logger.Debug("alert report generated", zap.Int("rows", len(rows)), zap.String("file", name))
	return finish(f, name)
}

func (s *ReportService) ExportInspectionHistory(ctx context.Context, equipmentID uint64) (*Report, error) {
	e, err := s.equipmentRepo.FindByID(ctx, nil, equipmentID)
	if err != nil {
		return nil, err
	}
	history, err := s.inspectionRepo.ListForEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	const sheet = "Inspections"
	f, err := newSheet(sheet, historyReportHeaders)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(history))
	for _, i := range history {
		rows = append(rows, []interface{}{
			i.ID, i.InspectionDate.String(), i.InspectorName, i.ResultStatusName,
			i.Notes.String, i.CreatedAt.Format(timestampLayout),
		})
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(sheet, "B", "D", 20)
	_ = f.SetColWidth(sheet, "E", "E", 50)

	return finish(f, fmt.Sprintf("inspections_%s.xlsx", fileSafe.Replace(e.CustomIdentifier)))
}
