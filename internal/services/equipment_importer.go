package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/golang-sql/civil"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"ppe-tracker/internal/dto"
	"ppe-tracker/internal/entities"
	"ppe-tracker/internal/repositories"
	apperrors "ppe-tracker/pkg/errors"
	"ppe-tracker/pkg/utils"
)

type importColumn int

const (
	colIdentifier importColumn = iota
	colType
	colBrand
	colModel
	colSerial
	colSize
	colColor
	colPurchase
	colManufacture
	colCommission
	colInterval
	columnCount
)

// importHeaderAliases maps a header keyword to its column. Matching is
// case-insensitive and by substring.
var importHeaderAliases = []struct {
	keyword string
	column  importColumn
}{
	{"identifier", colIdentifier},
	{"type", colType},
	{"brand", colBrand},
	{"model", colModel},
	{"serial", colSerial},
	{"size", colSize},
	{"color", colColor},
	{"colour", colColor},
	{"purchase", colPurchase},
	{"manufactur", colManufacture},
	{"commission", colCommission},
	{"interval", colInterval},
}

var requiredImportColumns = []importColumn{colIdentifier, colType, colBrand, colModel, colSerial, colCommission, colInterval}

type EquipmentImportServiceInterface interface {
	Import(ctx context.Context, r io.Reader) (*dto.ImportResultDTO, error)
}

type EquipmentImportService struct {
	equipmentRepo     repositories.EquipmentRepositoryInterface
	equipmentTypeRepo repositories.EquipmentTypeRepositoryInterface
	dashboardCache    DashboardInvalidator
	logger            *zap.Logger
}

func NewEquipmentImportService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	equipmentTypeRepo repositories.EquipmentTypeRepositoryInterface,
	dashboardCache DashboardInvalidator,
	logger *zap.Logger,
) EquipmentImportServiceInterface {
	return &EquipmentImportService{
		equipmentRepo:     equipmentRepo,
		equipmentTypeRepo: equipmentTypeRepo,
		dashboardCache:    dashboardCache,
		logger:            logger,
	}
}

// findHeader scans each sheet for the first row naming every required column.
func findHeader(f *excelize.File) (rows [][]string, headerRow int, index [columnCount]int, err error) {
	for _, sheet := range f.GetSheetList() {
		sheetRows, err := f.GetRows(sheet)
		if err != nil {
			return nil, 0, index, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		for rIdx, row := range sheetRows {
			for i := range index {
				index[i] = -1
			}
			for cIdx, name := range row {
				lower := strings.ToLower(strings.TrimSpace(name))
				for _, alias := range importHeaderAliases {
					if index[alias.column] == -1 && strings.Contains(lower, alias.keyword) {
						index[alias.column] = cIdx
						break
					}
				}
			}

			complete := true
			for _, c := range requiredImportColumns {
				if index[c] == -1 {
					complete = false
					break
				}
			}
			if complete {
				return sheetRows, rIdx, index, nil
			}
		}
	}
	return nil, 0, index, apperrors.NewInvalidInputError(
		"header row not found: identifier, type, brand, model, serial, commission and interval columns are required")
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseSheetDate accepts text dates and Excel serial day numbers.
func parseSheetDate(raw string) (*civil.Date, error) {
	if raw == "" {
		return nil, nil
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return nil, err
		}
		d := civil.DateOf(t)
		return &d, nil
	}
	d, err := utils.ParseDateFlexible(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func optionalText(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

func (s *EquipmentImportService) Import(ctx context.Context, r io.Reader) (*dto.ImportResultDTO, error) {
	started := time.Now()

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("file is not a readable XLSX workbook: %v", err)
	}
	defer f.Close()

	rows, headerRow, index, err := findHeader(f)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResultDTO{Errors: []dto.ImportRowErrorDTO{}}
	typeIDs := make(map[string]uint64)
	seen := make(map[string]bool)

	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		identifier := cell(row, index[colIdentifier])
		if identifier == "" {
			continue
		}
		if seen[identifier] {
			result.Skipped++
			continue
		}
		seen[identifier] = true

		e, err := s.parseRow(ctx, row, index, typeIDs)
		if err != nil {
			result.Errors = append(result.Errors, dto.ImportRowErrorDTO{Row: lineNum, Reason: err.Error()})
			continue
		}

		exists, err := s.equipmentRepo.ExistsByCustomIdentifier(ctx, e.CustomIdentifier)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Skipped++
			continue
		}

		if _, err := s.equipmentRepo.Create(ctx, *e); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				result.Skipped++
				continue
			}
			var invalid *apperrors.InvalidInputError
			if errors.As(err, &invalid) {
				result.Errors = append(result.Errors, dto.ImportRowErrorDTO{Row: lineNum, Reason: invalid.Message})
				continue
			}
			return nil, err
		}
		result.Created++
	}

	if result.Created > 0 {
		s.dashboardCache.InvalidateDashboard(ctx)
	}
	result.Duration = time.Since(started).Round(time.Millisecond).String()

	s.logger.Info("equipment import finished",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func (s *EquipmentImportService) parseRow(ctx context.Context, row []string, index [columnCount]int, typeIDs map[string]uint64) (*entities.Equipment, error) {
	e := &entities.Equipment{
		CustomIdentifier: cell(row, index[colIdentifier]),
		Brand:            cell(row, index[colBrand]),
		Model:            cell(row, index[colModel]),
		SerialNumber:     cell(row, index[colSerial]),
		Size:             optionalText(cell(row, index[colSize])),
		Color:            optionalText(cell(row, index[colColor])),
	}
	if e.Brand == "" || e.Model == "" || e.SerialNumber == "" {
		return nil, fmt.Errorf("brand, model and serial number are required")
	}

	var err error
	if e.CommissionDate, err = parseSheetDate(cell(row, index[colCommission])); err != nil || e.CommissionDate == nil {
		return nil, fmt.Errorf("invalid commission date %q", cell(row, index[colCommission]))
	}
	if e.PurchaseDate, err = parseSheetDate(cell(row, index[colPurchase])); err != nil {
		return nil, fmt.Errorf("invalid purchase date %q", cell(row, index[colPurchase]))
	}
	if e.ManufactureDate, err = parseSheetDate(cell(row, index[colManufacture])); err != nil {
		return nil, fmt.Errorf("invalid manufacture date %q", cell(row, index[colManufacture]))
	}

	interval, err := strconv.Atoi(cell(row, index[colInterval]))
	if err != nil || interval < 1 {
		return nil, fmt.Errorf("invalid inspection interval %q", cell(row, index[colInterval]))
	}
	e.InspectionIntervalMonths = interval

	if err := validateEquipmentDates(e); err != nil {
		return nil, err
	}

	typeName := cell(row, index[colType])
	typeID, ok := typeIDs[strings.ToLower(typeName)]
	if !ok {
		et, err := s.equipmentTypeRepo.FindByName(ctx, typeName)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("unknown equipment type %q", typeName)
			}
			return nil, err
		}
		typeID = et.ID
		typeIDs[strings.ToLower(typeName)] = typeID
	}
	e.EquipmentTypeID = typeID

	return e, nil
}
