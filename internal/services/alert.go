package services

import (
	"context"
	"time"

	"github.com/golang-sql/civil"
	"go.uber.org/zap"

	"ppe-tracker/internal/alerts"
	"ppe-tracker/internal/dto"
	"ppe-tracker/internal/repositories"
	"ppe-tracker/pkg/utils"
)

// AlertSnapshot is one classification run over the whole inventory.
type AlertSnapshot struct {
	Today  civil.Date
	Alerts []alerts.Alert
}

type AlertServiceInterface interface {
	ListAlerts(ctx context.Context, filter *alerts.Status) ([]dto.AlertDTO, error)
	EquipmentAlert(ctx context.Context, equipmentID uint64) (*dto.AlertDTO, error)
	Evaluate(ctx context.Context, filter *alerts.Status) (*AlertSnapshot, error)
	Today() civil.Date
}

type AlertService struct {
	equipmentRepo  repositories.EquipmentRepositoryInterface
	inspectionRepo repositories.InspectionRepositoryInterface
	location       *time.Location
	now            func() time.Time
	logger         *zap.Logger
}

func NewAlertService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	inspectionRepo repositories.InspectionRepositoryInterface,
	location *time.Location,
	logger *zap.Logger,
) *AlertService {
	return &AlertService{
		equipmentRepo:  equipmentRepo,
		inspectionRepo: inspectionRepo,
		location:       location,
		now:            time.Now,
		logger:         logger,
	}
}

func alertToDTO(a alerts.Alert) dto.AlertDTO {
	return dto.AlertDTO{
		EquipmentDTO:       *equipmentEntityToDTO(&a.Equipment),
		LastInspectionDate: a.LastInspectionDate,
		NextDueDate:        a.NextDueDate,
		Status:             a.Status.String(),
	}
}

// Today is the current calendar day in the configured time zone.
func (s *AlertService) Today() civil.Date {
	return utils.Today(s.now(), s.location)
}

func (s *AlertService) Evaluate(ctx context.Context, filter *alerts.Status) (*AlertSnapshot, error) {
	list, err := s.equipmentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := s.inspectionRepo.LatestDates(ctx)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	result, err := alerts.ClassifyAll(list, latest, today, filter)
	if err != nil {
		s.logger.Error("alert classification failed", zap.Error(err))
		return nil, err
	}
	return &AlertSnapshot{Today: today, Alerts: result}, nil
}

func (s *AlertService) ListAlerts(ctx context.Context, filter *alerts.Status) ([]dto.AlertDTO, error) {
	snapshot, err := s.Evaluate(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]dto.AlertDTO, 0, len(snapshot.Alerts))
	for _, a := range snapshot.Alerts {
		result = append(result, alertToDTO(a))
	}
	return result, nil
}

func (s *AlertService) EquipmentAlert(ctx context.Context, equipmentID uint64) (*dto.AlertDTO, error) {
	e, err := s.equipmentRepo.FindByID(ctx, nil, equipmentID)
	if err != nil {
		return nil, err
	}
	last, err := s.inspectionRepo.LatestDateFor(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	alert, err := alerts.Classify(*e, last, s.Today())
	if err != nil {
		return nil, err
	}
	out := alertToDTO(alert)
	return &out, nil
}
