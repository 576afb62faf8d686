package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"ppe-tracker/internal/dto"
	"ppe-tracker/internal/entities"
	"ppe-tracker/internal/events"
	"ppe-tracker/internal/repositories"
	apperrors "ppe-tracker/pkg/errors"
	"ppe-tracker/pkg/eventbus"
	"ppe-tracker/pkg/types"
	"ppe-tracker/pkg/utils"
)

type InspectionServiceInterface interface {
	GetInspections(ctx context.Context, filter types.Filter) ([]dto.InspectionDTO, uint64, error)
	FindInspection(ctx context.Context, id uint64) (*dto.InspectionDTO, error)
	ListForEquipment(ctx context.Context, equipmentID uint64) ([]dto.InspectionDTO, error)
	CreateInspection(ctx context.Context, req dto.CreateInspectionDTO) (*dto.InspectionDTO, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

type InspectionService struct {
	inspectionRepo repositories.InspectionRepositoryInterface
	equipmentRepo  repositories.EquipmentRepositoryInterface
	statusRepo     repositories.StatusRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	txManager      repositories.TxManagerInterface
	dashboardCache DashboardInvalidator
	publisher      EventPublisher
	location       *time.Location
	now            func() time.Time
	logger         *zap.Logger
}

func NewInspectionService(
	inspectionRepo repositories.InspectionRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	statusRepo repositories.StatusRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	txManager repositories.TxManagerInterface,
	dashboardCache DashboardInvalidator,
	publisher EventPublisher,
	location *time.Location,
	logger *zap.Logger,
) InspectionServiceInterface {
	return &InspectionService{
		inspectionRepo: inspectionRepo,
		equipmentRepo:  equipmentRepo,
		statusRepo:     statusRepo,
		userRepo:       userRepo,
		txManager:      txManager,
		dashboardCache: dashboardCache,
		publisher:      publisher,
		location:       location,
		now:            time.Now,
		logger:         logger,
	}
}

func inspectionEntityToDTO(i *entities.Inspection) *dto.InspectionDTO {
	if i == nil {
		return nil
	}
	return &dto.InspectionDTO{
		ID:             i.ID,
		EquipmentID:    i.EquipmentID,
		Equipment:      dto.ShortEquipmentDTO{ID: i.EquipmentID, CustomIdentifier: i.EquipmentIdentifier},
		InspectionDate: i.InspectionDate,
		InspectorID:    i.InspectorID,
		Inspector:      dto.ShortUserDTO{ID: i.InspectorID, FullName: i.InspectorName},
		ResultStatusID: i.ResultStatusID,
		ResultStatus:   dto.ShortStatusDTO{ID: i.ResultStatusID, Code: i.ResultStatusCode, Name: i.ResultStatusName},
		Notes:          i.Notes,
		CreatedAt:      i.CreatedAt.Format(timestampLayout),
	}
}

func inspectionsToDTO(list []entities.Inspection) []dto.InspectionDTO {
	result := make([]dto.InspectionDTO, 0, len(list))
	for i := range list {
		result = append(result, *inspectionEntityToDTO(&list[i]))
	}
	return result
}

func (s *InspectionService) GetInspections(ctx context.Context, filter types.Filter) ([]dto.InspectionDTO, uint64, error) {
	list, total, err := s.inspectionRepo.GetInspections(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return inspectionsToDTO(list), total, nil
}

func (s *InspectionService) FindInspection(ctx context.Context, id uint64) (*dto.InspectionDTO, error) {
	i, err := s.inspectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return inspectionEntityToDTO(i), nil
}

func (s *InspectionService) ListForEquipment(ctx context.Context, equipmentID uint64) ([]dto.InspectionDTO, error) {
	if _, err := s.equipmentRepo.FindByID(ctx, nil, equipmentID); err != nil {
		return nil, err
	}
	list, err := s.inspectionRepo.ListForEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	return inspectionsToDTO(list), nil
}

func (s *InspectionService) resolveInspector(ctx context.Context, requested *uint64) (uint64, error) {
	inspectorID := uint64(0)
	if requested != nil {
		inspectorID = *requested
	} else {
		id, err := utils.GetUserIDFromCtx(ctx)
		if err != nil {
			return 0, err
		}
		inspectorID = id
	}

	inspector, err := s.userRepo.FindUserByID(ctx, inspectorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, apperrors.NewHttpError(http.StatusBadRequest, "Unknown inspector", err, map[string]interface{}{"inspectorId": inspectorID})
		}
		return 0, err
	}
	if !inspector.CanInspect() {
		return 0, apperrors.NewHttpError(http.StatusBadRequest, "User is not allowed to inspect equipment", nil, map[string]interface{}{"inspectorId": inspectorID})
	}
	return inspector.ID, nil
}

func (s *InspectionService) CreateInspection(ctx context.Context, req dto.CreateInspectionDTO) (*dto.InspectionDTO, error) {
	if !req.InspectionDate.IsValid() {
		return nil, apperrors.NewInvalidInputError("inspection date is required")
	}
	today := utils.Today(s.now(), s.location)
	if req.InspectionDate.After(today) {
		return nil, apperrors.NewInvalidInputError("inspection date %s is in the future", req.InspectionDate)
	}

	status, err := s.statusRepo.FindStatus(ctx, req.ResultStatusID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, "Unknown result status", err, map[string]interface{}{"resultStatusId": req.ResultStatusID})
		}
		return nil, err
	}

	inspectorID, err := s.resolveInspector(ctx, req.InspectorID)
	if err != nil {
		return nil, err
	}

	var newID uint64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.equipmentRepo.FindByID(ctx, tx, req.EquipmentID); err != nil {
			return err
		}
		id, err := s.inspectionRepo.Create(ctx, tx, entities.Inspection{
			EquipmentID:    req.EquipmentID,
			InspectionDate: req.InspectionDate,
			InspectorID:    inspectorID,
			ResultStatusID: req.ResultStatusID,
			Notes:          req.Notes,
		})
		newID = id
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("inspection recorded",
		zap.Uint64("id", newID),
		zap.Uint64("equipmentId", req.EquipmentID),
		zap.String("date", req.InspectionDate.String()),
	)
	s.dashboardCache.InvalidateDashboard(ctx)
	s.publisher.Publish(ctx, events.InspectionRecordedEvent{
		InspectionID:     newID,
		EquipmentID:      req.EquipmentID,
		InspectionDate:   req.InspectionDate,
		InspectorID:      inspectorID,
		ResultStatusCode: status.Code,
	})

	return s.FindInspection(ctx, newID)
}
