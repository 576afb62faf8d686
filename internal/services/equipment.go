package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"ppe-tracker/internal/dto"
	"ppe-tracker/internal/entities"
	"ppe-tracker/internal/repositories"
	apperrors "ppe-tracker/pkg/errors"
	"ppe-tracker/pkg/types"
)

const timestampLayout = "2006-01-02 15:04:05"

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, req dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, req dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	equipmentRepo     repositories.EquipmentRepositoryInterface
	equipmentTypeRepo repositories.EquipmentTypeRepositoryInterface
	txManager         repositories.TxManagerInterface
	dashboardCache    DashboardInvalidator
	logger            *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	equipmentTypeRepo repositories.EquipmentTypeRepositoryInterface,
	txManager repositories.TxManagerInterface,
	dashboardCache DashboardInvalidator,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo:     equipmentRepo,
		equipmentTypeRepo: equipmentTypeRepo,
		txManager:         txManager,
		dashboardCache:    dashboardCache,
		logger:            logger,
	}
}

func equipmentEntityToDTO(e *entities.Equipment) *dto.EquipmentDTO {
	if e == nil {
		return nil
	}
	return &dto.EquipmentDTO{
		ID:                       e.ID,
		CustomIdentifier:         e.CustomIdentifier,
		Brand:                    e.Brand,
		Model:                    e.Model,
		SerialNumber:             e.SerialNumber,
		Size:                     e.Size,
		Color:                    e.Color,
		PurchaseDate:             e.PurchaseDate,
		ManufactureDate:          e.ManufactureDate,
		CommissionDate:           e.CommissionDate,
		InspectionIntervalMonths: e.InspectionIntervalMonths,
		EquipmentTypeID:          e.EquipmentTypeID,
		EquipmentType:            dto.ShortEquipmentTypeDTO{ID: e.EquipmentTypeID, Name: e.EquipmentTypeName},
		CreatedAt:                e.CreatedAt.Format(timestampLayout),
		UpdatedAt:                e.UpdatedAt.Format(timestampLayout),
	}
}

// validateEquipmentDates enforces manufacture <= purchase <= commission for
// every pair of dates that is present.
func validateEquipmentDates(e *entities.Equipment) error {
	if e.ManufactureDate != nil && e.PurchaseDate != nil && e.PurchaseDate.Before(*e.ManufactureDate) {
		return apperrors.NewInvalidInputError("purchase date %s is before manufacture date %s", e.PurchaseDate, e.ManufactureDate)
	}
	if e.PurchaseDate != nil && e.CommissionDate != nil && e.CommissionDate.Before(*e.PurchaseDate) {
		return apperrors.NewInvalidInputError("commission date %s is before purchase date %s", e.CommissionDate, e.PurchaseDate)
	}
	if e.ManufactureDate != nil && e.CommissionDate != nil && e.CommissionDate.Before(*e.ManufactureDate) {
		return apperrors.NewInvalidInputError("commission date %s is before manufacture date %s", e.CommissionDate, e.ManufactureDate)
	}
	if e.InspectionIntervalMonths < 1 {
		return apperrors.NewInvalidInputError("inspection interval must be at least 1 month")
	}
	return nil
}

func (s *EquipmentService) ensureType(ctx context.Context, id uint64) (string, error) {
	et, err := s.equipmentTypeRepo.FindEquipmentType(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NewInvalidInputError("equipment type %d does not exist", id)
		}
		return "", err
	}
	return et.Name, nil
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	list, total, err := s.equipmentRepo.GetEquipments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.EquipmentDTO, 0, len(list))
	for i := range list {
		result = append(result, *equipmentEntityToDTO(&list[i]))
	}
	return result, total, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	e, err := s.equipmentRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return equipmentEntityToDTO(e), nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, req dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	e := entities.Equipment{
		CustomIdentifier:         req.CustomIdentifier,
		Brand:                    req.Brand,
		Model:                    req.Model,
		SerialNumber:             req.SerialNumber,
		Size:                     req.Size,
		Color:                    req.Color,
		PurchaseDate:             req.PurchaseDate,
		ManufactureDate:          req.ManufactureDate,
		CommissionDate:           req.CommissionDate,
		InspectionIntervalMonths: req.InspectionIntervalMonths,
		EquipmentTypeID:          req.EquipmentTypeID,
	}
	if err := validateEquipmentDates(&e); err != nil {
		return nil, err
	}
	if _, err := s.ensureType(ctx, e.EquipmentTypeID); err != nil {
		return nil, err
	}

	id, err := s.equipmentRepo.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	s.logger.Info("equipment created", zap.Uint64("id", id), zap.String("customIdentifier", e.CustomIdentifier))
	s.dashboardCache.InvalidateDashboard(ctx)

	return s.FindEquipment(ctx, id)
}

func mergeEquipment(e *entities.Equipment, req dto.UpdateEquipmentDTO) {
	if req.CustomIdentifier != nil {
		e.CustomIdentifier = *req.CustomIdentifier
	}
	if req.Brand != nil {
		e.Brand = *req.Brand
	}
	if req.Model != nil {
		e.Model = *req.Model
	}
	if req.SerialNumber != nil {
		e.SerialNumber = *req.SerialNumber
	}
	if req.Size.Valid {
		e.Size = req.Size
	}
	if req.Color.Valid {
		e.Color = req.Color
	}
	if req.PurchaseDate != nil {
		e.PurchaseDate = req.PurchaseDate
	}
	if req.ManufactureDate != nil {
		e.ManufactureDate = req.ManufactureDate
	}
	if req.CommissionDate != nil {
		e.CommissionDate = req.CommissionDate
	}
	if req.InspectionIntervalMonths != nil {
		e.InspectionIntervalMonths = *req.InspectionIntervalMonths
	}
	if req.EquipmentTypeID != nil {
		e.EquipmentTypeID = *req.EquipmentTypeID
	}
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, req dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.equipmentRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}

		merged := *current
		mergeEquipment(&merged, req)
		if err := validateEquipmentDates(&merged); err != nil {
			return err
		}
		if merged.EquipmentTypeID != current.EquipmentTypeID {
			if _, err := s.ensureType(ctx, merged.EquipmentTypeID); err != nil {
				return err
			}
		}
		return s.equipmentRepo.Update(ctx, tx, id, merged)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("equipment updated", zap.Uint64("id", id))
	s.dashboardCache.InvalidateDashboard(ctx)
	return s.FindEquipment(ctx, id)
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	if err := s.equipmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("equipment deleted", zap.Uint64("id", id))
	s.dashboardCache.InvalidateDashboard(ctx)
	return nil
}
