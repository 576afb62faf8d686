package services

import (
	"context"

	"go.uber.org/zap"

	"ppe-tracker/internal/dto"
	"ppe-tracker/internal/entities"
	"ppe-tracker/internal/repositories"
	"ppe-tracker/pkg/types"
)

type EquipmentTypeServiceInterface interface {
	GetEquipmentTypes(ctx context.Context, filter types.Filter) ([]dto.EquipmentTypeDTO, uint64, error)
	FindEquipmentType(ctx context.Context, id uint64) (*dto.EquipmentTypeDTO, error)
	CreateEquipmentType(ctx context.Context, req dto.CreateEquipmentTypeDTO) (*dto.EquipmentTypeDTO, error)
	UpdateEquipmentType(ctx context.Context, id uint64, req dto.UpdateEquipmentTypeDTO) (*dto.EquipmentTypeDTO, error)
	DeleteEquipmentType(ctx context.Context, id uint64) error
}

type EquipmentTypeService struct {
	etRepository repositories.EquipmentTypeRepositoryInterface
	logger       *zap.Logger
}

func NewEquipmentTypeService(etRepo repositories.EquipmentTypeRepositoryInterface, logger *zap.Logger) EquipmentTypeServiceInterface {
	return &EquipmentTypeService{etRepository: etRepo, logger: logger}
}

func etEntityToDTO(entity *entities.EquipmentType) *dto.EquipmentTypeDTO {
	if entity == nil {
		return nil
	}
	return &dto.EquipmentTypeDTO{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		CreatedAt:   entity.CreatedAt.Format(timestampLayout),
		UpdatedAt:   entity.UpdatedAt.Format(timestampLayout),
	}
}

func (s *EquipmentTypeService) GetEquipmentTypes(ctx context.Context, filter types.Filter) ([]dto.EquipmentTypeDTO, uint64, error) {
	list, total, err := s.etRepository.GetEquipmentTypes(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]dto.EquipmentTypeDTO, 0, len(list))
	for i := range list {
		dtos = append(dtos, *etEntityToDTO(&list[i]))
	}
	return dtos, total, nil
}

func (s *EquipmentTypeService) FindEquipmentType(ctx context.Context, id uint64) (*dto.EquipmentTypeDTO, error) {
	entity, err := s.etRepository.FindEquipmentType(ctx, id)
	if err != nil {
		return nil, err
	}
	return etEntityToDTO(entity), nil
}

func (s *EquipmentTypeService) CreateEquipmentType(ctx context.Context, req dto.CreateEquipmentTypeDTO) (*dto.EquipmentTypeDTO, error) {
	created, err := s.etRepository.CreateEquipmentType(ctx, entities.EquipmentType{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("equipment type created", zap.Uint64("id", created.ID), zap.String("name", created.Name))
	return etEntityToDTO(created), nil
}

func (s *EquipmentTypeService) UpdateEquipmentType(ctx context.Context, id uint64, req dto.UpdateEquipmentTypeDTO) (*dto.EquipmentTypeDTO, error) {
	current, err := s.etRepository.FindEquipmentType(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Description.Valid {
		current.Description = req.Description
	}

	updated, err := s.etRepository.UpdateEquipmentType(ctx, id, *current)
	if err != nil {
		return nil, err
	}
	return etEntityToDTO(updated), nil
}

func (s *EquipmentTypeService) DeleteEquipmentType(ctx context.Context, id uint64) error {
	return s.etRepository.DeleteEquipmentType(ctx, id)
}
