package services

import (
	"context"

	"ppe-tracker/internal/dto"
	"ppe-tracker/internal/entities"
	"ppe-tracker/internal/repositories"
)

type StatusServiceInterface interface {
	GetStatuses(ctx context.Context) ([]dto.StatusDTO, error)
	FindStatus(ctx context.Context, id uint64) (*dto.StatusDTO, error)
}

type StatusService struct {
	repo repositories.StatusRepositoryInterface
}

func NewStatusService(repo repositories.StatusRepositoryInterface) StatusServiceInterface {
	return &StatusService{repo: repo}
}

func statusToDTO(s *entities.Status) dto.StatusDTO {
	return dto.StatusDTO{
		ID:        s.ID,
		Code:      s.Code,
		Name:      s.Name,
		CreatedAt: s.CreatedAt.Format(timestampLayout),
	}
}

func (s *StatusService) GetStatuses(ctx context.Context) ([]dto.StatusDTO, error) {
	list, err := s.repo.GetStatuses(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.StatusDTO, 0, len(list))
	for i := range list {
		result = append(result, statusToDTO(&list[i]))
	}
	return result, nil
}

func (s *StatusService) FindStatus(ctx context.Context, id uint64) (*dto.StatusDTO, error) {
	status, err := s.repo.FindStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	out := statusToDTO(status)
	return &out, nil
}
