package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ppe-tracker/internal/dto"
	"ppe-tracker/internal/entities"
	"ppe-tracker/internal/repositories"
	"ppe-tracker/pkg/types"
	"ppe-tracker/pkg/utils"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error)
	FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, req dto.CreateUserDTO) (*dto.UserDTO, error)
}

type UserService struct {
	userRepository repositories.UserRepositoryInterface
	logger         *zap.Logger
}

func NewUserService(userRepository repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{userRepository: userRepository, logger: logger}
}

func userEntityToDTO(u *entities.User) *dto.UserDTO {
	if u == nil {
		return nil
	}
	return &dto.UserDTO{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(timestampLayout),
	}
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error) {
	users, total, err := s.userRepository.GetUsers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		result = append(result, *userEntityToDTO(&users[i]))
	}
	return result, total, nil
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	u, err := s.userRepository.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return userEntityToDTO(u), nil
}

func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserDTO) (*dto.UserDTO, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.userRepository.CreateUser(ctx, entities.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user created", zap.Uint64("id", created.ID), zap.String("role", created.Role))
	return userEntityToDTO(created), nil
}
