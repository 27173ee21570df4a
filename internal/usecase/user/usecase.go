package user

import (
	"context"

	"go.uber.org/zap"

	domain "usuarios-api/internal/domain/user"
	"usuarios-api/pkg/logger"
)

// Repository defines the interface for user data access operations.
// Every method performs a single database operation on the shared connection.
type Repository interface {
	Create(ctx context.Context, u *domain.User) error                                                 // Persist a new user, setting its ID
	List(ctx context.Context) ([]domain.User, error)                                                  // All users in storage order
	UpdateByCedula(ctx context.Context, cedula float64, patch domain.UserPatch) (*domain.User, error) // Patch one user, return stored result
	DeleteByCedula(ctx context.Context, cedula float64) (*domain.User, error)                         // Remove one user, return last values
}

// Service implements Usecase. It maps transport DTOs to domain values and back;
// there is no business rule beyond what the repository enforces.
type Service struct {
	repo Repository  // Repository for data access
	log  *zap.Logger // Logger for structured logging
}

// New creates a new Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log}
}

// CreateUser persists a new user from the submitted fields.
func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	log := logger.WithContext(ctx, s.log)
	log.Info("creating user", zap.Bool("has_cedula", in.Cedula != nil))

	u := &domain.User{
		Nombre: in.Nombre,
		Cedula: in.Cedula,
		Email:  in.Email,
		Edad:   in.Edad,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	return &CreateUserResponse{User: toDTO(u)}, nil
}

// ListUsers returns every stored user.
func (s *Service) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	log := logger.WithContext(ctx, s.log)

	domainUsers, err := s.repo.List(ctx)
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i := range domainUsers {
		users[i] = toDTO(&domainUsers[i])
	}

	log.Debug("listed users", zap.Int("count", len(users)))
	return &ListUsersResponse{Users: users}, nil
}

// UpdateUser replaces the provided fields of the user matching in.Cedula.
func (s *Service) UpdateUser(ctx context.Context, in UpdateUserRequest) (*UpdateUserResponse, error) {
	ctx = logger.WithCedula(ctx, in.Cedula)
	log := logger.WithContext(ctx, s.log)
	log.Info("updating user")

	patch := domain.UserPatch{
		Nombre: in.Fields.Nombre,
		Cedula: in.Fields.Cedula,
		Email:  in.Fields.Email,
		Edad:   in.Fields.Edad,
	}

	u, err := s.repo.UpdateByCedula(ctx, in.Cedula, patch)
	if err != nil {
		log.Warn("failed to update user", zap.Error(err))
		return nil, err
	}

	return &UpdateUserResponse{User: toDTO(u)}, nil
}

// DeleteUser removes the user matching in.Cedula.
func (s *Service) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	ctx = logger.WithCedula(ctx, in.Cedula)
	log := logger.WithContext(ctx, s.log)
	log.Info("deleting user")

	u, err := s.repo.DeleteByCedula(ctx, in.Cedula)
	if err != nil {
		log.Warn("failed to delete user", zap.Error(err))
		return nil, err
	}

	return &DeleteUserResponse{User: toDTO(u)}, nil
}

func toDTO(u *domain.User) User {
	return User{
		ID:     u.ID,
		Nombre: u.Nombre,
		Cedula: u.Cedula,
		Email:  u.Email,
		Edad:   u.Edad,
	}
}
