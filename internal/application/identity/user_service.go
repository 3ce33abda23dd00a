package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/company"
	"github.com/syncworks/backend/internal/domain/identity"
	"github.com/syncworks/backend/internal/domain/shared"
	"github.com/syncworks/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService handles user management operations for company admins
type UserService struct {
	userRepo     identity.UserRepository
	referrerRepo company.ReferrerRepository
	blacklist    auth.TokenBlacklist
	sessionTTL   time.Duration
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewUserService creates a new user service. sessionTTL is how long a
// user-wide revocation must be remembered, normally the refresh token lifetime.
func NewUserService(
	userRepo identity.UserRepository,
	referrerRepo company.ReferrerRepository,
	blacklist auth.TokenBlacklist,
	sessionTTL time.Duration,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		referrerRepo: referrerRepo,
		blacklist:    blacklist,
		sessionTTL:   sessionTTL,
		publisher:    publisher,
		logger:       logger,
	}
}

// Create creates a new active user
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	s.logger.Info("Creating new user",
		zap.String("role", input.Role),
		zap.String("company_id", input.CompanyID.String()))

	email := strings.ToLower(strings.TrimSpace(input.Email))
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to check email existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_EXISTS", "Email already exists")
	}

	role := identity.Role(input.Role)
	if err := s.checkReferrer(ctx, input.CompanyID, role, input.ReferrerID); err != nil {
		return nil, err
	}

	user, err := identity.NewUser(input.CompanyID, email, input.Password, role, input.ReferrerID)
	if err != nil {
		return nil, err
	}
	if input.DisplayName != "" {
		if err := user.SetDisplayName(input.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, err
	}
	s.publish(ctx, user)

	s.logger.Info("User created", zap.String("user_id", user.ID.String()))
	return toUserDTO(user), nil
}

// GetByID returns a user of the company
func (s *UserService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

// List returns a page of the company's users
func (s *UserService) List(ctx context.Context, companyID uuid.UUID, filter UserListFilter) (*UserListResult, error) {
	f := identity.NewUserFilter()
	f.Keyword = filter.Keyword
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.SortBy != "" {
		f.SortBy = filter.SortBy
	}
	if filter.SortOrder != "" {
		f.SortOrder = filter.SortOrder
	}
	if filter.Status != "" {
		st := identity.UserStatus(filter.Status)
		f.Status = &st
	}
	if filter.Role != "" {
		r := identity.Role(filter.Role)
		f.Role = &r
	}

	users, total, err := s.userRepo.FindAll(ctx, companyID, f)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, err
	}

	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = *toUserDTO(u)
	}
	pageSize := f.Limit()
	return &UserListResult{
		Users:      dtos,
		Total:      total,
		Page:       f.Page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

// Update changes display name and role. A role change signs the user out.
func (s *UserService) Update(ctx context.Context, companyID, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.userRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		if err := user.SetDisplayName(*input.DisplayName); err != nil {
			return nil, err
		}
	}

	roleChanged := false
	if input.Role != nil || input.ReferrerID != nil {
		role := user.Role
		if input.Role != nil {
			role = identity.Role(*input.Role)
		}
		referrerID := user.ReferrerID
		if input.ReferrerID != nil {
			referrerID = input.ReferrerID
		}
		if err := s.checkReferrer(ctx, companyID, role, referrerID); err != nil {
			return nil, err
		}
		roleChanged = role != user.Role || !sameID(referrerID, user.ReferrerID)
		if err := user.ChangeRole(role, referrerID); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if roleChanged {
		s.revokeSessions(ctx, user)
	}
	return toUserDTO(user), nil
}

// Activate unlocks or reactivates a user
func (s *UserService) Activate(ctx context.Context, companyID, id uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := user.Activate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("User activated", zap.String("user_id", id.String()))
	return toUserDTO(user), nil
}

// Deactivate blocks a user and revokes their sessions. Admins cannot
// deactivate themselves.
func (s *UserService) Deactivate(ctx context.Context, companyID, id, actorID uuid.UUID) (*UserDTO, error) {
	if id == actorID {
		return nil, shared.NewDomainError("CANNOT_DEACTIVATE_SELF", "You cannot deactivate your own account")
	}
	user, err := s.userRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := user.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.publish(ctx, user)
	s.revokeSessions(ctx, user)

	s.logger.Info("User deactivated", zap.String("user_id", id.String()))
	return toUserDTO(user), nil
}

// ResetPassword sets a new password and revokes the user's sessions
func (s *UserService) ResetPassword(ctx context.Context, companyID, id uuid.UUID, input ResetPasswordInput) error {
	user, err := s.userRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return err
	}
	if err := user.SetPassword(input.Password); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	s.publish(ctx, user)
	s.revokeSessions(ctx, user)

	s.logger.Info("User password reset", zap.String("user_id", id.String()))
	return nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, companyID, id, actorID uuid.UUID) error {
	if id == actorID {
		return shared.NewDomainError("CANNOT_DELETE_SELF", "You cannot delete your own account")
	}
	user, err := s.userRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return err
	}
	if err := s.userRepo.DeleteForCompany(ctx, companyID, id); err != nil {
		return err
	}
	s.revokeSessions(ctx, user)
	s.logger.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *UserService) checkReferrer(ctx context.Context, companyID uuid.UUID, role identity.Role, referrerID *uuid.UUID) error {
	if role != identity.RoleReferrer || referrerID == nil {
		return nil
	}
	if _, err := s.referrerRepo.FindByIDForCompany(ctx, companyID, *referrerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("REFERRER_NOT_FOUND", "Referrer not found")
		}
		return err
	}
	return nil
}

func (s *UserService) revokeSessions(ctx context.Context, user *identity.User) {
	if s.blacklist == nil {
		return
	}
	if err := s.blacklist.RevokeUser(ctx, user.ID.String(), s.sessionTTL); err != nil {
		s.logger.Error("Failed to revoke user sessions",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}
}

func (s *UserService) publish(ctx context.Context, user *identity.User) {
	if err := shared.PublishAndClear(ctx, s.publisher, user); err != nil {
		s.logger.Warn("Failed to publish user events", zap.Error(err))
	}
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
