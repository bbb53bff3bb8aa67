package services

import (
	"context"
	"fmt"

	"bistro/internal/common"
	"bistro/internal/models"
	"bistro/internal/repositories"

	"github.com/google/uuid"
)

// RolesService is the single role predicate the authorization layer consults,
// plus the admin-only manager/delivery-crew group management.
type RolesService interface {
	HasRole(ctx context.Context, userID uuid.UUID, roleName string) (bool, error)
	ListManagers(ctx context.Context) ([]*models.User, error)
	GrantGroup(ctx context.Context, callerID uuid.UUID, username string) (string, error)
	RevokeGroup(ctx context.Context, callerID uuid.UUID, username string) (string, error)
}

type rolesService struct {
	userRepo  repositories.UserRepository
	groupRepo repositories.GroupRepository
}

func NewRolesService(userRepo repositories.UserRepository, groupRepo repositories.GroupRepository) RolesService {
	return &rolesService{
		userRepo:  userRepo,
		groupRepo: groupRepo,
	}
}

func (s *rolesService) HasRole(ctx context.Context, userID uuid.UUID, roleName string) (bool, error) {
	return s.groupRepo.IsMember(ctx, userID, roleName)
}

func (s *rolesService) ListManagers(ctx context.Context) ([]*models.User, error) {
	return s.groupRepo.ListMembers(ctx, models.GroupManager)
}

// GrantGroup adds the target user to a role group. Which group gets edited
// depends on the CALLER's own membership, not on any request parameter: a
// caller who is in the manager group edits the target's delivery-crew
// membership, while a plain staff admin edits manager membership (and mirrors
// the is_staff flag). Legacy behavior reproduced as-is; see DESIGN.md.
func (s *rolesService) GrantGroup(ctx context.Context, callerID uuid.UUID, username string) (string, error) {
	target, callerIsManager, err := s.resolve(ctx, callerID, username)
	if err != nil {
		return "", err
	}

	if callerIsManager {
		crew, err := s.groupRepo.GetByName(ctx, models.GroupDeliveryCrew)
		if err != nil {
			return "", err
		}
		if err := s.groupRepo.AddMember(ctx, target.ID, crew.ID); err != nil {
			return "", err
		}
		return fmt.Sprintf("User %s added to delivery crew", username), nil
	}

	managers, err := s.groupRepo.GetByName(ctx, models.GroupManager)
	if err != nil {
		return "", err
	}
	if err := s.groupRepo.AddMember(ctx, target.ID, managers.ID); err != nil {
		return "", err
	}
	if err := s.userRepo.SetStaff(ctx, target.ID, true); err != nil {
		return "", err
	}
	return fmt.Sprintf("User %s added to managers", username), nil
}

// RevokeGroup removes the target from the group chosen by the same
// caller-role branch as GrantGroup.
func (s *rolesService) RevokeGroup(ctx context.Context, callerID uuid.UUID, username string) (string, error) {
	target, callerIsManager, err := s.resolve(ctx, callerID, username)
	if err != nil {
		return "", err
	}

	if callerIsManager {
		crew, err := s.groupRepo.GetByName(ctx, models.GroupDeliveryCrew)
		if err != nil {
			return "", err
		}
		if err := s.groupRepo.RemoveMember(ctx, target.ID, crew.ID); err != nil {
			return "", err
		}
		return fmt.Sprintf("User %s removed from delivery crew", username), nil
	}

	managers, err := s.groupRepo.GetByName(ctx, models.GroupManager)
	if err != nil {
		return "", err
	}
	if err := s.groupRepo.RemoveMember(ctx, target.ID, managers.ID); err != nil {
		return "", err
	}
	if err := s.userRepo.SetStaff(ctx, target.ID, false); err != nil {
		return "", err
	}
	return fmt.Sprintf("User %s removed from managers", username), nil
}

func (s *rolesService) resolve(ctx context.Context, callerID uuid.UUID, username string) (*models.User, bool, error) {
	if username == "" {
		return nil, false, fmt.Errorf("%w: username is required", common.ErrValidation)
	}
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}
	callerIsManager, err := s.groupRepo.IsMember(ctx, callerID, models.GroupManager)
	if err != nil {
		return nil, false, err
	}
	return target, callerIsManager, nil
}
