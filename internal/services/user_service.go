package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/hosterlink/hosterlink-api/internal/dtos"
	"github.com/hosterlink/hosterlink-api/internal/models"
	"github.com/hosterlink/hosterlink-api/internal/policy"
	"github.com/hosterlink/hosterlink-api/internal/repositories"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

// UserService interface
type UserService interface {
	Get(ctx context.Context, actor policy.Actor, id string) (*models.User, error)
	List(ctx context.Context, actor policy.Actor, role string, page, pageSize int64) (*dtos.UserListResponse, error)
	Update(ctx context.Context, actor policy.Actor, id string, req dtos.UpdateUserRequest) (*models.User, error)
	Deactivate(ctx context.Context, actor policy.Actor, id string) error
}

type userService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Get(ctx context.Context, actor policy.Actor, id string) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, oid)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if user == nil {
		return nil, errHiddenRecord("user")
	}
	d := policy.Evaluate(actor, policy.ResourceUsers, policy.OpRead, policy.Ownership{RecordUserID: user.ID})
	if !d.Allowed() {
		return nil, errHiddenRecord("user")
	}
	return user.Redact(), nil
}

func (s *userService) List(ctx context.Context, actor policy.Actor, role string, page, pageSize int64) (*dtos.UserListResponse, error) {
	d := policy.Evaluate(actor, policy.ResourceUsers, policy.OpList, policy.Ownership{})
	if !d.Allowed() {
		return nil, errForbidden()
	}
	filter := bson.M{"isActive": true}
	if role != "" {
		rl, err := models.ParseRole(role)
		if err != nil {
			return nil, utils.NewValidation("invalid role", err)
		}
		filter["role"] = rl
	}
	for k, v := range d.Filter {
		filter[k] = v
	}
	page, pageSize = repositories.ClampPage(page, pageSize)
	users, total, err := s.users.Find(ctx, filter, page, pageSize)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	for _, u := range users {
		u.Redact()
	}
	return &dtos.UserListResponse{Users: users, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *userService) Update(ctx context.Context, actor policy.Actor, id string, req dtos.UpdateUserRequest) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, oid)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if user == nil {
		return nil, errHiddenRecord("user")
	}
	d := policy.Evaluate(actor, policy.ResourceUsers, policy.OpUpdate, policy.Ownership{RecordUserID: user.ID})
	if !d.Allowed() {
		return nil, errForbidden()
	}

	// Only the profile fields move. Email, role and credentials never
	// change through this path.
	user.Name = strings.TrimSpace(req.Name)
	user.Phone = strings.TrimSpace(req.Phone)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, utils.NewInternal(err)
	}
	return user.Redact(), nil
}

// Deactivate soft-deletes the account. Admin only: there is no rule table
// entry for ResourceUsers/OpDelete, so every other role is denied.
func (s *userService) Deactivate(ctx context.Context, actor policy.Actor, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	d := policy.Evaluate(actor, policy.ResourceUsers, policy.OpDelete, policy.Ownership{RecordUserID: oid})
	if !d.Allowed() {
		return errForbidden()
	}
	if err := s.users.SetActive(ctx, oid, false); err != nil {
		return mapMiss(err, "user")
	}
	return nil
}
