package rbac

import (
	"sync"

	"go-silpa/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadUnitPolicy(unit string) error
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer) Service {
	return &service{
		repo:     repo,
		enforcer: enforcer,
	}
}

func (s *service) LoadUnitPolicy(unit string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadUnitPolicyUnlocked(unit)
}

func (s *service) loadUnitPolicyUnlocked(unit string) error {
	s.enforcer.ClearPolicy()

	userRoles, err := s.repo.GetUserRoles(unit)
	if err != nil {
		return err
	}

	for _, ur := range userRoles {
		if _, err := s.enforcer.AddGroupingPolicy(ur.UserID, ur.RoleID, unit); err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions(unit)
	if err != nil {
		return err
	}

	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.RoleID, unit, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadUnitPolicyUnlocked(req.Unit); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(
		req.UserID,
		req.Unit,
		req.Resource,
		req.Action,
	)
	if err != nil {
		zap.L().Named("rbac.service").Error("enforce failed",
			zap.String("user_id", req.UserID),
			zap.String("unit", req.Unit),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	return allowed, nil
}
