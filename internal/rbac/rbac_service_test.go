package rbac

import (
	"testing"

	"go-silpa/internal/domain"
	"go-silpa/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

type fakeRBACRepo struct {
	userRoles map[string][]UserRoleRow
	rolePerms map[string][]RolePermissionRow
	err       error
}

func (f *fakeRBACRepo) GetUserRoles(unit string) ([]UserRoleRow, error) {
	return f.userRoles[unit], f.err
}

func (f *fakeRBACRepo) GetRolePermissions(unit string) ([]RolePermissionRow, error) {
	return f.rolePerms[unit], f.err
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer("infra/model.conf")
	assert.NoError(t, err)
	return NewService(repo, enforcer)
}

func TestEnforce_StudentCanCreatePermit(t *testing.T) {
	repo := &fakeRBACRepo{
		userRoles: map[string][]UserRoleRow{
			"FTI": {{UserID: "user-1", RoleID: "STUDENT"}},
		},
		rolePerms: map[string][]RolePermissionRow{
			"FTI": {
				{RoleID: "STUDENT", Resource: "permit", Action: "create"},
				{RoleID: "STUDENT", Resource: "permit", Action: "read"},
			},
		},
	}
	svc := newTestService(t, repo)

	allowed, err := svc.Enforce(domain.EnforceRequest{
		UserID:   "user-1",
		Unit:     "FTI",
		Resource: "permit",
		Action:   "create",
	})

	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestEnforce_StudentCannotApprove(t *testing.T) {
	repo := &fakeRBACRepo{
		userRoles: map[string][]UserRoleRow{
			"FTI": {{UserID: "user-1", RoleID: "STUDENT"}},
		},
		rolePerms: map[string][]RolePermissionRow{
			"FTI": {
				{RoleID: "STUDENT", Resource: "permit", Action: "create"},
				{RoleID: "ADMIN", Resource: "permit", Action: "approve"},
			},
		},
	}
	svc := newTestService(t, repo)

	allowed, err := svc.Enforce(domain.EnforceRequest{
		UserID:   "user-1",
		Unit:     "FTI",
		Resource: "permit",
		Action:   "approve",
	})

	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestEnforce_RoleScopedToUnit(t *testing.T) {
	// Admin FTI tidak otomatis admin di unit lain.
	repo := &fakeRBACRepo{
		userRoles: map[string][]UserRoleRow{
			"FTI": {{UserID: "admin-1", RoleID: "ADMIN"}},
		},
		rolePerms: map[string][]RolePermissionRow{
			"FTI": {{RoleID: "ADMIN", Resource: "permit", Action: "approve"}},
		},
	}
	svc := newTestService(t, repo)

	allowed, err := svc.Enforce(domain.EnforceRequest{
		UserID:   "admin-1",
		Unit:     "FTI",
		Resource: "permit",
		Action:   "approve",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce(domain.EnforceRequest{
		UserID:   "admin-1",
		Unit:     "FEB",
		Resource: "permit",
		Action:   "approve",
	})
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestEnforce_RepoErrorPropagates(t *testing.T) {
	repo := &fakeRBACRepo{err: assert.AnError}
	svc := newTestService(t, repo)

	_, err := svc.Enforce(domain.EnforceRequest{
		UserID:   "user-1",
		Unit:     "FTI",
		Resource: "permit",
		Action:   "read",
	})
	assert.Error(t, err)
}

func TestLoadUnitPolicy_ReplacesPrevious(t *testing.T) {
	repo := &fakeRBACRepo{
		userRoles: map[string][]UserRoleRow{
			"FTI": {{UserID: "user-1", RoleID: "STUDENT"}},
		},
		rolePerms: map[string][]RolePermissionRow{
			"FTI": {{RoleID: "STUDENT", Resource: "permit", Action: "create"}},
		},
	}
	svc := newTestService(t, repo)
	assert.NoError(t, svc.LoadUnitPolicy("FTI"))

	// Setelah data berubah, muat ulang dan kebijakan lama hilang.
	repo.userRoles = nil
	repo.rolePerms = nil
	assert.NoError(t, svc.LoadUnitPolicy("FTI"))

	allowed, err := svc.Enforce(domain.EnforceRequest{
		UserID:   "user-1",
		Unit:     "FTI",
		Resource: "permit",
		Action:   "create",
	})
	assert.NoError(t, err)
	assert.False(t, allowed)
}
