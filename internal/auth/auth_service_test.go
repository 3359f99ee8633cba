package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-silpa/internal/auth"
	autherrors "go-silpa/internal/auth/errors"
	"go-silpa/internal/domain"
	"go-silpa/internal/student"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type fakeAuthRepo struct {
	byEmail map[string]*auth.User
	byID    map[uuid.UUID]*auth.User
	created []*auth.User

	createErr error
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		byEmail: map[string]*auth.User{},
		byID:    map[uuid.UUID]*auth.User{},
	}
}

func (f *fakeAuthRepo) add(u *auth.User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
}

func (f *fakeAuthRepo) Create(_ context.Context, u *auth.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, u)
	f.add(u)
	return nil
}

func (f *fakeAuthRepo) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

func (f *fakeAuthRepo) GetByID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

type fakeRBAC struct {
	loadedUnits []string
	loadErr     error
}

func (f *fakeRBAC) LoadUnitPolicy(unit string) error {
	if f.loadErr != nil {
		return f.loadErr
	}
	f.loadedUnits = append(f.loadedUnits, unit)
	return nil
}

func (f *fakeRBAC) Enforce(domain.EnforceRequest) (bool, error) { return true, nil }

type fakeStudentRepo struct {
	students map[string]*student.Student
}

func (f *fakeStudentRepo) WithTx(*sql.Tx) student.Repository            { return f }
func (f *fakeStudentRepo) Create(context.Context, *student.Student) error { return nil }
func (f *fakeStudentRepo) FindAll(context.Context, string) ([]student.Student, error) {
	return nil, nil
}
func (f *fakeStudentRepo) Update(context.Context, *student.Student) error { return nil }

func (f *fakeStudentRepo) FindByID(_ context.Context, id string) (*student.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return s, nil
}

func (f *fakeStudentRepo) FindByNIM(_ context.Context, nim string) (*student.Student, error) {
	return nil, errors.New("record not found")
}

func newStudentUser(t *testing.T, password string) (*auth.User, uuid.UUID) {
	t.Helper()
	pw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)

	studentID := uuid.New()
	return &auth.User{
		ID:        uuid.New(),
		StudentID: &studentID,
		Name:      "Siti Rahma",
		Email:     "siti@kampus.ac.id",
		Password:  string(pw),
		Role:      "STUDENT",
		Unit:      "FIK",
		IsActive:  true,
	}, studentID
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	t.Run("Success Login", func(t *testing.T) {
		repo := newFakeAuthRepo()
		rbacSvc := &fakeRBAC{}
		user, studentID := newStudentUser(t, "password123")
		repo.add(user)

		service := auth.NewService(repo, rbacSvc, &fakeStudentRepo{})

		token, refreshToken, resp, err := service.Login(ctx, user.Email, "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, user.Email, resp.Email)
		assert.Equal(t, studentID.String(), resp.StudentID)
		assert.Equal(t, "FIK", resp.Unit)
		assert.Equal(t, []string{"FIK"}, rbacSvc.loadedUnits)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		repo := newFakeAuthRepo()
		user, _ := newStudentUser(t, "password123")
		repo.add(user)

		service := auth.NewService(repo, &fakeRBAC{}, &fakeStudentRepo{})

		_, _, _, err := service.Login(ctx, user.Email, "wrongpass")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		service := auth.NewService(newFakeAuthRepo(), &fakeRBAC{}, &fakeStudentRepo{})

		_, _, _, err := service.Login(ctx, "nobody@kampus.ac.id", "password123")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("Inactive Account", func(t *testing.T) {
		repo := newFakeAuthRepo()
		user, _ := newStudentUser(t, "password123")
		user.IsActive = false
		repo.add(user)

		service := auth.NewService(repo, &fakeRBAC{}, &fakeStudentRepo{})

		_, _, _, err := service.Login(ctx, user.Email, "password123")
		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestService_RefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	repo := newFakeAuthRepo()
	user, _ := newStudentUser(t, "password123")
	repo.add(user)

	service := auth.NewService(repo, &fakeRBAC{}, &fakeStudentRepo{})

	t.Run("Valid Refresh", func(t *testing.T) {
		_, refreshToken, _, err := service.Login(ctx, user.Email, "password123")
		assert.NoError(t, err)

		newAccess, newRefresh, resp, err := service.RefreshToken(ctx, refreshToken)
		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		_, _, _, err := service.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	t.Run("Success Register", func(t *testing.T) {
		repo := newFakeAuthRepo()
		rbacSvc := &fakeRBAC{}
		sID := uuid.New()
		studentRepo := &fakeStudentRepo{students: map[string]*student.Student{
			sID.String(): {ID: sID, FullName: "Siti Rahma", Unit: "FIK"},
		}}

		service := auth.NewService(repo, rbacSvc, studentRepo)

		resp, err := service.Register(ctx, auth.RegisterRequest{
			StudentID: sID.String(),
			Email:     "siti@kampus.ac.id",
			Name:      "Siti Rahma",
			Password:  "password123",
		})

		assert.NoError(t, err)
		assert.Equal(t, "STUDENT", resp.Role)
		assert.Equal(t, "FIK", resp.Unit)
		assert.Equal(t, sID.String(), resp.StudentID)
		assert.Len(t, repo.created, 1)
		// Password tidak boleh tersimpan plaintext
		assert.NotEqual(t, "password123", repo.created[0].Password)
	})

	t.Run("Student Not Found", func(t *testing.T) {
		service := auth.NewService(newFakeAuthRepo(), &fakeRBAC{}, &fakeStudentRepo{students: map[string]*student.Student{}})

		_, err := service.Register(ctx, auth.RegisterRequest{
			StudentID: uuid.New().String(),
			Email:     "ghost@kampus.ac.id",
			Name:      "Ghost",
			Password:  "password123",
		})
		assert.Error(t, err)
	})
}

func TestService_GetMe(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	repo := newFakeAuthRepo()
	user, _ := newStudentUser(t, "password123")
	repo.add(user)

	service := auth.NewService(repo, &fakeRBAC{}, &fakeStudentRepo{})

	t.Run("Found", func(t *testing.T) {
		resp, err := service.GetMe(ctx, user.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		_, err := service.GetMe(ctx, "bukan-uuid")
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := service.GetMe(ctx, uuid.New().String())
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}
