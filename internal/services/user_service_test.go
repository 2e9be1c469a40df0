package services

import (
	"context"
	"testing"

	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/db/repositories"
	"placement-experiment/praxis/internal/models/dtos"
	gormModels "placement-experiment/praxis/internal/models/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db))
	ctx := context.Background()

	created, err := svc.Create(ctx, dtos.CreateUserReq{
		Name:     "Asha",
		Email:    "  Asha@Praxis.Test ",
		Password: "super-secret",
		Role:     "student",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@praxis.test", created.Email)
	assert.Equal(t, "student", created.Role)
	assert.Equal(t, "active", created.Status)

	// stored hash verifies against the original password
	var stored gormModels.User
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	assert.NotEqual(t, "super-secret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("super-secret")))

	// duplicate email, case-insensitively
	_, err = svc.Create(ctx, dtos.CreateUserReq{
		Name:     "Asha Again",
		Email:    "ASHA@praxis.test",
		Password: "another",
		Role:     "mentor",
	})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Create(ctx, dtos.CreateUserReq{Name: "X", Email: "x@praxis.test", Password: "p", Role: "superuser"})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.Create(ctx, dtos.CreateUserReq{Email: "y@praxis.test", Password: "p", Role: "student"})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestUserService_UpdateKeepsRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db))
	ctx := context.Background()

	user := seedUser(t, db, "mentor", constants.RoleMentor)

	newName := "Renamed Mentor"
	newStatus := "inactive"
	updated, err := svc.Update(ctx, user.ID, dtos.UpdateUserReq{Name: &newName, Status: &newStatus})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Mentor", updated.Name)
	assert.Equal(t, "inactive", updated.Status)
	assert.Equal(t, "mentor", updated.Role)

	badStatus := "suspended"
	_, err = svc.Update(ctx, user.ID, dtos.UpdateUserReq{Status: &badStatus})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.Update(ctx, "missing", dtos.UpdateUserReq{Name: &newName})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_UpdateProfilePasswordRules(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db))
	ctx := context.Background()

	user := seedUser(t, db, "student", constants.RoleStudent)

	short := "1234567"
	_, err := svc.UpdateProfile(ctx, claimsFor(user), dtos.UpdateProfileReq{Password: &short})
	assert.ErrorIs(t, err, ErrInvalid)

	ok := "12345678"
	_, err = svc.UpdateProfile(ctx, claimsFor(user), dtos.UpdateProfileReq{Password: &ok})
	require.NoError(t, err)

	var stored gormModels.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(ok)))
}

func TestUserService_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db))
	ctx := context.Background()

	seedUser(t, db, "admin", constants.RoleAdmin)
	seedUser(t, db, "mentor", constants.RoleMentor)
	seedUser(t, db, "student1", constants.RoleStudent)
	seedUser(t, db, "student2", constants.RoleStudent)

	students, err := svc.List(ctx, constants.RoleStudent, "")
	require.NoError(t, err)
	assert.Len(t, students, 2)

	all, err := svc.List(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = svc.List(ctx, constants.Role("wizard"), "")
	assert.ErrorIs(t, err, ErrInvalid)
}
