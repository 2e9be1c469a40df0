package services

import (
	"context"
	"strings"
	"testing"

	"placement-experiment/praxis/internal/common"
	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/db/repositories"
	"placement-experiment/praxis/internal/models/dtos"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSkillServices(db *gorm.DB) (*SkillService, *AssignmentService) {
	assignmentRepo := repositories.NewAssignmentRepository(db)
	userRepo := repositories.NewUserRepository(db)
	authz := NewAuthzService(assignmentRepo, common.NewCacheService(60, 600))
	assignments := NewAssignmentService(assignmentRepo, userRepo, authz, nil)
	// the bulk import repository needs a real sql backend, which these
	// tests never reach
	return NewSkillService(repositories.NewSkillRepository(db), nil, authz, nil), assignments
}

func TestSkillService_Catalogue(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newSkillServices(db)
	ctx := context.Background()

	skill, err := svc.CreateSkill(ctx, dtos.SkillReq{Name: "  Forklift Operation ", Category: "logistics"})
	require.NoError(t, err)
	assert.Equal(t, "Forklift Operation", skill.Name)

	_, err = svc.CreateSkill(ctx, dtos.SkillReq{Name: "Forklift Operation"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.CreateSkill(ctx, dtos.SkillReq{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalid)

	listed, err := svc.ListSkills(ctx, "logistics")
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	_, err = svc.UpdateSkill(ctx, "missing", dtos.SkillReq{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSkillService_ClaimAndEndorse(t *testing.T) {
	db := setupTestDB(t)
	svc, assignments := newSkillServices(db)
	ctx := context.Background()

	mentor := seedUser(t, db, "mentor", constants.RoleMentor)
	otherMentor := seedUser(t, db, "mentor2", constants.RoleMentor)
	student := seedUser(t, db, "student", constants.RoleStudent)
	_, err := assignments.Assign(ctx, mentor.ID, student.ID, "")
	require.NoError(t, err)

	skill, err := svc.CreateSkill(ctx, dtos.SkillReq{Name: "Stock control"})
	require.NoError(t, err)

	// only students claim, and levels are bounded
	_, err = svc.ClaimSkill(ctx, claimsFor(mentor), dtos.StudentSkillReq{SkillID: skill.ID, Level: 3})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.ClaimSkill(ctx, claimsFor(student), dtos.StudentSkillReq{SkillID: skill.ID, Level: 6})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = svc.ClaimSkill(ctx, claimsFor(student), dtos.StudentSkillReq{SkillID: "missing", Level: 3})
	assert.ErrorIs(t, err, ErrNotFound)

	claimed, err := svc.ClaimSkill(ctx, claimsFor(student), dtos.StudentSkillReq{SkillID: skill.ID, Level: 3})
	require.NoError(t, err)
	assert.Nil(t, claimed.EndorsedBy)

	// endorsement is gated on the live assignment
	_, err = svc.Endorse(ctx, claimsFor(otherMentor), student.ID, skill.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Endorse(ctx, claimsFor(student), student.ID, skill.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	endorsed, err := svc.Endorse(ctx, claimsFor(mentor), student.ID, skill.ID)
	require.NoError(t, err)
	require.NotNil(t, endorsed.EndorsedBy)
	assert.Equal(t, mentor.ID, *endorsed.EndorsedBy)

	// re-claiming at a new level drops the endorsement
	reclaimed, err := svc.ClaimSkill(ctx, claimsFor(student), dtos.StudentSkillReq{SkillID: skill.ID, Level: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, reclaimed.Level)
	assert.Nil(t, reclaimed.EndorsedBy)
}

func TestSkillService_ImportRejectsEmptyFile(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newSkillServices(db)
	ctx := context.Background()

	// header only
	_, err := svc.ImportCSV(ctx, strings.NewReader("name,category\n"))
	assert.ErrorIs(t, err, ErrInvalid)

	// rows without names
	_, err = svc.ImportCSV(ctx, strings.NewReader(",logistics\n ,driving\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}
