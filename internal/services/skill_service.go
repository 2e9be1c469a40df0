package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"placement-experiment/praxis/internal/auth"
	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/db/repositories"
	"placement-experiment/praxis/internal/logging"
	"placement-experiment/praxis/internal/metrics"
	"placement-experiment/praxis/internal/models/dtos"
	gormModels "placement-experiment/praxis/internal/models/gorm"

	"gorm.io/gorm"
)

const (
	minSkillLevel = 1
	maxSkillLevel = 5
)

// SkillService covers the admin-managed catalogue, per-student skill
// claims with mentor endorsement, and the bulk CSV import.
type SkillService struct {
	skillRepo  *repositories.SkillRepository
	importRepo *repositories.SkillImportRepository
	authz      *AuthzService
	metricsReg *metrics.MetricsRegistry
}

func NewSkillService(skillRepo *repositories.SkillRepository, importRepo *repositories.SkillImportRepository,
	authz *AuthzService, metricsReg *metrics.MetricsRegistry) *SkillService {
	return &SkillService{
		skillRepo:  skillRepo,
		importRepo: importRepo,
		authz:      authz,
		metricsReg: metricsReg,
	}
}

/* ---------- Catalogue ---------- */

func (s *SkillService) CreateSkill(ctx context.Context, req dtos.SkillReq) (*gormModels.Skill, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	exists, err := s.skillRepo.NameExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: skill %q already exists", ErrConflict, name)
	}

	skill := gormModels.Skill{
		Name:     name,
		Category: strings.TrimSpace(req.Category),
	}
	if err := s.skillRepo.Create(ctx, &skill); err != nil {
		return nil, err
	}
	return &skill, nil
}

func (s *SkillService) ListSkills(ctx context.Context, category string) ([]gormModels.Skill, error) {
	return s.skillRepo.List(ctx, category)
}

func (s *SkillService) UpdateSkill(ctx context.Context, id string, req dtos.SkillReq) (*gormModels.Skill, error) {
	skill, err := s.skillRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: skill not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch skill: %w", err)
	}

	if name := strings.TrimSpace(req.Name); name != "" && name != skill.Name {
		exists, err := s.skillRepo.NameExists(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: skill %q already exists", ErrConflict, name)
		}
		skill.Name = name
	}
	if req.Category != "" {
		skill.Category = strings.TrimSpace(req.Category)
	}

	if err := s.skillRepo.Save(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) DeleteSkill(ctx context.Context, id string) error {
	if err := s.skillRepo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: skill not found", ErrNotFound)
		}
		return err
	}
	return nil
}

/* ---------- Student skills ---------- */

// ClaimSkill records or updates a student's self-reported level. Any
// level change drops an existing endorsement.
func (s *SkillService) ClaimSkill(ctx context.Context, claims auth.UserClaims, req dtos.StudentSkillReq) (*gormModels.StudentSkill, error) {
	if constants.Role(claims.Role()) != constants.RoleStudent {
		return nil, fmt.Errorf("%w: only students may claim skills", ErrForbidden)
	}
	if req.Level < minSkillLevel || req.Level > maxSkillLevel {
		return nil, fmt.Errorf("%w: level must be between %d and %d", ErrInvalid, minSkillLevel, maxSkillLevel)
	}

	if _, err := s.skillRepo.GetByID(ctx, req.SkillID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: skill not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch skill: %w", err)
	}

	studentSkill, err := s.skillRepo.GetStudentSkill(ctx, claims.UserID(), req.SkillID)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("failed to fetch student skill: %w", err)
		}
		studentSkill = &gormModels.StudentSkill{
			StudentID: claims.UserID(),
			SkillID:   req.SkillID,
		}
	}

	studentSkill.Level = req.Level
	studentSkill.EndorsedBy = nil

	if err := s.skillRepo.SaveStudentSkill(ctx, studentSkill); err != nil {
		return nil, err
	}
	return studentSkill, nil
}

func (s *SkillService) ListStudentSkills(ctx context.Context, claims auth.UserClaims, studentID string) ([]gormModels.StudentSkill, error) {
	ok, err := s.authz.CanAccessStudent(ctx, claims, studentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no access to this student", ErrForbidden)
	}
	return s.skillRepo.ListStudentSkills(ctx, studentID)
}

// Endorse stamps a student's skill claim with the endorser's id; only
// the student's current mentor or an admin may do it
func (s *SkillService) Endorse(ctx context.Context, claims auth.UserClaims, studentID, skillID string) (*gormModels.StudentSkill, error) {
	switch constants.Role(claims.Role()) {
	case constants.RoleAdmin:
	case constants.RoleMentor:
		owns, err := s.authz.MentorOwnsLive(ctx, claims.UserID(), studentID)
		if err != nil {
			return nil, err
		}
		if !owns {
			return nil, fmt.Errorf("%w: %s", ErrForbidden, constants.MsgNotAssigned)
		}
	default:
		return nil, fmt.Errorf("%w: only mentors and admins may endorse", ErrForbidden)
	}

	studentSkill, err := s.skillRepo.GetStudentSkill(ctx, studentID, skillID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: the student has not claimed this skill", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch student skill: %w", err)
	}

	endorserID := claims.UserID()
	studentSkill.EndorsedBy = &endorserID

	if err := s.skillRepo.SaveStudentSkill(ctx, studentSkill); err != nil {
		return nil, err
	}
	return studentSkill, nil
}

/* ---------- Bulk import ---------- */

// ImportCSV parses a name,category file and writes all valid rows in
// one transaction. A header line is tolerated; malformed rows are
// reported but do not abort the import.
func (s *SkillService) ImportCSV(ctx context.Context, r io.Reader) (*dtos.SkillImportReport, error) {
	start := time.Now()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	report := dtos.SkillImportReport{}
	rows := make([]repositories.SkillRow, 0)
	seen := make(map[string]bool)

	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if line == 1 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "name") {
			continue
		}

		report.Total++

		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			report.Errors = append(report.Errors, fmt.Sprintf("line %d: missing skill name", line))
			continue
		}

		name := strings.TrimSpace(record[0])
		category := ""
		if len(record) > 1 {
			category = strings.TrimSpace(record[1])
		}

		key := strings.ToLower(name)
		if seen[key] {
			report.Skipped++
			continue
		}
		seen[key] = true

		rows = append(rows, repositories.SkillRow{Name: name, Category: category})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no valid rows in import file", ErrInvalid)
	}

	inserted, err := s.importRepo.BulkInsert(ctx, rows)
	if err != nil {
		return nil, err
	}

	report.Imported = inserted
	report.Skipped += len(rows) - inserted

	if s.metricsReg != nil {
		s.metricsReg.SkillImportDuration.Observe(time.Since(start).Seconds())
	}

	logging.Info("Skill import finished",
		"total", report.Total,
		"imported", report.Imported,
		"skipped", report.Skipped,
	)

	return &report, nil
}
