package repositories

import (
	"context"
	"fmt"

	gormModels "placement-experiment/praxis/internal/models/gorm"

	"gorm.io/gorm"
)

type SkillRepository struct {
	db *gorm.DB
}

// NewSkillRepository creates a new GORM-based skill repository
func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) Create(ctx context.Context, skill *gormModels.Skill) error {
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		return fmt.Errorf("failed to create skill: %w", err)
	}
	return nil
}

func (r *SkillRepository) GetByID(ctx context.Context, id string) (*gormModels.Skill, error) {
	var skill gormModels.Skill

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&skill).Error

	if err != nil {
		return nil, err
	}

	return &skill, nil
}

func (r *SkillRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.Skill{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check skill name: %w", err)
	}
	return count > 0, nil
}

func (r *SkillRepository) List(ctx context.Context, category string) ([]gormModels.Skill, error) {
	var skills []gormModels.Skill

	q := r.db.WithContext(ctx).Order("name")
	if category != "" {
		q = q.Where("category = ?", category)
	}

	if err := q.Find(&skills).Error; err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}

	return skills, nil
}

func (r *SkillRepository) Save(ctx context.Context, skill *gormModels.Skill) error {
	if err := r.db.WithContext(ctx).Save(skill).Error; err != nil {
		return fmt.Errorf("failed to save skill: %w", err)
	}
	return nil
}

func (r *SkillRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&gormModels.Skill{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete skill: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetStudentSkill fetches a single student/skill row
func (r *SkillRepository) GetStudentSkill(ctx context.Context, studentID, skillID string) (*gormModels.StudentSkill, error) {
	var studentSkill gormModels.StudentSkill

	err := r.db.WithContext(ctx).
		Where("student_id = ? AND skill_id = ?", studentID, skillID).
		First(&studentSkill).Error

	if err != nil {
		return nil, err
	}

	return &studentSkill, nil
}

func (r *SkillRepository) ListStudentSkills(ctx context.Context, studentID string) ([]gormModels.StudentSkill, error) {
	var studentSkills []gormModels.StudentSkill

	err := r.db.WithContext(ctx).
		Preload("Skill").
		Where("student_id = ?", studentID).
		Find(&studentSkills).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list student skills: %w", err)
	}

	return studentSkills, nil
}

func (r *SkillRepository) SaveStudentSkill(ctx context.Context, studentSkill *gormModels.StudentSkill) error {
	if err := r.db.WithContext(ctx).Save(studentSkill).Error; err != nil {
		return fmt.Errorf("failed to save student skill: %w", err)
	}
	return nil
}
