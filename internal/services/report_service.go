package services

import (
	"context"

	"placement-experiment/praxis/internal/db/repositories"
	"placement-experiment/praxis/internal/models/dtos"

	"golang.org/x/sync/errgroup"
)

// ReportService assembles the admin overview and the mentor roster
// tallies. The overview fans its seven aggregate queries out
// concurrently.
type ReportService struct {
	reportRepo *repositories.ReportRepository
}

func NewReportService(reportRepo *repositories.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

func (s *ReportService) Overview(ctx context.Context) (*dtos.OverviewReport, error) {
	var report dtos.OverviewReport
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.reportRepo.CountUsersByRole(gctx)
		report.UsersByRole = counts
		return err
	})
	g.Go(func() error {
		counts, err := s.reportRepo.CountActivitiesByStatus(gctx)
		report.ActivitiesByStatus = counts
		return err
	})
	g.Go(func() error {
		counts, err := s.reportRepo.CountSessionsByStatus(gctx)
		report.SessionsByStatus = counts
		return err
	})
	g.Go(func() error {
		counts, err := s.reportRepo.CountQualificationsByStatus(gctx)
		report.QualificationsByStatus = counts
		return err
	})
	g.Go(func() error {
		counts, err := s.reportRepo.CountVerificationsByStatus(gctx)
		report.VerificationsByStatus = counts
		return err
	})
	g.Go(func() error {
		count, err := s.reportRepo.CountActiveAssignments(gctx)
		report.ActiveAssignments = count
		return err
	})
	g.Go(func() error {
		count, err := s.reportRepo.CountUnreadMessages(gctx)
		report.UnreadMessages = count
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &report, nil
}

// MentorTallies returns per-student item status counts for the
// mentor's current roster
func (s *ReportService) MentorTallies(ctx context.Context, mentorID string) ([]dtos.StudentItemTally, error) {
	return s.reportRepo.StudentItemTallies(ctx, mentorID)
}
