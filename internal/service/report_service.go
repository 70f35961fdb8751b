package service

import (
	"context"
	"strings"

	"github.com/quocanhngo/travelmate/internal/apperror"
	"github.com/quocanhngo/travelmate/internal/model"
	"github.com/quocanhngo/travelmate/internal/repository"
	"github.com/quocanhngo/travelmate/internal/validation"
	"github.com/quocanhngo/travelmate/pkg/auth"
)

var errDuplicateReport = apperror.Conflict("you have already reported this")

// ReportService files abuse reports against users and content
type ReportService struct {
	identity *IdentityService
	targets  *TargetResolver
	reports  ReportStore
}

func NewReportService(identity *IdentityService, targets *TargetResolver, reports ReportStore) *ReportService {
	return &ReportService{identity: identity, targets: targets, reports: reports}
}

// Submit files one report. A reporter may report a given target once.
func (s *ReportService) Submit(ctx context.Context, p auth.Principal, req model.ReportRequest) (*model.Report, error) {
	reportType := strings.TrimSpace(req.ReportType)
	if req.EntityType == "" || req.EntityID == "" || reportType == "" {
		return nil, apperror.Validation("entityType, entityId and reportType are required")
	}
	if err := validation.MaxLength("reportType", reportType, validation.MaxReportType); err != nil {
		return nil, err
	}
	if err := validation.MaxLengthPtr("reason", req.Reason, validation.MaxReportReason); err != nil {
		return nil, err
	}

	target, err := model.ParseTarget(req.EntityType, req.EntityID.String())
	if err != nil {
		return nil, err
	}

	reporter, err := s.identity.Current(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := s.targets.Resolve(ctx, target); err != nil {
		return nil, err
	}

	dup, err := s.reports.ExistsFor(ctx, reporter.Email, target)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, errDuplicateReport
	}

	report := &model.Report{
		ReporterUserID: reporter.Email,
		ReportType:     reportType,
		Reason:         req.Reason,
		Status:         model.ReportStatusPending,
	}
	report.SetTarget(target)

	if err := s.reports.Create(ctx, report); err != nil {
		if repository.IsDuplicate(err) {
			return nil, errDuplicateReport
		}
		return nil, err
	}
	return report, nil
}
