package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/comprehension-service/internal/export"
	"github.com/SAP-F-2025/comprehension-service/internal/models"
	"github.com/SAP-F-2025/comprehension-service/internal/repositories"
	"github.com/SAP-F-2025/comprehension-service/internal/validator"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	contentTypeCSV  = "text/csv"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type exportService struct {
	repo      repositories.Repository
	study     string
	now       func() time.Time
	ops       *ServiceLogger
	validator *validator.Validator
}

func NewExportService(repo repositories.Repository, study string, logger *slog.Logger, validator *validator.Validator) ExportService {
	return &exportService{
		repo:      repo,
		study:     study,
		now:       time.Now,
		ops:       NewServiceLogger(logger, LogConfig{Service: "export", Component: "service"}),
		validator: validator,
	}
}

// Export renders every stored record of one model as a file named
// <study>_<model>_<timestamp>.<format>.
func (s *exportService) Export(ctx context.Context, req *ExportRequest) (file *ExportFile, err error) {
	op := s.ops.WithOperation(ctx, "export_data")
	defer func() { op.LogResult(req.Model, "export", err) }()

	if err := s.validator.Validate(req); err != nil {
		return nil, validationFailed(err)
	}

	table, total, err := s.table(ctx, req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	file = &ExportFile{
		Filename: fmt.Sprintf("%s_%s_%s.%s", s.study, req.Model, s.now().Format("2006-01-02-15-04-05"), req.Format),
		Total:    total,
	}
	switch req.Format {
	case FormatCSV:
		file.ContentType = contentTypeCSV
		err = export.WriteCSV(&buf, table)
	case FormatXLSX:
		file.ContentType = contentTypeXLSX
		err = export.WriteXLSX(&buf, table, req.Model)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExportFormat, req.Format)
	}
	if err != nil {
		return nil, err
	}

	file.Data = buf.Bytes()
	return file, nil
}

func (s *exportService) CriticalStats(ctx context.Context, itemID string) (stats *repositories.TrialStats, err error) {
	op := s.ops.WithOperation(ctx, "critical_stats")
	defer func() { op.LogResult(itemID, "item", err) }()

	if len(itemID) > 80 {
		return nil, validationFailed(NewValidationError("item_id", "must be at most 80", itemID))
	}

	stats, err = s.repo.Trial().GetCriticalStats(ctx, nil, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute critical stats: %w", err)
	}
	return stats, nil
}

func (s *exportService) table(ctx context.Context, req *ExportRequest) (export.Table, *int64, error) {
	trialFilters := repositories.TrialFilters{
		ParticipantID: req.ParticipantID,
		ItemID:        req.ItemID,
		Limit:         req.Limit,
		Offset:        req.Offset,
	}

	switch req.Model {
	case models.ExportParticipant:
		sortBy := req.SortBy
		if sortBy == "" {
			sortBy = "id"
		}
		participants, total, err := s.repo.Participant().List(ctx, nil, repositories.ParticipantFilters{
			Study:     req.Study,
			Finished:  req.Finished,
			DateFrom:  req.DateFrom,
			DateTo:    req.DateTo,
			SortBy:    sortBy,
			SortOrder: req.SortOrder,
			Limit:     req.Limit,
			Offset:    req.Offset,
		})
		if err != nil {
			return export.Table{}, nil, fmt.Errorf("failed to list participants: %w", err)
		}
		return export.ParticipantTable(participants), &total, nil
	case models.ExportCritical:
		trials, err := s.repo.Trial().ListCritical(ctx, nil, trialFilters)
		if err != nil {
			return export.Table{}, nil, fmt.Errorf("failed to list critical trials: %w", err)
		}
		return export.CriticalTable(trials), nil, nil
	case models.ExportAttentionCheck:
		trials, err := s.repo.Trial().ListAttentionChecks(ctx, nil, trialFilters)
		if err != nil {
			return export.Table{}, nil, fmt.Errorf("failed to list attention check trials: %w", err)
		}
		return export.AttentionCheckTable(trials), nil, nil
	default:
		return export.Table{}, nil, fmt.Errorf("%w: %s", ErrUnknownExportModel, req.Model)
	}
}
