package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/SAP-F-2025/comprehension-service/internal/models"
	"github.com/SAP-F-2025/comprehension-service/internal/repositories"
	"github.com/SAP-F-2025/comprehension-service/internal/validator"
	"gorm.io/gorm"
)

type participantService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	ops       *ServiceLogger
	validator *validator.Validator
}

func NewParticipantService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ParticipantService {
	return &participantService{
		repo:      repo,
		logger:    logger,
		ops:       NewServiceLogger(logger, LogConfig{Service: "participant", Component: "service"}),
		validator: validator,
	}
}

// GetWithTrials loads the participant together with their stored trials.
func (s *participantService) GetWithTrials(ctx context.Context, id uint) (*models.Participant, error) {
	participant, err := s.repo.Participant().GetByIDWithTrials(ctx, nil, id)
	if err != nil {
		return nil, notFound(ErrParticipantNotFound, err)
	}
	return participant, nil
}

// UpdateDevice stores the browser and screen details reported once the
// experiment is in fullscreen. The raw report is appended to the notes.
func (s *participantService) UpdateDevice(ctx context.Context, id uint, req *DeviceRequest) (err error) {
	op := s.ops.WithOperation(ctx, "update_device")
	defer func() { op.LogResult(strconv.FormatUint(uint64(id), 10), "participant", err) }()

	if err := s.validator.Validate(req); err != nil {
		return validationFailed(err)
	}

	return s.update(ctx, id, func(p *models.Participant) error {
		raw, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("failed to encode device report: %w", err)
		}
		p.Notes += string(raw) + "\n"
		p.UAHeader = req.UAHeader
		p.ScreenWidth = req.Width
		p.ScreenHeight = req.Height
		p.WorkerID = req.WorkerID
		p.AssignmentID = req.AssignmentID
		return nil
	})
}

func (s *participantService) RecordDemographics(ctx context.Context, id uint, req *DemographicsRequest) (err error) {
	op := s.ops.WithOperation(ctx, "record_demographics")
	defer func() { op.LogResult(strconv.FormatUint(uint64(id), 10), "participant", err) }()

	if err := s.validator.Validate(req); err != nil {
		return validationFailed(err)
	}

	return s.update(ctx, id, func(p *models.Participant) error {
		p.BirthYear = req.BirthYear
		p.Gender = req.Gender
		p.NativeEnglish = req.NativeEnglish
		p.Dyslexia = req.Dyslexia
		p.ADHD = req.ADHD
		p.ASD = req.ASD
		p.Vision = req.Vision
		p.VisionReason = req.VisionReason

		if errs := s.validator.ValidateBusiness(p); len(errs) > 0 {
			return validationFailed(errs)
		}
		return nil
	})
}

func (s *participantService) RecordDebrief(ctx context.Context, id uint, req *DebriefRequest) (err error) {
	op := s.ops.WithOperation(ctx, "record_debrief")
	defer func() { op.LogResult(strconv.FormatUint(uint64(id), 10), "participant", err) }()

	if err := s.validator.Validate(req); err != nil {
		return validationFailed(err)
	}

	return s.update(ctx, id, func(p *models.Participant) error {
		p.PostTestPurpose = req.PostTestPurpose
		p.PostTestOther = req.PostTestOther
		return nil
	})
}

// update loads, changes and saves a participant in one transaction.
func (s *participantService) update(ctx context.Context, id uint, apply func(p *models.Participant) error) error {
	return s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		participant, err := s.repo.Participant().GetByID(ctx, tx, id)
		if err != nil {
			return notFound(ErrParticipantNotFound, err)
		}
		if err := apply(participant); err != nil {
			return err
		}
		if err := s.repo.Participant().Update(ctx, tx, participant); err != nil {
			return fmt.Errorf("failed to update participant: %w", err)
		}
		s.logger.DebugContext(ctx, "Participant updated", "participant_id", id)
		return nil
	})
}
