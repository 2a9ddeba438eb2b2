package service

import (
	"fmt"

	"restaurant-scheduler/internal/models"
	"restaurant-scheduler/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// TemplateService validates shift templates before they reach storage.
type TemplateService struct {
	repo     repository.ShiftTemplateRepository
	validate *validator.Validate
	logger   *logrus.Logger
}

func NewTemplateService(repo repository.ShiftTemplateRepository, logger *logrus.Logger) *TemplateService {
	return &TemplateService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

func (s *TemplateService) applyDefaults(t *models.ShiftTemplate) {
	if t.ShiftType == "" {
		t.ShiftType = models.ShiftMorning
	}
	if t.Priority == "" {
		t.Priority = models.PriorityNormal
	}
	if t.OvertimeThresholdHours == 0 {
		t.OvertimeThresholdHours = 8
	}
}

func (s *TemplateService) validateTemplate(t *models.ShiftTemplate) error {
	if !t.ShiftType.Valid() {
		return fmt.Errorf("%w: unknown shift type %q", ErrValidation, t.ShiftType)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: unknown shift priority %q", ErrValidation, t.Priority)
	}
	for _, d := range t.ApplicableDays {
		if !d.Valid() {
			return fmt.Errorf("%w: weekday index %d out of range", ErrValidation, d)
		}
	}
	for _, req := range t.PositionRequirements {
		if !req.Position.Valid() {
			return fmt.Errorf("%w: unknown position %q in requirement", ErrValidation, req.Position)
		}
		if req.PreferredSkillLevel != "" && !req.PreferredSkillLevel.Valid() {
			return fmt.Errorf("%w: unknown skill level %q in requirement", ErrValidation, req.PreferredSkillLevel)
		}
	}
	if err := s.validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func (s *TemplateService) Create(t *models.ShiftTemplate) (uint, error) {
	s.applyDefaults(t)
	if err := s.validateTemplate(t); err != nil {
		s.logger.WithError(err).WithField("name", t.Name).Warn("Rejected invalid shift template")
		return 0, err
	}
	return s.repo.Create(t)
}

func (s *TemplateService) Get(id uint) (*models.ShiftTemplate, error) {
	return s.repo.GetByID(id)
}

func (s *TemplateService) List() ([]*models.ShiftTemplate, error) {
	return s.repo.GetAll()
}

func (s *TemplateService) Update(t *models.ShiftTemplate) (bool, error) {
	if t.ID == 0 {
		return false, nil
	}
	s.applyDefaults(t)
	if err := s.validateTemplate(t); err != nil {
		s.logger.WithError(err).WithField("id", t.ID).Warn("Rejected invalid template update")
		return false, err
	}
	return s.repo.Update(t)
}

func (s *TemplateService) Delete(id uint) (bool, error) {
	return s.repo.Delete(id)
}
