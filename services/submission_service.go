package services

import (
	"errors"
	"log"
	"time"

	"newhire-onboarding-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmissionService owns reads and writes for submissions and their per-step
// completion rows.
type SubmissionService struct {
	db *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{db: db}
}

// SubmissionInput is the intake payload after JSON binding. Selection lists
// arrive as typed slices; the service owns their storage encoding.
type SubmissionInput struct {
	FullName       string   `json:"fullName"`
	PersonalEmail  string   `json:"personalEmail"`
	StartDate      string   `json:"startDate"`
	JobTitle       string   `json:"jobTitle"`
	Department     string   `json:"department"`
	Manager        string   `json:"manager"`
	Office         string   `json:"office"`
	IsManager      string   `json:"isManager"`
	AdvancedConfig string   `json:"advancedConfig"`
	OtherSoftware  string   `json:"otherSoftware"`
	Software       []string `json:"software"`
	Equipment      []string `json:"equipment"`
	Accessories    []string `json:"accessories"`
	AccessoryCost  string   `json:"accessoryCost"`
	AccessNotes    string   `json:"accessNotes"`
	Notes          string   `json:"notes"`
}

// requiredFields drives validation order; the first missing field names the
// error, matching what the intake form labels.
var requiredFields = []struct {
	name  string
	value func(*SubmissionInput) string
}{
	{"fullName", func(in *SubmissionInput) string { return in.FullName }},
	{"personalEmail", func(in *SubmissionInput) string { return in.PersonalEmail }},
	{"startDate", func(in *SubmissionInput) string { return in.StartDate }},
	{"jobTitle", func(in *SubmissionInput) string { return in.JobTitle }},
	{"office", func(in *SubmissionInput) string { return in.Office }},
}

// Create validates the payload, stores the submission and seeds the step-1
// status row. Seeding is best-effort: a failure there is logged but does not
// roll back the accepted submission.
func (s *SubmissionService) Create(input *SubmissionInput) (int, error) {
	for _, field := range requiredFields {
		if field.value(input) == "" {
			return 0, MissingFieldError(field.name)
		}
	}

	submission := models.Submission{
		FullName:       input.FullName,
		PersonalEmail:  input.PersonalEmail,
		StartDate:      input.StartDate,
		JobTitle:       input.JobTitle,
		Department:     input.Department,
		Manager:        input.Manager,
		Office:         input.Office,
		IsManager:      input.IsManager,
		AdvancedConfig: input.AdvancedConfig,
		OtherSoftware:  input.OtherSoftware,
		AccessoryCost:  input.AccessoryCost,
		AccessNotes:    input.AccessNotes,
		Notes:          input.Notes,
		CreatedAt:      time.Now(),
	}
	submission.SetSoftware(input.Software)
	submission.SetEquipment(input.Equipment)
	submission.SetAccessories(input.Accessories)

	if err := s.db.Create(&submission).Error; err != nil {
		return 0, storeError("create submission", err)
	}

	// Entered the queue: step 1 complete.
	if err := s.UpsertStatus(submission.SubmissionID, 1, true); err != nil {
		log.Printf("failed to seed step 1 for submission %d: %v", submission.SubmissionID, err)
	}

	return submission.SubmissionID, nil
}

// GetByID returns a submission and its status rows ordered by step index.
func (s *SubmissionService) GetByID(id int) (*models.Submission, []models.StepStatus, error) {
	if id <= 0 {
		return nil, nil, ErrNotFound
	}

	var submission models.Submission
	if err := s.db.First(&submission, "submission_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, storeError("get submission", err)
	}

	statuses, err := s.GetStatus(id)
	if err != nil {
		return nil, nil, err
	}
	return &submission, statuses, nil
}

// ListAll returns every submission, newest first.
func (s *SubmissionService) ListAll() ([]models.Submission, error) {
	var submissions []models.Submission
	if err := s.db.Order("submission_id DESC").Find(&submissions).Error; err != nil {
		return nil, storeError("list submissions", err)
	}
	return submissions, nil
}

// GetStatus returns the touched status rows for a submission, ascending by
// step index. Untouched steps have no row and read as incomplete.
func (s *SubmissionService) GetStatus(id int) ([]models.StepStatus, error) {
	var statuses []models.StepStatus
	if err := s.db.Where("submission_id = ?", id).Order("step_index ASC").Find(&statuses).Error; err != nil {
		return nil, storeError("get status", err)
	}
	return statuses, nil
}

// UpsertStatus writes one (submission, step) completion flag. Keyed on the
// composite unique index, so repeated writes mutate the same row. Steps are
// independent: no ordering is enforced across them.
func (s *SubmissionService) UpsertStatus(submissionID, stepIndex int, isComplete bool) error {
	if submissionID <= 0 {
		return NewValidationError("Missing submissionId")
	}
	if stepIndex < 1 || stepIndex > models.StepCount {
		return NewValidationError("Invalid stepIndex")
	}

	status := models.StepStatus{
		SubmissionID: submissionID,
		StepIndex:    stepIndex,
		IsComplete:   isComplete,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "submission_id"}, {Name: "step_index"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"is_complete": isComplete}),
	}).Create(&status).Error
	if err != nil {
		return storeError("upsert status", err)
	}
	return nil
}
