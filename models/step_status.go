package models

// StepStatus is the completion flag for one (submission, step) pair. At most
// one row exists per pair; writes go through the upsert in the submission
// service, keyed on the composite unique index.
type StepStatus struct {
	StatusID     int  `gorm:"primaryKey;column:status_id" json:"-"`
	SubmissionID int  `gorm:"column:submission_id;uniqueIndex:idx_submission_step" json:"submissionId"`
	StepIndex    int  `gorm:"column:step_index;uniqueIndex:idx_submission_step" json:"stepIndex"`
	IsComplete   bool `gorm:"column:is_complete" json:"isComplete"`

	Submission Submission `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (StepStatus) TableName() string {
	return "step_statuses"
}
