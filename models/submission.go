package models

import (
	"encoding/json"
	"time"
)

// Submission is one new-hire request. It is written once at intake and never
// updated afterwards; progress is tracked separately in step_statuses.
type Submission struct {
	SubmissionID   int       `gorm:"primaryKey;column:submission_id" json:"submissionId"`
	FullName       string    `gorm:"column:full_name" json:"fullName"`
	PersonalEmail  string    `gorm:"column:personal_email" json:"personalEmail"`
	StartDate      string    `gorm:"column:start_date" json:"startDate"`
	JobTitle       string    `gorm:"column:job_title" json:"jobTitle"`
	Department     string    `gorm:"column:department" json:"department"`
	Manager        string    `gorm:"column:manager" json:"manager"`
	Office         string    `gorm:"column:office" json:"office"`
	IsManager      string    `gorm:"column:is_manager" json:"isManager"`
	AdvancedConfig string    `gorm:"column:advanced_config" json:"advancedConfig"`
	OtherSoftware  string    `gorm:"column:other_software" json:"otherSoftware"`
	AccessNotes    string    `gorm:"column:access_notes" json:"accessNotes"`
	Notes          string    `gorm:"column:notes" json:"notes"`
	AccessoryCost  string    `gorm:"column:accessory_cost" json:"accessoryCost"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"createdAt"`

	// Multi-value selections persisted as JSON text. Use the accessors below;
	// the raw columns are the storage representation only.
	SoftwareRaw    string `gorm:"column:software" json:"-"`
	EquipmentRaw   string `gorm:"column:equipment" json:"-"`
	AccessoriesRaw string `gorm:"column:accessories" json:"-"`
}

func (Submission) TableName() string {
	return "submissions"
}

// Software returns the decoded software selection list.
func (s *Submission) Software() []string {
	return decodeSelections(s.SoftwareRaw)
}

// Equipment returns the decoded equipment selection list.
func (s *Submission) Equipment() []string {
	return decodeSelections(s.EquipmentRaw)
}

// Accessories returns the decoded accessories selection list.
func (s *Submission) Accessories() []string {
	return decodeSelections(s.AccessoriesRaw)
}

func (s *Submission) SetSoftware(items []string)    { s.SoftwareRaw = encodeSelections(items) }
func (s *Submission) SetEquipment(items []string)   { s.EquipmentRaw = encodeSelections(items) }
func (s *Submission) SetAccessories(items []string) { s.AccessoriesRaw = encodeSelections(items) }

// MarshalJSON exposes the selection lists as arrays so API consumers never see
// the serialized storage form.
func (s Submission) MarshalJSON() ([]byte, error) {
	type alias Submission
	return json.Marshal(struct {
		alias
		Software    []string `json:"software"`
		Equipment   []string `json:"equipment"`
		Accessories []string `json:"accessories"`
	}{
		alias:       alias(s),
		Software:    decodeSelections(s.SoftwareRaw),
		Equipment:   decodeSelections(s.EquipmentRaw),
		Accessories: decodeSelections(s.AccessoriesRaw),
	})
}

func encodeSelections(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeSelections(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{}
	}
	return items
}
