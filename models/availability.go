package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AvailabilityTemplate is a doctor's recurring weekly availability rule: one
// day of week, a working window, and the length of the bookable slots cut
// from it. Start and End are minutes from midnight; the window is half-open
// [Start, End). Weekday numbering is 0=Monday through 6=Sunday.
type AvailabilityTemplate struct {
	ID                  string    `bson:"id" json:"id"`
	DoctorID            string    `bson:"doctorId" json:"doctorId"`
	DayOfWeek           int       `bson:"dayOfWeek" json:"dayOfWeek"`
	Start               int       `bson:"start" json:"start"`
	End                 int       `bson:"end" json:"end"`
	SlotDurationMinutes int       `bson:"slotDurationMinutes" json:"slotDurationMinutes"`
	IsAvailable         bool      `bson:"isAvailable" json:"isAvailable"`
	ValidFrom           string    `bson:"validFrom,omitempty" json:"validFrom,omitempty"`   // "YYYY-MM-DD", empty = unbounded
	ValidUntil          string    `bson:"validUntil,omitempty" json:"validUntil,omitempty"` // "YYYY-MM-DD", empty = unbounded
	CreatedAt           time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewAvailabilityTemplate builds a template and rejects invalid states up
// front rather than letting them reach storage.
func NewAvailabilityTemplate(doctorID string, dayOfWeek, start, end, slotDuration int) (*AvailabilityTemplate, error) {
	t := &AvailabilityTemplate{
		ID:                  uuid.New().String(),
		DoctorID:            doctorID,
		DayOfWeek:           dayOfWeek,
		Start:               start,
		End:                 end,
		SlotDurationMinutes: slotDuration,
		IsAvailable:         true,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the template invariants.
func (t *AvailabilityTemplate) Validate() error {
	if t.DoctorID == "" {
		return fmt.Errorf("doctorId is required")
	}
	if t.DayOfWeek < 0 || t.DayOfWeek > 6 {
		return fmt.Errorf("dayOfWeek %d out of range [0,6]", t.DayOfWeek)
	}
	if t.Start < 0 || t.End > 24*60 {
		return fmt.Errorf("time window [%d, %d) outside the day", t.Start, t.End)
	}
	if t.Start >= t.End {
		return fmt.Errorf("start %d must be before end %d", t.Start, t.End)
	}
	if t.SlotDurationMinutes <= 0 {
		return fmt.Errorf("slotDurationMinutes must be positive, got %d", t.SlotDurationMinutes)
	}
	if t.ValidFrom != "" && t.ValidUntil != "" && t.ValidFrom > t.ValidUntil {
		return fmt.Errorf("validFrom %s is after validUntil %s", t.ValidFrom, t.ValidUntil)
	}
	return nil
}

// AppliesOn reports whether the template is in effect on the given date
// ("YYYY-MM-DD"). The ValidFrom/ValidUntil bounds are inclusive; lexical
// comparison is safe for ISO dates.
func (t *AvailabilityTemplate) AppliesOn(date string) bool {
	if !t.IsAvailable {
		return false
	}
	if t.ValidFrom != "" && date < t.ValidFrom {
		return false
	}
	if t.ValidUntil != "" && date > t.ValidUntil {
		return false
	}
	return true
}

// TemplateDescriptor is the wire form of one availability rule in a bulk
// submission. A descriptor carrying the id of a stored template is an update
// target; one without an id (or with an unknown id) creates a new template.
// SlotDurationMinutes is a pointer so an absent field (use the default) is
// distinguishable from an explicit, invalid zero.
type TemplateDescriptor struct {
	ID                  string `json:"id,omitempty"`
	DayOfWeek           int    `json:"dayOfWeek"`
	StartTime           string `json:"startTime" binding:"required"` // "HH:MM"
	EndTime             string `json:"endTime" binding:"required"`   // "HH:MM"
	SlotDurationMinutes *int   `json:"slotDurationMinutes,omitempty"`
	IsAvailable         *bool  `json:"isAvailable,omitempty"`
	ValidFrom           string `json:"validFrom,omitempty"`
	ValidUntil          string `json:"validUntil,omitempty"`
}

// Available resolves the optional flag; descriptors default to available,
// matching the edit form behaviour.
func (d *TemplateDescriptor) Available() bool {
	return d.IsAvailable == nil || *d.IsAvailable
}

// SubmitAvailabilityRequest is the payload for a doctor's bulk schedule edit.
type SubmitAvailabilityRequest struct {
	Templates []TemplateDescriptor `json:"templates" binding:"required"`
}
