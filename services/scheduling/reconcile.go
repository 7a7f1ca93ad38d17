package scheduling

import (
	"context"
	"fmt"

	availabilityRepo "shastho/database/repository/availability"
	doctorRepo "shastho/database/repository/doctor"
	"shastho/models"
	"shastho/utils"
)

// defaultSlotDuration applies when a descriptor omits the duration, matching
// the edit form's 30-minute default.
const defaultSlotDuration = 30

// AvailabilityService reconciles a doctor's submitted weekly schedule against
// the stored template set.
type AvailabilityService interface {
	// ListTemplates returns the doctor's stored templates, for the edit form.
	ListTemplates(ctx context.Context, doctorID string) ([]models.AvailabilityTemplate, error)
	// Reconcile validates the whole submission, then diffs it against storage
	// and applies creates, updates, and deletes per record. Validation is the
	// only atomic stage: one bad descriptor rejects the entire batch before
	// any mutation. Post-validation persistence failures are per record and
	// land in the report; records already applied stay applied.
	Reconcile(ctx context.Context, doctorID string, desired []models.TemplateDescriptor) (*models.ReconciliationReport, error)
}

// DefaultAvailabilityService is the concrete implementation.
type DefaultAvailabilityService struct {
	Doctors   doctorRepo.DoctorRepository
	Templates availabilityRepo.TemplateRepository
}

func (s *DefaultAvailabilityService) ListTemplates(ctx context.Context, doctorID string) ([]models.AvailabilityTemplate, error) {
	exists, err := s.Doctors.Exists(ctx, doctorID)
	if err != nil {
		return nil, serviceErr("check doctor exists", err)
	}
	if !exists {
		return nil, ErrNotFound
	}
	templates, err := s.Templates.GetByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, serviceErr("fetch availability templates", err)
	}
	return templates, nil
}

// parsedDescriptor is a descriptor with clock strings resolved to minutes.
type parsedDescriptor struct {
	index       int
	id          string
	dayOfWeek   int
	start       int
	end         int
	duration    int
	isAvailable bool
	validFrom   string
	validUntil  string
}

func (s *DefaultAvailabilityService) Reconcile(ctx context.Context, doctorID string, desired []models.TemplateDescriptor) (*models.ReconciliationReport, error) {
	exists, err := s.Doctors.Exists(ctx, doctorID)
	if err != nil {
		return nil, serviceErr("check doctor exists", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	parsed, verr := validateDescriptors(desired)
	if verr != nil {
		return nil, verr
	}

	stored, err := s.Templates.GetByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, serviceErr("fetch availability templates", err)
	}
	storedByID := make(map[string]*models.AvailabilityTemplate, len(stored))
	for i := range stored {
		storedByID[stored[i].ID] = &stored[i]
	}

	// Diff: descriptors carrying a stored id update it; descriptors without
	// one create — unless an unclaimed stored template matches field for
	// field, which makes resubmitting the same schedule a no-op instead of a
	// create+delete churn.
	claimed := make(map[string]bool, len(stored))
	var updates []parsedDescriptor
	var creates []parsedDescriptor
	for _, d := range parsed {
		if d.id != "" {
			if _, ok := storedByID[d.id]; ok {
				claimed[d.id] = true
				updates = append(updates, d)
				continue
			}
		}
		if match := findUnclaimedMatch(stored, claimed, d); match != nil {
			claimed[match.ID] = true
			d.id = match.ID
			updates = append(updates, d)
			continue
		}
		creates = append(creates, d)
	}

	report := &models.ReconciliationReport{DoctorID: doctorID}

	for _, d := range updates {
		tpl := storedByID[d.id]
		d.applyTo(tpl)
		if err := s.Templates.Update(ctx, tpl); err != nil {
			report.Failures = append(report.Failures, models.ReconciliationFailure{
				TemplateID: d.id, Op: models.ReconcileUpdate, Reason: err.Error(),
			})
			continue
		}
		report.Updated = append(report.Updated, d.id)
	}

	for _, d := range creates {
		tpl, err := models.NewAvailabilityTemplate(doctorID, d.dayOfWeek, d.start, d.end, d.duration)
		if err != nil {
			// Should not happen: the batch already validated.
			report.Failures = append(report.Failures, models.ReconciliationFailure{
				Op: models.ReconcileCreate, Reason: err.Error(),
			})
			continue
		}
		tpl.IsAvailable = d.isAvailable
		tpl.ValidFrom = d.validFrom
		tpl.ValidUntil = d.validUntil
		if err := s.Templates.Create(ctx, tpl); err != nil {
			report.Failures = append(report.Failures, models.ReconciliationFailure{
				TemplateID: tpl.ID, Op: models.ReconcileCreate, Reason: err.Error(),
			})
			continue
		}
		report.Created = append(report.Created, tpl.ID)
	}

	// Stored templates the submission no longer references are removed.
	for i := range stored {
		if claimed[stored[i].ID] {
			continue
		}
		if err := s.Templates.DeleteByID(ctx, doctorID, stored[i].ID); err != nil {
			report.Failures = append(report.Failures, models.ReconciliationFailure{
				TemplateID: stored[i].ID, Op: models.ReconcileDelete, Reason: err.Error(),
			})
			continue
		}
		report.Deleted = append(report.Deleted, stored[i].ID)
	}

	return report, nil
}

// validateDescriptors checks every descriptor individually and the desired
// set for same-day overlaps. Any issue rejects the whole batch.
func validateDescriptors(desired []models.TemplateDescriptor) ([]parsedDescriptor, *ValidationError) {
	var issues []ValidationIssue
	parsed := make([]parsedDescriptor, 0, len(desired))
	seenIDs := make(map[string]int)

	for i, d := range desired {
		p := parsedDescriptor{
			index:       i,
			id:          d.ID,
			dayOfWeek:   d.DayOfWeek,
			duration:    defaultSlotDuration,
			isAvailable: d.Available(),
			validFrom:   d.ValidFrom,
			validUntil:  d.ValidUntil,
		}
		if d.SlotDurationMinutes != nil {
			p.duration = *d.SlotDurationMinutes
		}

		if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
			issues = append(issues, ValidationIssue{Index: i, Field: "dayOfWeek", Reason: fmt.Sprintf("dayOfWeek %d out of range [0,6]", d.DayOfWeek)})
		}
		start, startErr := utils.ParseClock(d.StartTime)
		if startErr != nil {
			issues = append(issues, ValidationIssue{Index: i, Field: "startTime", Reason: startErr.Error()})
		}
		end, endErr := utils.ParseClock(d.EndTime)
		if endErr != nil {
			issues = append(issues, ValidationIssue{Index: i, Field: "endTime", Reason: endErr.Error()})
		}
		p.start, p.end = start, end
		if startErr == nil && endErr == nil && p.start >= p.end {
			issues = append(issues, ValidationIssue{Index: i, Field: "startTime", Reason: fmt.Sprintf("start %s must be before end %s", d.StartTime, d.EndTime)})
		}
		if d.SlotDurationMinutes != nil && *d.SlotDurationMinutes <= 0 {
			issues = append(issues, ValidationIssue{Index: i, Field: "slotDurationMinutes", Reason: "slot duration must be positive"})
		}
		if d.ValidFrom != "" {
			if _, err := utils.ParseDate(d.ValidFrom); err != nil {
				issues = append(issues, ValidationIssue{Index: i, Field: "validFrom", Reason: err.Error()})
			}
		}
		if d.ValidUntil != "" {
			if _, err := utils.ParseDate(d.ValidUntil); err != nil {
				issues = append(issues, ValidationIssue{Index: i, Field: "validUntil", Reason: err.Error()})
			}
		}
		if d.ValidFrom != "" && d.ValidUntil != "" && d.ValidFrom > d.ValidUntil {
			issues = append(issues, ValidationIssue{Index: i, Field: "validFrom", Reason: fmt.Sprintf("validFrom %s is after validUntil %s", d.ValidFrom, d.ValidUntil)})
		}
		if d.ID != "" {
			if prev, dup := seenIDs[d.ID]; dup {
				issues = append(issues, ValidationIssue{Index: i, Field: "id", Reason: fmt.Sprintf("template id %s already used by descriptor %d", d.ID, prev)})
			} else {
				seenIDs[d.ID] = i
			}
		}

		parsed = append(parsed, p)
	}

	// Same-day windows in the desired set must not overlap each other.
	for i := 0; i < len(parsed); i++ {
		for j := i + 1; j < len(parsed); j++ {
			a, b := parsed[i], parsed[j]
			if a.dayOfWeek != b.dayOfWeek || a.start >= a.end || b.start >= b.end {
				continue
			}
			if Overlaps(a.start, a.end, b.start, b.end) {
				reason := fmt.Sprintf("window overlaps descriptor %d on day %d", j, a.dayOfWeek)
				issues = append(issues, ValidationIssue{Index: i, Reason: reason})
				issues = append(issues, ValidationIssue{Index: j, Reason: fmt.Sprintf("window overlaps descriptor %d on day %d", i, a.dayOfWeek)})
			}
		}
	}

	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return parsed, nil
}

func findUnclaimedMatch(stored []models.AvailabilityTemplate, claimed map[string]bool, d parsedDescriptor) *models.AvailabilityTemplate {
	for i := range stored {
		t := &stored[i]
		if claimed[t.ID] {
			continue
		}
		if t.DayOfWeek == d.dayOfWeek && t.Start == d.start && t.End == d.end &&
			t.SlotDurationMinutes == d.duration && t.IsAvailable == d.isAvailable &&
			t.ValidFrom == d.validFrom && t.ValidUntil == d.validUntil {
			return t
		}
	}
	return nil
}

func (d parsedDescriptor) applyTo(tpl *models.AvailabilityTemplate) {
	tpl.DayOfWeek = d.dayOfWeek
	tpl.Start = d.start
	tpl.End = d.end
	tpl.SlotDurationMinutes = d.duration
	tpl.IsAvailable = d.isAvailable
	tpl.ValidFrom = d.validFrom
	tpl.ValidUntil = d.validUntil
}
