package scheduling

import (
	"context"
	"sort"

	availabilityRepo "shastho/database/repository/availability"
	appointmentRepo "shastho/database/repository/appointment"
	doctorRepo "shastho/database/repository/doctor"
	"shastho/models"
	"shastho/utils"
)

// SlotService expands a doctor's recurring availability into the concrete
// bookable windows for one date.
type SlotService interface {
	// GenerateSlots returns the doctor's slots for the date in chronological
	// order, occupied windows marked unavailable. A doctor with no matching
	// template gets an empty list. Pure read; no side effects.
	GenerateSlots(ctx context.Context, doctorID, date string) ([]models.BookableSlot, error)
}

// DefaultSlotService is the concrete implementation.
type DefaultSlotService struct {
	Doctors      doctorRepo.DoctorRepository
	Templates    availabilityRepo.TemplateRepository
	Appointments appointmentRepo.AppointmentRepository
}

func (s *DefaultSlotService) GenerateSlots(ctx context.Context, doctorID, date string) ([]models.BookableSlot, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, newValidationError(err.Error())
	}

	exists, err := s.Doctors.Exists(ctx, doctorID)
	if err != nil {
		return nil, serviceErr("check doctor exists", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	templates, err := s.Templates.GetByDoctorAndDay(ctx, doctorID, utils.DayOfWeek(day))
	if err != nil {
		return nil, serviceErr("fetch availability templates", err)
	}

	var candidates []models.BookableSlot
	for _, tpl := range templates {
		if !tpl.AppliesOn(date) {
			continue
		}
		candidates = append(candidates, walkTemplate(&tpl, doctorID, date)...)
	}
	if len(candidates) == 0 {
		// No template in effect means no bookable time. No default working
		// hours are synthesized.
		return []models.BookableSlot{}, nil
	}

	appts, err := s.Appointments.GetByDoctorAndDate(ctx, doctorID, date)
	if err != nil {
		return nil, serviceErr("fetch appointments", err)
	}
	for i := range candidates {
		candidates[i].Available = !overlapsAny(appts, candidates[i].Start, candidates[i].End)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Start != candidates[j].Start {
			return candidates[i].Start < candidates[j].Start
		}
		return candidates[i].End < candidates[j].End
	})
	return dedupeSlots(candidates), nil
}

// walkTemplate cuts a template's window into duration-sized candidate slots.
// A trailing remainder shorter than the duration is discarded.
func walkTemplate(tpl *models.AvailabilityTemplate, doctorID, date string) []models.BookableSlot {
	var slots []models.BookableSlot
	for t := tpl.Start; t+tpl.SlotDurationMinutes <= tpl.End; t += tpl.SlotDurationMinutes {
		slots = append(slots, models.BookableSlot{
			DoctorID:        doctorID,
			Date:            date,
			Start:           t,
			End:             t + tpl.SlotDurationMinutes,
			DurationMinutes: tpl.SlotDurationMinutes,
			Available:       true,
		})
	}
	return slots
}

// dedupeSlots drops windows identical to their predecessor; two templates
// generating the same window yield one slot. Input must be sorted.
func dedupeSlots(slots []models.BookableSlot) []models.BookableSlot {
	out := slots[:0]
	for _, slot := range slots {
		if len(out) > 0 && out[len(out)-1].Start == slot.Start && out[len(out)-1].End == slot.End {
			continue
		}
		out = append(out, slot)
	}
	return out
}
