package scheduling

import (
	"context"
	"sort"
	"sync"

	"shastho/database/repository"
	"shastho/models"

	"github.com/google/uuid"
)

// In-memory repository fakes backing the service tests. They mirror the
// MongoDB implementations' contracts, including the ErrNotFound sentinel and
// the conditional UpdateStatus.

type fakeDoctorRepo struct {
	doctors map[string]*models.Doctor
	err     error
}

func newFakeDoctorRepo(ids ...string) *fakeDoctorRepo {
	f := &fakeDoctorRepo{doctors: make(map[string]*models.Doctor)}
	for _, id := range ids {
		f.doctors[id] = &models.Doctor{ID: id, FullName: "Dr. " + id}
	}
	return f
}

func (f *fakeDoctorRepo) GetByID(_ context.Context, doctorID string) (*models.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.doctors[doctorID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return d, nil
}

func (f *fakeDoctorRepo) Exists(_ context.Context, doctorID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.doctors[doctorID]
	return ok, nil
}

type fakeTemplateRepo struct {
	mu        sync.Mutex
	templates map[string]*models.AvailabilityTemplate

	createErr error
	updateErr map[string]error
	deleteErr map[string]error
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{
		templates: make(map[string]*models.AvailabilityTemplate),
		updateErr: make(map[string]error),
		deleteErr: make(map[string]error),
	}
}

func (f *fakeTemplateRepo) Create(_ context.Context, t *models.AvailabilityTemplate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	cp := *t
	f.templates[t.ID] = &cp
	return nil
}

func (f *fakeTemplateRepo) Update(_ context.Context, t *models.AvailabilityTemplate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.updateErr[t.ID]; err != nil {
		return err
	}
	if _, ok := f.templates[t.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *t
	f.templates[t.ID] = &cp
	return nil
}

func (f *fakeTemplateRepo) DeleteByID(_ context.Context, doctorID, templateID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deleteErr[templateID]; err != nil {
		return err
	}
	t, ok := f.templates[templateID]
	if !ok || t.DoctorID != doctorID {
		return repository.ErrNotFound
	}
	delete(f.templates, templateID)
	return nil
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, templateID string) (*models.AvailabilityTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.templates[templateID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTemplateRepo) GetByDoctorID(_ context.Context, doctorID string) ([]models.AvailabilityTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AvailabilityTemplate
	for _, t := range f.templates {
		if t.DoctorID == doctorID {
			out = append(out, *t)
		}
	}
	sortTemplates(out)
	return out, nil
}

func (f *fakeTemplateRepo) GetByDoctorAndDay(_ context.Context, doctorID string, dayOfWeek int) ([]models.AvailabilityTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AvailabilityTemplate
	for _, t := range f.templates {
		if t.DoctorID == doctorID && t.DayOfWeek == dayOfWeek {
			out = append(out, *t)
		}
	}
	sortTemplates(out)
	return out, nil
}

func sortTemplates(ts []models.AvailabilityTemplate) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].DayOfWeek != ts[j].DayOfWeek {
			return ts[i].DayOfWeek < ts[j].DayOfWeek
		}
		return ts[i].Start < ts[j].Start
	})
}

type fakeAppointmentRepo struct {
	mu    sync.Mutex
	appts map[string]*models.Appointment

	createErr error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appts: make(map[string]*models.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	cp := *appt
	f.appts[appt.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointmentRepo) GetByDoctorAndDate(_ context.Context, doctorID, date string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.DoctorID == doctorID && a.Date == date {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) GetByDoctorID(_ context.Context, doctorID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) GetByPatientID(_ context.Context, patientID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) GetUpcomingByDoctor(_ context.Context, doctorID, fromDate string, limit int64) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.DoctorID == doctorID && a.Date >= fromDate && a.Status != models.AppointmentCancelled {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Start < out[j].Start
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id string, from, to models.AppointmentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok || a.Status != from {
		return repository.ErrNotFound
	}
	a.Status = to
	return nil
}

func (f *fakeAppointmentRepo) CountByDoctorAndStatus(_ context.Context, doctorID string, status models.AppointmentStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.appts {
		if a.DoctorID == doctorID && a.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeAppointmentRepo) CountByDoctorAndDate(_ context.Context, doctorID, date string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.appts {
		if a.DoctorID == doctorID && a.Date == date && a.Status != models.AppointmentCancelled {
			n++
		}
	}
	return n, nil
}

func (f *fakeAppointmentRepo) MarkNoShowBefore(_ context.Context, date string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.appts {
		if a.Status == models.AppointmentScheduled && a.Date < date {
			a.Status = models.AppointmentNoShow
			n++
		}
	}
	return n, nil
}
