package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/booking"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/clinic"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/pkg/metrics"
)

// Prometheus collectors register globally, so the whole test binary
// shares one collector.
var testCollector = metrics.NewCollector("clinicbook_test")

type fakeBookingRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*booking.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: make(map[uuid.UUID]*booking.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.IsCancelled {
			continue
		}
		if existing.DoctorID != b.DoctorID && existing.PatientID != b.PatientID {
			continue
		}
		if existing.Overlaps(b.StartTime, b.EndTime) {
			return booking.ErrBookingConflict
		}
	}

	cp := *b
	r.byID[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.byID[id]; ok {
		b.IsCancelled = true
	}
	return nil
}

func (r *fakeBookingRepo) List(_ context.Context, q *booking.ListBookingsQuery) ([]*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*booking.Booking
	for _, b := range r.byID {
		if q.PatientID != 0 && b.PatientID != q.PatientID {
			continue
		}
		if q.ExcludeCancelled && b.IsCancelled {
			continue
		}
		if q.StartAfter != nil && !b.StartTime.After(*q.StartAfter) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBookingRepo) FindOverlapping(_ context.Context, q *booking.OverlapQuery) ([]*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*booking.Booking
	for _, b := range r.byID {
		if b.IsCancelled {
			continue
		}
		if q.PatientID != 0 && b.PatientID != q.PatientID {
			continue
		}
		if q.PatientID == 0 && b.DoctorID != q.DoctorID {
			continue
		}
		if b.Overlaps(q.Start, q.End) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakePatientRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*patient.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{nextID: 1, byID: make(map[int64]*patient.Patient)}
}

func (r *fakePatientRepo) add(p *patient.Patient) *patient.Patient {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.byID[p.ID] = p
	return p
}

func (r *fakePatientRepo) Create(_ context.Context, p *patient.Patient) error {
	r.add(p)
	return nil
}

func (r *fakePatientRepo) GetByID(_ context.Context, id int64) (*patient.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	return p, nil
}

func (r *fakePatientRepo) GetWithClinic(ctx context.Context, id int64) (*patient.Patient, error) {
	return r.GetByID(ctx, id)
}

func (r *fakePatientRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.byID {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePatientRepo) List(_ context.Context) ([]*patient.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*patient.Patient, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

type fakeDoctorRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*doctor.Doctor
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{nextID: 1, byID: make(map[int64]*doctor.Doctor)}
}

func (r *fakeDoctorRepo) add(d *doctor.Doctor) *doctor.Doctor {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == 0 {
		d.ID = r.nextID
		r.nextID++
	}
	r.byID[d.ID] = d
	return d
}

func (r *fakeDoctorRepo) Create(_ context.Context, d *doctor.Doctor) error {
	r.add(d)
	return nil
}

func (r *fakeDoctorRepo) GetByID(_ context.Context, id int64) (*doctor.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}
	return d, nil
}

func (r *fakeDoctorRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.byID {
		if d.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDoctorRepo) List(_ context.Context) ([]*doctor.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*doctor.Doctor, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}
	return out, nil
}

type fakeClinicRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*clinic.Clinic
}

func newFakeClinicRepo() *fakeClinicRepo {
	return &fakeClinicRepo{nextID: 1, byID: make(map[int64]*clinic.Clinic)}
}

func (r *fakeClinicRepo) add(c *clinic.Clinic) *clinic.Clinic {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	}
	r.byID[c.ID] = c
	return c
}

func (r *fakeClinicRepo) Create(_ context.Context, c *clinic.Clinic) error {
	r.add(c)
	return nil
}

func (r *fakeClinicRepo) GetByID(_ context.Context, id int64) (*clinic.Clinic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, clinic.ErrClinicNotFound
	}
	return c, nil
}

func (r *fakeClinicRepo) List(_ context.Context) ([]*clinic.Clinic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*clinic.Clinic, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	return nil
}
