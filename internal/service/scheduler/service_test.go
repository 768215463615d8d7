package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/pkg/errors"
	"github.com/hms-backend/hms-api/pkg/metrics"
)

// Registered once; promauto panics on duplicate registration.
var testMetrics = metrics.NewMetrics("scheduler_test")

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, apt *model.Appointment) error {
	for _, existing := range r.appointments {
		if existing.DoctorID == apt.DoctorID && existing.Active() &&
			existing.Overlaps(apt.StartTime, apt.EndTime) {
			return errors.Conflict("doctor already booked at this time")
		}
	}
	if apt.ID == uuid.Nil {
		apt.ID = uuid.New()
	}
	cp := *apt
	r.appointments[apt.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := r.appointments[id]
	if !ok {
		return nil, errors.NotFound("appointment", nil)
	}
	cp := *apt
	return &cp, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, apt *model.Appointment) error {
	if _, ok := r.appointments[apt.ID]; !ok {
		return errors.NotFound("appointment", nil)
	}
	cp := *apt
	r.appointments[apt.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) List(_ context.Context, _ *model.AppointmentFilters) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range r.appointments {
		out = append(out, apt)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListActiveByDoctor(_ context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range r.appointments {
		if apt.DoctorID == doctorID && apt.Active() {
			cp := *apt
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListActiveByDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	active, _ := r.ListActiveByDoctor(ctx, doctorID)
	var out []*model.Appointment
	for _, apt := range active {
		if apt.Overlaps(from, to) {
			out = append(out, apt)
		}
	}
	return out, nil
}

type fakeUnavailRepo struct {
	periods []*model.UnavailabilityPeriod
}

func (r *fakeUnavailRepo) Create(_ context.Context, p *model.UnavailabilityPeriod) error {
	r.periods = append(r.periods, p)
	return nil
}

func (r *fakeUnavailRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]*model.UnavailabilityPeriod, error) {
	var out []*model.UnavailabilityPeriod
	for _, p := range r.periods {
		if p.DoctorID == doctorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeUnavailRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type fakeLeaveRepo struct {
	leaves map[uuid.UUID]*model.LeaveRequest
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{leaves: make(map[uuid.UUID]*model.LeaveRequest)}
}

func (r *fakeLeaveRepo) Create(_ context.Context, l *model.LeaveRequest) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.leaves[l.ID] = l
	return nil
}

func (r *fakeLeaveRepo) Get(_ context.Context, id uuid.UUID) (*model.LeaveRequest, error) {
	l, ok := r.leaves[id]
	if !ok {
		return nil, errors.NotFound("leave request", nil)
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLeaveRepo) Update(_ context.Context, l *model.LeaveRequest) error {
	cp := *l
	r.leaves[l.ID] = &cp
	return nil
}

func (r *fakeLeaveRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]*model.LeaveRequest, error) {
	var out []*model.LeaveRequest
	for _, l := range r.leaves {
		if l.DoctorID == doctorID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) ListPending(_ context.Context) ([]*model.LeaveRequest, error) {
	var out []*model.LeaveRequest
	for _, l := range r.leaves {
		if l.Status == model.LeaveStatusPending {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("user", nil)
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.NotFound("user", nil)
}

func (r *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, _ uuid.UUID, _ string) error { return nil }
func (r *fakeUserRepo) Deactivate(_ context.Context, _ uuid.UUID) error               { return nil }
func (r *fakeUserRepo) ListStaff(_ context.Context, _ *uuid.UUID, _ int) ([]*model.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) SearchStaffByName(_ context.Context, _ string, _ int) ([]*model.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) SearchStaffBySpecialization(_ context.Context, _ string, _ int) ([]*model.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) ListSpecializations(_ context.Context) ([]string, error) { return nil, nil }

type fakeNotifier struct {
	sent []*model.Notification
}

func (n *fakeNotifier) Send(msg *model.Notification) {
	n.sent = append(n.sent, msg)
}

type fixture struct {
	svc          *Service
	appointments *fakeAppointmentRepo
	unavail      *fakeUnavailRepo
	leaves       *fakeLeaveRepo
	users        *fakeUserRepo
	notifier     *fakeNotifier
	doctor       *model.User
	patient      *model.User
}

func newFixture() *fixture {
	doctor := &model.User{
		Base:   model.Base{ID: uuid.New()},
		Email:  "doctor@example.com",
		Role:   model.RoleStaff,
		Active: true,
	}
	patient := &model.User{
		Base:   model.Base{ID: uuid.New()},
		Email:  "patient@example.com",
		Role:   model.RolePatient,
		Active: true,
	}

	appointments := newFakeAppointmentRepo()
	unavail := &fakeUnavailRepo{}
	leaves := newFakeLeaveRepo()
	users := newFakeUserRepo(doctor, patient)
	notifier := &fakeNotifier{}

	return &fixture{
		svc:          NewService(appointments, unavail, leaves, users, notifier, testMetrics),
		appointments: appointments,
		unavail:      unavail,
		leaves:       leaves,
		users:        users,
		notifier:     notifier,
		doctor:       doctor,
		patient:      patient,
	}
}

func (f *fixture) book(t *testing.T, start, end time.Time) *model.Appointment {
	t.Helper()
	apt, err := f.svc.Book(context.Background(), &model.CreateAppointmentRequest{
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)
	return apt
}

func at(hour int) time.Time {
	return time.Date(2026, time.March, 10, hour, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical", at(9), at(10), at(9), at(10), true},
		{"contained", at(9), at(12), at(10), at(11), true},
		{"partial", at(9), at(11), at(10), at(12), true},
		{"touching end to start", at(9), at(10), at(10), at(11), false},
		{"touching start to end", at(10), at(11), at(9), at(10), false},
		{"disjoint", at(9), at(10), at(14), at(15), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.s1, tc.e1, tc.s2, tc.e2))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, Overlaps(tc.s2, tc.e2, tc.s1, tc.e1))
		})
	}
}

func TestCheckAvailability(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	verdict, err := f.svc.CheckAvailability(ctx, f.doctor.ID, at(9), at(10))
	require.NoError(t, err)
	assert.True(t, verdict.Available)

	f.book(t, at(9), at(10))

	verdict, err = f.svc.CheckAvailability(ctx, f.doctor.ID, at(9), at(10))
	require.NoError(t, err)
	assert.False(t, verdict.Available)
	assert.Equal(t, reasonBooked, verdict.Reason)

	// Back-to-back is fine.
	verdict, err = f.svc.CheckAvailability(ctx, f.doctor.ID, at(10), at(11))
	require.NoError(t, err)
	assert.True(t, verdict.Available)
}

func TestCheckAvailabilityRejectsInvertedInterval(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CheckAvailability(context.Background(), f.doctor.ID, at(10), at(9))
	assert.True(t, errors.IsCode(err, errors.ErrBadRequest))

	_, err = f.svc.CheckAvailability(context.Background(), f.doctor.ID, at(10), at(10))
	assert.True(t, errors.IsCode(err, errors.ErrBadRequest))
}

func TestCheckAvailabilityHonorsUnavailability(t *testing.T) {
	f := newFixture()
	f.unavail.periods = append(f.unavail.periods, &model.UnavailabilityPeriod{
		DoctorID:  f.doctor.ID,
		StartTime: at(9),
		EndTime:   at(12),
	})

	verdict, err := f.svc.CheckAvailability(context.Background(), f.doctor.ID, at(10), at(11))
	require.NoError(t, err)
	assert.False(t, verdict.Available)
	assert.Equal(t, reasonUnavailable, verdict.Reason)

	// A slot starting exactly at the end of the period is allowed.
	verdict, err = f.svc.CheckAvailability(context.Background(), f.doctor.ID, at(12), at(13))
	require.NoError(t, err)
	assert.True(t, verdict.Available)
}

func TestBookConflict(t *testing.T) {
	f := newFixture()

	f.book(t, at(9), at(10))

	_, err := f.svc.Book(context.Background(), &model.CreateAppointmentRequest{
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		StartTime: at(9).Add(30 * time.Minute),
		EndTime:   at(10).Add(30 * time.Minute),
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConflict))
}

func TestBookUnknownDoctor(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Book(context.Background(), &model.CreateAppointmentRequest{
		PatientID: f.patient.ID,
		DoctorID:  uuid.New(),
		StartTime: at(9),
		EndTime:   at(10),
	})
	assert.True(t, errors.IsCode(err, errors.ErrNotFound))
}

func TestBookPatientAsDoctorRejected(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Book(context.Background(), &model.CreateAppointmentRequest{
		PatientID: f.patient.ID,
		DoctorID:  f.patient.ID,
		StartTime: at(9),
		EndTime:   at(10),
	})
	assert.True(t, errors.IsCode(err, errors.ErrNotFound))
}

func TestBookNotifiesPatient(t *testing.T) {
	f := newFixture()

	f.book(t, at(9), at(10))

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, f.patient.Email, f.notifier.sent[0].To)
}

func TestCancel(t *testing.T) {
	f := newFixture()
	apt := f.book(t, at(9), at(10))

	cancelled, err := f.svc.Cancel(context.Background(), apt.ID, "patient request")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelReason)
	assert.Equal(t, "patient request", *cancelled.CancelReason)

	// The slot opens up again.
	verdict, err := f.svc.CheckAvailability(context.Background(), f.doctor.ID, at(9), at(10))
	require.NoError(t, err)
	assert.True(t, verdict.Available)
}

func TestCancelIsTerminal(t *testing.T) {
	f := newFixture()
	apt := f.book(t, at(9), at(10))

	_, err := f.svc.Cancel(context.Background(), apt.ID, "first")
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), apt.ID, "second")
	assert.True(t, errors.IsCode(err, errors.ErrConflict))
}

func TestCancelCompletedRejected(t *testing.T) {
	f := newFixture()
	apt := f.book(t, at(9), at(10))

	_, err := f.svc.Complete(context.Background(), apt.ID, "rest and fluids")
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), apt.ID, "too late")
	assert.True(t, errors.IsCode(err, errors.ErrConflict))
}

func TestComplete(t *testing.T) {
	f := newFixture()
	apt := f.book(t, at(9), at(10))

	done, err := f.svc.Complete(context.Background(), apt.ID, "rest and fluids")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, done.Status)
	assert.Equal(t, "rest and fluids", done.Prescription)

	_, err = f.svc.Complete(context.Background(), apt.ID, "again")
	assert.True(t, errors.IsCode(err, errors.ErrConflict))
}

func TestApproveLeaveCascade(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	covered := f.book(t, at(9), at(10))
	coveredLate := f.book(t, at(15), at(16))
	outside, err := f.svc.Book(ctx, &model.CreateAppointmentRequest{
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		StartTime: at(9).AddDate(0, 0, 5),
		EndTime:   at(10).AddDate(0, 0, 5),
	})
	require.NoError(t, err)

	leave := &model.LeaveRequest{
		DoctorID:  f.doctor.ID,
		StartDate: at(0),
		EndDate:   at(0).AddDate(0, 0, 1),
		Reason:    "conference",
		Status:    model.LeaveStatusPending,
	}
	require.NoError(t, f.leaves.Create(ctx, leave))

	approved, err := f.svc.ApproveLeave(ctx, leave.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LeaveStatusApproved, approved.Status)

	for _, id := range []uuid.UUID{covered.ID, coveredLate.ID} {
		apt, err := f.appointments.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.AppointmentStatusCancelled, apt.Status)
		require.NotNil(t, apt.CancelReason)
		assert.Equal(t, "doctor on leave", *apt.CancelReason)
	}

	untouched, err := f.appointments.Get(ctx, outside.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, untouched.Status)
}

func TestApproveLeaveTwiceRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	leave := &model.LeaveRequest{
		DoctorID:  f.doctor.ID,
		StartDate: at(0),
		EndDate:   at(0),
		Status:    model.LeaveStatusPending,
	}
	require.NoError(t, f.leaves.Create(ctx, leave))

	_, err := f.svc.ApproveLeave(ctx, leave.ID)
	require.NoError(t, err)

	_, err = f.svc.ApproveLeave(ctx, leave.ID)
	assert.True(t, errors.IsCode(err, errors.ErrConflict))
}

func TestApproveLeaveSkipsNonActive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	apt := f.book(t, at(9), at(10))
	_, err := f.svc.Cancel(ctx, apt.ID, "patient request")
	require.NoError(t, err)

	leave := &model.LeaveRequest{
		DoctorID:  f.doctor.ID,
		StartDate: at(0),
		EndDate:   at(0),
		Status:    model.LeaveStatusPending,
	}
	require.NoError(t, f.leaves.Create(ctx, leave))

	_, err = f.svc.ApproveLeave(ctx, leave.ID)
	require.NoError(t, err)

	got, err := f.appointments.Get(ctx, apt.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CancelReason)
	assert.Equal(t, "patient request", *got.CancelReason)
}
