package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCoveredDates(t *testing.T) {
	l := &LeaveRequest{
		StartDate: day(2026, time.March, 10),
		EndDate:   day(2026, time.March, 12),
	}

	dates := l.CoveredDates()
	assert.Equal(t, []time.Time{
		day(2026, time.March, 10),
		day(2026, time.March, 11),
		day(2026, time.March, 12),
	}, dates)
}

func TestCoveredDatesSingleDay(t *testing.T) {
	l := &LeaveRequest{
		StartDate: day(2026, time.March, 10),
		EndDate:   day(2026, time.March, 10),
	}
	assert.Len(t, l.CoveredDates(), 1)
}

func TestCoversTruncatesToDay(t *testing.T) {
	l := &LeaveRequest{
		StartDate: day(2026, time.March, 10),
		EndDate:   day(2026, time.March, 11),
	}

	assert.True(t, l.Covers(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, l.Covers(time.Date(2026, time.March, 11, 23, 59, 59, 0, time.UTC)))
	assert.False(t, l.Covers(time.Date(2026, time.March, 9, 23, 59, 59, 0, time.UTC)))
	assert.False(t, l.Covers(time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)))
}

func TestCoversNonUTCInput(t *testing.T) {
	l := &LeaveRequest{
		StartDate: day(2026, time.March, 10),
		EndDate:   day(2026, time.March, 10),
	}

	// 23:00-0500 on Mar 10 is 04:00 UTC on Mar 11, outside the leave.
	est := time.FixedZone("EST", -5*3600)
	assert.False(t, l.Covers(time.Date(2026, time.March, 10, 23, 0, 0, 0, est)))
	// 02:00+0500 on Mar 10 is 21:00 UTC on Mar 9, also outside.
	ist := time.FixedZone("UTC+5", 5*3600)
	assert.False(t, l.Covers(time.Date(2026, time.March, 10, 2, 0, 0, 0, ist)))
	// Noon local in either zone falls on Mar 10 UTC.
	assert.True(t, l.Covers(time.Date(2026, time.March, 10, 12, 0, 0, 0, est)))
}

func TestAppointmentOverlaps(t *testing.T) {
	apt := &Appointment{
		StartTime: time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC),
	}

	assert.True(t, apt.Overlaps(
		time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC),
		time.Date(2026, time.March, 10, 10, 30, 0, 0, time.UTC),
	))
	// Touching the end boundary does not conflict.
	assert.False(t, apt.Overlaps(
		time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC),
	))
}

func TestUnavailabilityContains(t *testing.T) {
	p := UnavailabilityPeriod{
		StartTime: time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
	}

	assert.True(t, p.Contains(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(time.Date(2026, time.March, 10, 11, 59, 0, 0, time.UTC)))
	// The interval is half-open.
	assert.False(t, p.Contains(time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)))
}
