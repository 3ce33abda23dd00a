package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(t *testing.T, s string) ClockTime {
	t.Helper()
	c, err := ParseClock(s)
	require.NoError(t, err)
	return c
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    ClockTime
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:30", 510, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"8:30", 0, true},
		{"08:60", 0, true},
		{"noon!", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestNewShift(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()
	date := time.Date(2026, 6, 13, 9, 0, 0, 0, time.UTC)

	s, err := NewShift(companyID, employeeID, date, clock(t, "08:00"), clock(t, "16:30"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 13, 0, 0, 0, 0, time.UTC), s.Date)
	assert.Equal(t, "8.5", s.Hours().String())
	assert.Len(t, s.GetDomainEvents(), 1)

	_, err = NewShift(companyID, employeeID, date, clock(t, "16:00"), clock(t, "08:00"))
	assert.Error(t, err)

	_, err = NewShift(companyID, uuid.Nil, date, clock(t, "08:00"), clock(t, "09:00"))
	assert.Error(t, err)
}

func TestCheckNoOverlap(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()
	date := time.Date(2026, 6, 13, 0, 0, 0, 0, time.UTC)

	morning, _ := NewShift(companyID, employeeID, date, clock(t, "08:00"), clock(t, "12:00"))
	existing := []Shift{*morning}

	t.Run("touching shifts are fine", func(t *testing.T) {
		afternoon, _ := NewShift(companyID, employeeID, date, clock(t, "12:00"), clock(t, "17:00"))
		assert.NoError(t, CheckNoOverlap(existing, afternoon))
	})

	t.Run("overlap is rejected", func(t *testing.T) {
		clash, _ := NewShift(companyID, employeeID, date, clock(t, "11:00"), clock(t, "13:00"))
		err := CheckNoOverlap(existing, clash)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "08:00")
	})

	t.Run("other employee is fine", func(t *testing.T) {
		other, _ := NewShift(companyID, uuid.New(), date, clock(t, "08:00"), clock(t, "12:00"))
		assert.NoError(t, CheckNoOverlap(existing, other))
	})

	t.Run("other day is fine", func(t *testing.T) {
		next, _ := NewShift(companyID, employeeID, date.AddDate(0, 0, 1), clock(t, "08:00"), clock(t, "12:00"))
		assert.NoError(t, CheckNoOverlap(existing, next))
	})

	t.Run("same shift is ignored", func(t *testing.T) {
		assert.NoError(t, CheckNoOverlap(existing, morning))
	})
}

func TestNewTruckAssignment(t *testing.T) {
	a, err := NewTruckAssignment(uuid.New(), uuid.New(), uuid.New(), time.Date(2026, 6, 13, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, a.Date.Hour())

	_, err = NewTruckAssignment(uuid.New(), uuid.Nil, uuid.New(), time.Now())
	assert.Error(t, err)
}
