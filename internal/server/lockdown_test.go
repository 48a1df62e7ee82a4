package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockdown_Parse(t *testing.T) {
	var testCases = []struct {
		input             string
		expectError       bool
		expectedSchedules []LockdownSchedule
	}{
		{"Fri 13:20 - Mon 06:30", false, []LockdownSchedule{
			{time.Friday, 13, 20, time.Monday, 6, 30},
		}},
		{"Fri 13:20 - Mon 06:30, Tue 03:00 - Thu 08:00", false, []LockdownSchedule{
			{time.Friday, 13, 20, time.Monday, 6, 30},
			{time.Tuesday, 3, 0, time.Thursday, 8, 0},
		}},
		{"13:20 - mon 06:30", true, nil},
		{"Fri - Mon 06:30", true, nil},
		{"Fri 13:20 -", true, nil},
		{"Fri 25:00 - Mon 06:30", true, nil},
		{"Fri 13:61 - Mon 06:30", true, nil},
		{"", true, nil},
	}

	for _, tt := range testCases {
		t.Run(tt.input, func(t *testing.T) {
			l := &Lockdown{}
			err := l.Parse(tt.input)

			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, l.Schedules)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedSchedules, l.Schedules)
			}
		})
	}
}

func TestLockdown_IsLocked_Schedule(t *testing.T) {
	friday := time.Date(2026, time.October, 16, 18, 0, 0, 0, time.UTC)
	require.Equal(t, time.Friday, friday.Weekday())

	lockdown, err := NewLockdown("Fri 17:00 - Mon 08:00")
	require.NoError(t, err)

	testCases := []struct {
		name     string
		now      time.Time
		expected bool
	}{
		{"friday evening", friday, true},
		{"friday before window", friday.Add(-2 * time.Hour), false},
		{"sunday", friday.Add(48 * time.Hour), true},
		{"monday before end", friday.Add(61*time.Hour + 59*time.Minute), true},
		{"monday at end", friday.Add(62 * time.Hour), false},
		{"wednesday", friday.Add(-48 * time.Hour), false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			lockdown.now = func() time.Time { return now }
			assert.Equal(t, tt.expected, lockdown.IsLocked())
		})
	}
}

func TestLockdown_SetLock_ReleaseLock(t *testing.T) {
	testCases := []struct {
		name         string
		action       func(l *Lockdown)
		expectedLock bool
	}{
		{
			name: "test setting the lock",
			action: func(l *Lockdown) {
				l.SetLock()
			},
			expectedLock: true,
		},
		{
			name: "test releasing the lock",
			action: func(l *Lockdown) {
				l.SetLock()
				l.ReleaseLock()
			},
			expectedLock: false,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLockdown("")
			require.NoError(t, err)
			tt.action(l)
			assert.Equal(t, tt.expectedLock, l.IsLocked())
		})
	}
}

func TestLockdown_ReleaseLockOverridesSchedule(t *testing.T) {
	friday := time.Date(2026, time.October, 16, 18, 0, 0, 0, time.UTC)

	lockdown, err := NewLockdown("Fri 17:00 - Mon 08:00")
	require.NoError(t, err)
	lockdown.now = func() time.Time { return friday }
	lockdown.overrideDuration = 10 * time.Millisecond

	relocked := make(chan struct{}, 1)
	lockdown.onRelock = func() { relocked <- struct{}{} }

	require.True(t, lockdown.IsLocked())

	lockdown.ReleaseLock()
	assert.False(t, lockdown.IsLocked())

	select {
	case <-relocked:
	case <-time.After(time.Second):
		t.Fatal("schedule did not apply again after the override expired")
	}
	assert.True(t, lockdown.IsLocked())
}
