package server

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	minutesPerDay  = 24 * 60
	minutesPerWeek = 7 * minutesPerDay

	defaultOverrideDuration = 15 * time.Minute
)

// Lockdown rejects redeploys while a manual lock is set or the current time falls
// into one of the recurring weekly windows.
type Lockdown struct {
	mu           sync.RWMutex
	manualLock   bool
	overrideMode bool
	Schedules    []LockdownSchedule

	now              func() time.Time
	overrideDuration time.Duration
	// onRelock is called when a scheduled window takes effect again after an override.
	onRelock func()
}

type LockdownSchedule struct {
	StartDay  time.Weekday
	StartHour int
	StartMin  int
	EndDay    time.Weekday
	EndHour   int
	EndMin    int
}

// NewLockdown parses schedules when provided.
// Expected format: "Fri 17:00 - Mon 08:00, Wed 12:00 - Wed 13:00"
func NewLockdown(schedules string) (*Lockdown, error) {
	lockdown := &Lockdown{
		now:              time.Now,
		overrideDuration: defaultOverrideDuration,
	}
	if schedules != "" {
		if err := lockdown.Parse(schedules); err != nil {
			return nil, err
		}
	}
	return lockdown, nil
}

func (l *Lockdown) Parse(schedules string) error {
	var parsed []LockdownSchedule

	for _, window := range strings.Split(schedules, ",") {
		bounds := strings.Split(strings.TrimSpace(window), "-")
		if len(bounds) != 2 {
			return fmt.Errorf("invalid lockdown window %q", window)
		}

		startDay, startHour, startMin, err := parseWeekTime(bounds[0])
		if err != nil {
			return err
		}
		endDay, endHour, endMin, err := parseWeekTime(bounds[1])
		if err != nil {
			return err
		}

		parsed = append(parsed, LockdownSchedule{
			StartDay:  startDay,
			StartHour: startHour,
			StartMin:  startMin,
			EndDay:    endDay,
			EndHour:   endHour,
			EndMin:    endMin,
		})
	}

	l.mu.Lock()
	l.Schedules = append(l.Schedules, parsed...)
	l.mu.Unlock()

	log.Debug().Msgf("Parsed lockdown schedules: %v", parsed)
	return nil
}

// IsLocked is true while the manual lock is set, or while a scheduled window is
// active and no override is in effect.
func (l *Lockdown) IsLocked() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.manualLock {
		return true
	}
	if l.overrideMode {
		return false
	}
	return l.inScheduleLocked()
}

func (l *Lockdown) inScheduleLocked() bool {
	now := l.clock()
	for _, schedule := range l.Schedules {
		if schedule.contains(now) {
			return true
		}
	}
	return false
}

// SetLock locks redeploys until ReleaseLock is called, regardless of schedules.
func (l *Lockdown) SetLock() {
	l.mu.Lock()
	l.manualLock = true
	l.mu.Unlock()
}

// ReleaseLock clears the manual lock. If a scheduled window is active it is
// overridden for a limited time, after which the lock applies again.
func (l *Lockdown) ReleaseLock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.manualLock = false
	if l.overrideMode || !l.inScheduleLocked() {
		return
	}

	l.overrideMode = true
	duration := l.overrideDuration
	if duration <= 0 {
		duration = defaultOverrideDuration
	}

	time.AfterFunc(duration, func() {
		l.mu.Lock()
		l.overrideMode = false
		relock := l.onRelock
		l.mu.Unlock()

		if relock != nil && l.IsLocked() {
			relock()
		}
	})
}

func (l *Lockdown) clock() time.Time {
	if l.now == nil {
		return time.Now()
	}
	return l.now()
}

// contains reports whether t falls into the window. Windows ending before they
// start wrap around the end of the week. The end minute is exclusive.
func (s LockdownSchedule) contains(t time.Time) bool {
	start := weekMinute(s.StartDay, s.StartHour, s.StartMin)
	end := weekMinute(s.EndDay, s.EndHour, s.EndMin)
	current := weekMinute(t.Weekday(), t.Hour(), t.Minute())

	if start <= end {
		return current >= start && current < end
	}
	return current >= start || current < end
}

func weekMinute(day time.Weekday, hour, minute int) int {
	return (int(day)*minutesPerDay + hour*60 + minute) % minutesPerWeek
}

// parseWeekTime parses values such as "Mon 08:30".
func parseWeekTime(value string) (time.Weekday, int, int, error) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return 0, 0, 0, fmt.Errorf("invalid lockdown time %q", strings.TrimSpace(value))
	}

	day, err := dayToWeekday(parts[0])
	if err != nil {
		return 0, 0, 0, err
	}

	clock := strings.Split(parts[1], ":")
	if len(clock) != 2 {
		return 0, 0, 0, fmt.Errorf("invalid lockdown time %q", parts[1])
	}
	hour, err := strconv.Atoi(clock[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, 0, fmt.Errorf("invalid hour in %q", parts[1])
	}
	minute, err := strconv.Atoi(clock[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, 0, fmt.Errorf("invalid minute in %q", parts[1])
	}

	return day, hour, minute, nil
}

func dayToWeekday(day string) (time.Weekday, error) {
	switch day {
	case "Sun":
		return time.Sunday, nil
	case "Mon":
		return time.Monday, nil
	case "Tue":
		return time.Tuesday, nil
	case "Wed":
		return time.Wednesday, nil
	case "Thu":
		return time.Thursday, nil
	case "Fri":
		return time.Friday, nil
	case "Sat":
		return time.Saturday, nil
	default:
		return 0, fmt.Errorf("invalid day %q", day)
	}
}
