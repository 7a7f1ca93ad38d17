package scheduling

import (
	"context"
	"sync"
)

// DoctorDayLocker serializes the booking check-then-insert sequence per
// doctor+date. MongoDB cannot express an interval-exclusion constraint, so
// holding this lock across the conflict recheck and the insert is what keeps
// two concurrent bookings for overlapping windows from both succeeding.
// Acquire blocks until the lock is held or ctx is done; the returned release
// function must be called on every exit path.
type DoctorDayLocker interface {
	Acquire(ctx context.Context, doctorID, date string) (release func(), err error)
}

// memoryLocker is the in-process implementation, sufficient for a single
// instance and for tests. Entries are never evicted; the map is bounded by
// the doctor+date pairs actually booked.
type memoryLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewMemoryLocker returns a process-local DoctorDayLocker.
func NewMemoryLocker() DoctorDayLocker {
	return &memoryLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *memoryLocker) Acquire(_ context.Context, doctorID, date string) (func(), error) {
	l.mu.Lock()
	key := doctorID + "|" + date
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}
