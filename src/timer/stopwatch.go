package timer

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Stopwatch reports the wall clock and the time elapsed since the previous read.
type Stopwatch struct {
	mu       sync.Mutex
	now      func() time.Time
	lastRead time.Time
	read     bool
}

func NewStopwatch() *Stopwatch {
	return &Stopwatch{now: time.Now}
}

// Read renders the current time and, after the first read, the elapsed time.
func (s *Stopwatch) Read() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var b strings.Builder
	fmt.Fprintf(&b, "Current time: %d.%09d\n", now.Unix(), now.Nanosecond())
	if s.read {
		elapsed := now.Sub(s.lastRead)
		fmt.Fprintf(&b, "Elapsed time: %d.%09d\n", elapsed/time.Second, elapsed%time.Second)
	}
	s.read = true
	s.lastRead = now
	return b.String()
}
