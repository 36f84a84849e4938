package quiz

import (
	"time"

	sess "github.com/ratneshs230/prepdeck/internal/session"
)

// sessionReadyMsg is sent when session assembly (or snapshot restore)
// completes.
type sessionReadyMsg struct {
	Runner *sess.Runner
	Err    error
}

// timerTickMsg is sent every second to drive the countdown.
type timerTickMsg time.Time

// tutorPollMsg is sent at short intervals while a tutoring request is
// in flight.
type tutorPollMsg time.Time

// sessionEndMsg triggers the session end flow.
type sessionEndMsg struct{}
