package study

import "time"

// timerTickMsg drives the exam elapsed-time counter, once per second.
// The tick chain stops as soon as the engine reports the session has
// left its active phase.
type timerTickMsg time.Time
