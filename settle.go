package glide

import "time"

// settleTimer fires fn once no reset has happened for the settle duration.
// Every reset cancels the pending timer and arms a new one. It relies on the
// host scheduler for serialization, so it carries no lock.
type settleTimer struct {
	sched    Scheduler
	duration time.Duration
	pending  Timer
}

func newSettleTimer(sched Scheduler, d time.Duration) *settleTimer {
	return &settleTimer{sched: sched, duration: d}
}

// reset cancels any pending call and schedules fn after the settle duration.
func (s *settleTimer) reset(fn func()) {
	s.stop()
	var t Timer
	t = s.sched.AfterFunc(s.duration, func() {
		if s.pending == t {
			s.pending = nil
		}
		fn()
	})
	s.pending = t
}

// stop cancels the pending call, if any.
func (s *settleTimer) stop() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

// active reports whether a call is pending.
func (s *settleTimer) active() bool {
	return s.pending != nil
}
