package wizard

import (
	"sync"
	"time"
)

// scheduler runs the delayed bot turns of a single session. The delays
// simulate the bot "typing"; they have no failure mode, but they must be
// cancellable on session teardown so that a torn-down session's callbacks
// never mutate state or leak event channels.
type scheduler struct {
	mu     sync.Mutex
	closed bool
	tasks  map[*scheduledTask]struct{}
}

type scheduledTask struct {
	timer *time.Timer
	// events is the turn's event channel. Exactly one party closes it: the
	// task callback if it runs, or close() if the timer was stopped first.
	events chan Event
}

func newScheduler() *scheduler {
	return &scheduler{
		tasks: make(map[*scheduledTask]struct{}),
	}
}

// schedule runs fn after delay d. Returns false when the scheduler is already
// closed, in which case fn will never run and the caller keeps ownership of
// the events channel.
func (sc *scheduler) schedule(d time.Duration, events chan Event, fn func()) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.closed {
		return false
	}
	task := &scheduledTask{events: events}
	task.timer = time.AfterFunc(d, func() {
		sc.remove(task)
		fn()
	})
	sc.tasks[task] = struct{}{}
	return true
}

func (sc *scheduler) remove(task *scheduledTask) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	delete(sc.tasks, task)
}

// close stops all outstanding timers. Event channels of tasks that had not
// fired yet are closed here so that consumers unblock.
func (sc *scheduler) close() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.closed {
		return
	}
	sc.closed = true
	for task := range sc.tasks {
		if task.timer.Stop() {
			// Timer had not fired, the callback will never run.
			close(task.events)
		}
		delete(sc.tasks, task)
	}
}
