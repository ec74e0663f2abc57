// Package scheduler runs the bot's recurring tasks on a one-minute tick.
// Automated runs are trusted callers: the gate bypass is enabled for the
// duration of each task and restored afterwards.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"shinz/internal/access"
	"shinz/pkg/log"
)

// TaskType names a kind of scheduled work.
type TaskType string

const (
	TaskGMTweet       TaskType = "gm_tweet"
	TaskGasbackUpdate TaskType = "gasback_update"
	TaskNFTUpdate     TaskType = "nft_update"
	TaskEngagement    TaskType = "community_engagement"
)

// Runner executes one kind of task.
type Runner func(ctx context.Context) error

// Task is one recurring entry in the schedule. Either Every is set (fixed
// interval) or AtHour is >= 0 (daily, or weekly when Weekday is set).
type Task struct {
	ID          string
	Type        TaskType
	Description string
	Priority    string
	Every       time.Duration
	AtHour      int
	Weekday     *time.Weekday
	Enabled     bool
	LastRun     time.Time
	NextRun     time.Time
}

// Status is a snapshot of the scheduler for the HTTP surface.
type Status struct {
	Running      bool   `json:"running"`
	TotalTasks   int    `json:"totalTasks"`
	EnabledTasks int    `json:"enabledTasks"`
	NextTaskID   string `json:"nextTask,omitempty"`
	Tasks        []Task `json:"tasks"`
}

// Scheduler owns the task table and the tick loop.
type Scheduler struct {
	mu      sync.Mutex
	tasks   map[string]*Task
	runners map[TaskType]Runner
	gate    *access.Gate
	running bool
	stop    chan struct{}
	now     func() time.Time
}

const tickInterval = time.Minute

// New creates a scheduler with the default task table.
func New(gate *access.Gate, runners map[TaskType]Runner) *Scheduler {
	s := &Scheduler{
		tasks:   make(map[string]*Task),
		runners: runners,
		gate:    gate,
		now:     time.Now,
	}
	for _, t := range defaultTasks() {
		s.AddTask(t)
	}
	return s
}

func monday() *time.Weekday {
	d := time.Monday
	return &d
}

func defaultTasks() []Task {
	return []Task{
		{
			ID:          "daily_gm_tweet",
			Type:        TaskGMTweet,
			Description: "Post daily GM tweet to @ShapeL2 Shapers with seishinz.xyz",
			Priority:    "high",
			AtHour:      9,
			Enabled:     true,
		},
		{
			ID:          "weekly_gasback_update",
			Type:        TaskGasbackUpdate,
			Description: "Post weekly Gasback rewards update",
			Priority:    "medium",
			AtHour:      10,
			Weekday:     monday(),
			Enabled:     true,
		},
		{
			ID:          "daily_nft_update",
			Type:        TaskNFTUpdate,
			Description: "Post daily NFT collection analytics",
			Priority:    "medium",
			AtHour:      14,
			Enabled:     true,
		},
		{
			ID:          "community_engagement",
			Type:        TaskEngagement,
			Description: "Check and reply to community mentions",
			Priority:    "high",
			Every:       4 * time.Hour,
			Enabled:     true,
		},
	}
}

// AddTask registers a task. A missing ID gets a generated one; NextRun is
// computed when unset.
func (s *Scheduler) AddTask(t Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.NextRun.IsZero() {
		t.NextRun = nextRun(t, s.now())
	}
	s.tasks[t.ID] = &t
}

// RemoveTask deletes a task by id.
func (s *Scheduler) RemoveTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return false
	}
	delete(s.tasks, id)
	return true
}

// SetEnabled toggles a task.
func (s *Scheduler) SetEnabled(id string, enabled bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	t.Enabled = enabled
	return true
}

// nextRun computes when a task is due after now.
func nextRun(t Task, now time.Time) time.Time {
	if t.Every > 0 {
		return now.Add(t.Every)
	}
	if t.AtHour >= 0 && t.AtHour < 24 {
		next := time.Date(now.Year(), now.Month(), now.Day(), t.AtHour, 0, 0, 0, now.Location())
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
		if t.Weekday != nil {
			for next.Weekday() != *t.Weekday {
				next = next.AddDate(0, 0, 1)
			}
		}
		return next
	}
	// Misconfigured task: check again in an hour rather than spinning.
	return now.Add(time.Hour)
}

// Start launches the tick loop. Calling Start on a running scheduler is a
// no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	stop := s.stop
	s.mu.Unlock()

	log.GlobalInfo("scheduler started", "tasks", len(s.tasks))

	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()

		s.runDue(ctx)
		for {
			select {
			case <-ticker.C:
				s.runDue(ctx)
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the tick loop.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stop)
	log.GlobalInfo("scheduler stopped")
}

// Running reports whether the tick loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// runDue executes every enabled task whose NextRun has passed.
func (s *Scheduler) runDue(ctx context.Context) {
	now := s.now()

	s.mu.Lock()
	var due []*Task
	for _, t := range s.tasks {
		if t.Enabled && !now.Before(t.NextRun) {
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		s.execute(ctx, t)
	}
}

// execute runs one task under gate bypass and reschedules it. Failures are
// logged and the task still advances; there are no retries.
func (s *Scheduler) execute(ctx context.Context, t *Task) {
	runner, ok := s.runners[t.Type]
	if !ok {
		log.GlobalWarn("no runner for task", "task", t.ID, "type", string(t.Type))
		return
	}

	log.GlobalInfo("executing task", "task", t.ID, "description", t.Description)

	wasBypassed := s.gate.BypassEnabled()
	s.gate.EnableBypass()
	err := runner(ctx)
	if !wasBypassed {
		s.gate.DisableBypass()
	}

	if err != nil {
		log.GlobalError("task failed", "task", t.ID, "error", err)
	} else {
		log.GlobalInfo("task completed", "task", t.ID)
	}

	now := s.now()
	s.mu.Lock()
	t.LastRun = now
	t.NextRun = nextRun(*t, now)
	s.mu.Unlock()
}

// Status returns a snapshot for the HTTP surface.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		Running:    s.running,
		TotalTasks: len(s.tasks),
		Tasks:      make([]Task, 0, len(s.tasks)),
	}

	var next *Task
	for _, t := range s.tasks {
		st.Tasks = append(st.Tasks, *t)
		if !t.Enabled {
			continue
		}
		st.EnabledTasks++
		if next == nil || t.NextRun.Before(next.NextRun) {
			next = t
		}
	}
	if next != nil {
		st.NextTaskID = next.ID
	}
	return st
}
