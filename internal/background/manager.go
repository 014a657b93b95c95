package background

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jobtrail/internal/logging"
	"jobtrail/pkg/utils"
)

// Manager launches background tasks and records their lifecycle in the task
// store. Concurrency is bounded; a full semaphore rejects the submission
// instead of queueing unbounded work.
type Manager struct {
	store       TaskStore
	sem         chan struct{}
	taskTimeout time.Duration

	mu      sync.Mutex
	wg      sync.WaitGroup
	stopped bool
}

// NewManager creates a task manager allowing up to maxConcurrent tasks.
func NewManager(store TaskStore, maxConcurrent int, taskTimeout time.Duration) *Manager {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	if taskTimeout <= 0 {
		taskTimeout = 5 * time.Minute
	}
	return &Manager{
		store:       store,
		sem:         make(chan struct{}, maxConcurrent),
		taskTimeout: taskTimeout,
	}
}

// Submit registers a task and runs it on its own goroutine, returning the
// process ID callers poll for the result.
func (m *Manager) Submit(taskType TaskType, run func(ctx context.Context) (interface{}, error)) (string, error) {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return "", fmt.Errorf("task manager is shut down")
	}

	select {
	case m.sem <- struct{}{}:
	default:
		m.mu.Unlock()
		return "", fmt.Errorf("too many background tasks in flight")
	}

	processID := utils.GenerateRequestID()
	result := &TaskResult{
		ProcessID: processID,
		Type:      taskType,
		Status:    TaskStatusAccepted,
		CreatedAt: time.Now(),
	}
	m.wg.Add(1)
	m.mu.Unlock()

	if err := m.store.Store(context.Background(), result); err != nil {
		<-m.sem
		m.wg.Done()
		return "", fmt.Errorf("registering task: %w", err)
	}

	go m.execute(result, run)
	return processID, nil
}

// Get returns the current state of a task.
func (m *Manager) Get(ctx context.Context, processID string) (*TaskResult, error) {
	return m.store.Get(ctx, processID)
}

// Shutdown stops accepting tasks and waits for running ones, bounded by ctx.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for background tasks: %w", ctx.Err())
	}
}

func (m *Manager) execute(result *TaskResult, run func(ctx context.Context) (interface{}, error)) {
	defer func() {
		<-m.sem
		m.wg.Done()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), m.taskTimeout)
	defer cancel()

	log := logging.Logger.With().Str("process_id", result.ProcessID).Str("type", string(result.Type)).Logger()
	ctx = log.WithContext(ctx)

	result.Status = TaskStatusProcessing
	if err := m.store.Store(ctx, result); err != nil {
		log.Warn().Err(err).Msg("updating task status failed")
	}

	data, err := run(ctx)
	now := time.Now()
	result.CompletedAt = &now
	if err != nil {
		result.Status = TaskStatusFailure
		result.Error = err.Error()
		log.Warn().Err(err).Msg("background task failed")
	} else {
		result.Status = TaskStatusSuccess
		result.Data = data
		log.Info().Msg("background task finished")
	}

	if err := m.store.Store(context.Background(), result); err != nil {
		log.Warn().Err(err).Msg("storing task result failed")
	}
}
