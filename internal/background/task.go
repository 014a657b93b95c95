// Package background runs mailbox scans off the request path and tracks
// their results.
package background

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TaskStatus represents the status of a background task
type TaskStatus string

const (
	TaskStatusAccepted   TaskStatus = "ACCEPTED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusSuccess    TaskStatus = "SUCCESS"
	TaskStatusFailure    TaskStatus = "FAILURE"
)

// TaskType represents the type of background task
type TaskType string

// TaskTypeScan is the only task this service runs in the background.
const TaskTypeScan TaskType = "scan"

// TaskResult represents the result of a background task
type TaskResult struct {
	ProcessID   string      `json:"processId"`
	Type        TaskType    `json:"type"`
	Status      TaskStatus  `json:"status"`
	Data        interface{} `json:"data,omitempty"`
	Error       string      `json:"error,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
}

// ScanTaskData is the payload of a finished scan task.
type ScanTaskData struct {
	UserID  string `json:"user_id"`
	Query   string `json:"query"`
	Created int    `json:"created"`
}

// TaskStore defines the interface for storing and retrieving task results
type TaskStore interface {
	Store(ctx context.Context, result *TaskResult) error
	Get(ctx context.Context, processID string) (*TaskResult, error)
}

// ErrTaskNotFound is returned when a process ID is unknown.
var ErrTaskNotFound = fmt.Errorf("task not found")

// taskTTL bounds how long finished task results stay readable.
const taskTTL = 24 * time.Hour

// RedisTaskStore implements TaskStore on Redis so task status survives
// process restarts.
type RedisTaskStore struct {
	client *redis.Client
}

// NewRedisTaskStore creates a Redis-backed task store.
func NewRedisTaskStore(client *redis.Client) *RedisTaskStore {
	return &RedisTaskStore{client: client}
}

// Store stores a task result
func (s *RedisTaskStore) Store(ctx context.Context, result *TaskResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling task result: %w", err)
	}
	if err := s.client.Set(ctx, taskKey(result.ProcessID), data, taskTTL).Err(); err != nil {
		return fmt.Errorf("storing task result: %w", err)
	}
	return nil
}

// Get retrieves a task result by process ID
func (s *RedisTaskStore) Get(ctx context.Context, processID string) (*TaskResult, error) {
	data, err := s.client.Get(ctx, taskKey(processID)).Bytes()
	if err == redis.Nil {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading task result: %w", err)
	}

	var result TaskResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshaling task result: %w", err)
	}
	return &result, nil
}

func taskKey(processID string) string {
	return "jobtrail:task:" + processID
}

// InMemoryTaskStore implements TaskStore using in-memory storage. Used in
// tests and when Redis is unavailable.
type InMemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*TaskResult
}

// NewInMemoryTaskStore creates a new in-memory task store
func NewInMemoryTaskStore() *InMemoryTaskStore {
	return &InMemoryTaskStore{tasks: make(map[string]*TaskResult)}
}

// Store stores a copy of the task result. The manager keeps mutating its own
// pointer while the task runs; sharing it with concurrent Get callers would
// race.
func (s *InMemoryTaskStore) Store(ctx context.Context, result *TaskResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *result
	s.tasks[result.ProcessID] = &stored
	return nil
}

// Get retrieves a copy of the task result by process ID.
func (s *InMemoryTaskStore) Get(ctx context.Context, processID string) (*TaskResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, exists := s.tasks[processID]
	if !exists {
		return nil, ErrTaskNotFound
	}
	out := *result
	return &out, nil
}
