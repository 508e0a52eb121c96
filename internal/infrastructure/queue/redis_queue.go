// Package queue implements the async task substrate on Redis: a ready list
// workers block on, plus a per-task state hash that polling clients read.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Task states mirror the vocabulary polling clients expect.
const (
	StatePending  = "PENDING"
	StateProgress = "PROGRESS"
	StateSuccess  = "SUCCESS"
	StateFailure  = "FAILURE"
)

// Task is one unit of deferred work pulled by a worker.
type Task struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// TaskStatus is the uniform polling snapshot for a task.
type TaskStatus struct {
	State   string          `json:"state"`
	Current int64           `json:"current"`
	Total   int64           `json:"total"`
	Status  string          `json:"status"`
	Result  json.RawMessage `json:"result,omitempty"`
}

// RedisQueue coordinates the ready list and task-state hashes in Redis.
type RedisQueue struct {
	client     *redis.Client
	readyKey   string
	metaPrefix string
	resultTTL  time.Duration
}

// NewRedisQueue builds a queue on an existing Redis client.
func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{
		client:     client,
		readyKey:   "tasks:ready",
		metaPrefix: "tasks:meta:",
		resultTTL:  24 * time.Hour,
	}
}

func (q *RedisQueue) metaKey(taskID string) string {
	return q.metaPrefix + taskID
}

// Enqueue registers a pending task and pushes it onto the ready list. The
// returned task ID is the handle polling clients use.
func (q *RedisQueue) Enqueue(ctx context.Context, name string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal task payload: %w", err)
	}

	task := Task{ID: uuid.NewString(), Name: name, Payload: body}
	raw, err := json.Marshal(task)
	if err != nil {
		return "", fmt.Errorf("marshal task: %w", err)
	}

	pipe := q.client.TxPipeline()
	pipe.HSet(ctx, q.metaKey(task.ID),
		"state", StatePending,
		"current", 0,
		"total", 1,
		"status", "Pending...",
	)
	pipe.RPush(ctx, q.readyKey, raw)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("enqueue task: %w", err)
	}

	return task.ID, nil
}

// Dequeue blocks up to timeout for the next ready task. It returns nil when
// nothing arrived.
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*Task, error) {
	res, err := q.client.BLPop(ctx, timeout, q.readyKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dequeue task: %w", err)
	}

	var task Task
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		return nil, fmt.Errorf("decode task: %w", err)
	}
	return &task, nil
}

// SetProgress records an in-flight progress snapshot for polling clients.
func (q *RedisQueue) SetProgress(ctx context.Context, taskID string, current, total int64, status string) error {
	return q.client.HSet(ctx, q.metaKey(taskID),
		"state", StateProgress,
		"current", current,
		"total", total,
		"status", status,
	).Err()
}

// Succeed marks the task finished and stores its result for later polls.
func (q *RedisQueue) Succeed(ctx context.Context, taskID string, current, total int64, status string, result any) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal task result: %w", err)
	}

	pipe := q.client.TxPipeline()
	pipe.HSet(ctx, q.metaKey(taskID),
		"state", StateSuccess,
		"current", current,
		"total", total,
		"status", status,
		"result", body,
	)
	pipe.Expire(ctx, q.metaKey(taskID), q.resultTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// Fail marks the task failed with the given reason.
func (q *RedisQueue) Fail(ctx context.Context, taskID string, reason string) error {
	pipe := q.client.TxPipeline()
	pipe.HSet(ctx, q.metaKey(taskID),
		"state", StateFailure,
		"current", 1,
		"total", 1,
		"status", reason,
	)
	pipe.Expire(ctx, q.metaKey(taskID), q.resultTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Poll returns the current task snapshot. Unknown task IDs read as PENDING,
// matching how result backends treat ids they have not seen yet.
func (q *RedisQueue) Poll(ctx context.Context, taskID string) (TaskStatus, error) {
	vals, err := q.client.HGetAll(ctx, q.metaKey(taskID)).Result()
	if err != nil {
		return TaskStatus{}, fmt.Errorf("poll task: %w", err)
	}
	if len(vals) == 0 {
		return TaskStatus{State: StatePending, Current: 0, Total: 1, Status: "Pending..."}, nil
	}

	status := TaskStatus{
		State:   vals["state"],
		Current: parseInt(vals["current"]),
		Total:   parseInt(vals["total"]),
		Status:  vals["status"],
	}
	if raw, ok := vals["result"]; ok && raw != "" {
		status.Result = json.RawMessage(raw)
	}
	return status, nil
}

func parseInt(raw string) int64 {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return value
}
