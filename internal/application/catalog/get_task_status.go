package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mohammadpnp/product-importer/internal/infrastructure/queue"
)

// TaskStatus is the queue's uniform polling snapshot.
type TaskStatus = queue.TaskStatus

type GetTaskStatusInput struct {
	TaskID string
}

type GetTaskStatusOutput struct {
	State   string          `json:"state"`
	Current int64           `json:"current"`
	Total   int64           `json:"total"`
	Status  string          `json:"status"`
	Result  json.RawMessage `json:"result,omitempty"`
}

type GetTaskStatus interface {
	Execute(ctx context.Context, in GetTaskStatusInput) (GetTaskStatusOutput, error)
}

type taskPoller interface {
	Poll(ctx context.Context, taskID string) (TaskStatus, error)
}

type getTaskStatus struct {
	queue taskPoller
}

func NewGetTaskStatus(queue taskPoller) GetTaskStatus {
	return &getTaskStatus{queue: queue}
}

// Execute maps the task state onto the polling response. Task IDs the queue
// has never seen read as PENDING rather than an error, so clients can poll a
// handle the moment they receive it.
func (uc *getTaskStatus) Execute(ctx context.Context, in GetTaskStatusInput) (GetTaskStatusOutput, error) {
	status, err := uc.queue.Poll(ctx, in.TaskID)
	if err != nil {
		return GetTaskStatusOutput{}, fmt.Errorf("poll task: %w", err)
	}

	return GetTaskStatusOutput{
		State:   status.State,
		Current: status.Current,
		Total:   status.Total,
		Status:  status.Status,
		Result:  status.Result,
	}, nil
}
