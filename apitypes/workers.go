package apitypes

import "time"

// Worker is a background task worker registered with the backend.
type Worker struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Queue         string    `json:"queue"`
	Status        string    `json:"status"`
	ActiveTasks   int       `json:"active_tasks"`
	LastHeartbeat time.Time `json:"last_heartbeat"`
}

// WorkerStats is the aggregate served under the workers stats scope.
type WorkerStats struct {
	Total     int            `json:"total"`
	ByStatus  map[string]int `json:"by_status"`
	Queued    int            `json:"queued"`
	Running   int            `json:"running"`
	FailedDay int            `json:"failed_last_24h"`
}

// WorkerTask is one unit of work processed by a worker.
type WorkerTask struct {
	ID         string     `json:"id"`
	WorkerID   string     `json:"worker_id"`
	Kind       string     `json:"kind"`
	Status     string     `json:"status"`
	Attempts   int        `json:"attempts"`
	EnqueuedAt time.Time  `json:"enqueued_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Error      string     `json:"error,omitempty"`
}
