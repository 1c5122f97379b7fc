package domain

type TaskID string

const (
	TaskDailyOne TaskID = "1"
	TaskDailyTwo TaskID = "2"
)

// DailyTasks returns the task slots in the order they are cleared.
func DailyTasks() []TaskID {
	return []TaskID{TaskDailyOne, TaskDailyTwo}
}

type TaskOutcome string

const (
	TaskCompleted      TaskOutcome = "completed"
	TaskTransportError TaskOutcome = "transport_error"
	TaskRejected       TaskOutcome = "rejected"
	TaskUnauthorized   TaskOutcome = "unauthorized"
)

type TaskResult struct {
	TaskID     TaskID
	Outcome    TaskOutcome
	StatusCode int
	Err        error
}

func (r TaskResult) OK() bool {
	return r.Outcome == TaskCompleted
}
