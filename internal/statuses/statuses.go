package statuses

const (
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)
