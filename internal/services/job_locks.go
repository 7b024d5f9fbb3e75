package services

import "sync"

// JobLocks serializes decisions about the bids of one job within the process.
type JobLocks struct {
	locks sync.Map
}

func NewJobLocks() *JobLocks {
	return &JobLocks{}
}

// Lock blocks until the job's lock is held and returns the function releasing it.
func (l *JobLocks) Lock(jobID string) func() {
	value, _ := l.locks.LoadOrStore(jobID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
