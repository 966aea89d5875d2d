package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background maintenance processing.
// Example usage:
//
//	scheduler := NewScheduler(bookRepo, adRepo)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewPublishScheduledBooksTask(bookRepo))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
