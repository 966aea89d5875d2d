package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/freetic/freetic/app/catalog"
	"github.com/freetic/freetic/app/database"
)

// MockBookRepository implements a simple mock for testing
type MockBookRepository struct {
	due       []catalog.Book
	published []string
	err       error
}

var _ database.BookRepository = (*MockBookRepository)(nil)

func (m *MockBookRepository) GetAll() ([]catalog.Book, error)       { return nil, nil }
func (m *MockBookRepository) GetPublished() ([]catalog.Book, error) { return nil, nil }
func (m *MockBookRepository) GetBook(id string) (*catalog.Book, error) {
	return nil, nil
}
func (m *MockBookRepository) GetBookCount() (int, error) { return 0, nil }
func (m *MockBookRepository) Insert(book catalog.Book) (catalog.Book, error) {
	return book, nil
}
func (m *MockBookRepository) Update(book catalog.Book) error { return nil }
func (m *MockBookRepository) Delete(id string) error         { return nil }

func (m *MockBookRepository) GetDueForPublishing(nowMs int64) ([]catalog.Book, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.due, nil
}

func (m *MockBookRepository) SetStatus(id string, status string) error {
	if status == catalog.StatusPublished {
		m.published = append(m.published, id)
	}
	return nil
}

// MockAdConfigRepository implements a simple mock for testing
type MockAdConfigRepository struct {
	config database.AdConfig
	puts   []database.AdConfig
}

var _ database.AdConfigRepository = (*MockAdConfigRepository)(nil)

func (m *MockAdConfigRepository) Get() (database.AdConfig, error) {
	return m.config, nil
}

func (m *MockAdConfigRepository) Put(config database.AdConfig) error {
	m.config = config
	m.puts = append(m.puts, config)
	return nil
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}

func TestPublishScheduledBooks(t *testing.T) {
	mockRepo := &MockBookRepository{
		due: []catalog.Book{
			{ID: "b1", Title: "Draft One"},
			{ID: "b2", Title: "Draft Two"},
		},
	}

	task := NewPublishScheduledBooksTask(mockRepo)
	task.Start()

	if err := task.Execute(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(mockRepo.published) != 2 {
		t.Fatalf("Expected 2 books published, got %d", len(mockRepo.published))
	}
	if mockRepo.published[0] != "b1" || mockRepo.published[1] != "b2" {
		t.Errorf("Unexpected published ids: %v", mockRepo.published)
	}
}

func TestPublishScheduledBooksNoneDue(t *testing.T) {
	mockRepo := &MockBookRepository{}

	task := NewPublishScheduledBooksTask(mockRepo)
	task.Start()

	if err := task.Execute(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(mockRepo.published) != 0 {
		t.Errorf("Expected no books published, got %d", len(mockRepo.published))
	}
}

func TestPublishScheduledBooksRepositoryError(t *testing.T) {
	mockRepo := &MockBookRepository{err: &testError{"db unavailable"}}

	task := NewPublishScheduledBooksTask(mockRepo)
	task.Start()

	if err := task.Execute(context.Background()); err == nil {
		t.Error("Expected error when repository fails")
	}
}

func TestExpireAdScheduleDisablesExpiredAd(t *testing.T) {
	now := time.Now().UnixMilli()
	mockRepo := &MockAdConfigRepository{
		config: database.AdConfig{
			Script:  "<script></script>",
			Enabled: true,
			EndAt:   now - 1000,
		},
	}

	task := NewExpireAdScheduleTask(mockRepo)
	task.Start()

	if err := task.Execute(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(mockRepo.puts) != 1 {
		t.Fatalf("Expected 1 config update, got %d", len(mockRepo.puts))
	}
	if mockRepo.config.Enabled {
		t.Error("Expected expired ad to be disabled")
	}
}

func TestExpireAdScheduleLeavesActiveAd(t *testing.T) {
	now := time.Now().UnixMilli()
	mockRepo := &MockAdConfigRepository{
		config: database.AdConfig{
			Script:  "<script></script>",
			Enabled: true,
			EndAt:   now + 60000,
		},
	}

	task := NewExpireAdScheduleTask(mockRepo)
	task.Start()

	if err := task.Execute(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(mockRepo.puts) != 0 {
		t.Errorf("Expected no config updates, got %d", len(mockRepo.puts))
	}
	if !mockRepo.config.Enabled {
		t.Error("Expected active ad to remain enabled")
	}
}

func TestExpireAdScheduleOpenEndedAd(t *testing.T) {
	mockRepo := &MockAdConfigRepository{
		config: database.AdConfig{
			Script:  "<script></script>",
			Enabled: true,
		},
	}

	task := NewExpireAdScheduleTask(mockRepo)
	task.Start()

	if err := task.Execute(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(mockRepo.puts) != 0 {
		t.Errorf("Expected open-ended ad to be left alone, got %d updates", len(mockRepo.puts))
	}
}

func TestTaskRetryBookkeeping(t *testing.T) {
	task := NewTask(TaskTypePublishScheduled)

	if task.GetID() == "" {
		t.Error("Expected task to have an id")
	}
	if task.GetType() != TaskTypePublishScheduled {
		t.Errorf("Unexpected task type: %s", task.GetType())
	}
	if task.GetMaxRetries() != DefaultMaxRetries {
		t.Errorf("Expected max retries %d, got %d", DefaultMaxRetries, task.GetMaxRetries())
	}

	for i := 0; i < DefaultMaxRetries; i++ {
		if !task.CanRetry() {
			t.Fatalf("Expected retry %d to be allowed", i+1)
		}
		task.IncrementRetryCount()
	}

	if task.CanRetry() {
		t.Error("Expected retries to be exhausted")
	}
}

func TestTaskDuration(t *testing.T) {
	task := NewTask(TaskTypeExpireAdSchedule)

	if task.GetDuration() != 0 {
		t.Error("Expected zero duration before Start")
	}

	task.Start()
	time.Sleep(10 * time.Millisecond)

	if task.GetDuration() <= 0 {
		t.Error("Expected positive duration after Start")
	}
}

func TestTaskCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	task := NewPublishScheduledBooksTask(&MockBookRepository{})
	if err := task.Execute(ctx); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
