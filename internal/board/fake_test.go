package board

import (
	"context"
	"sync"

	"github.com/jonathan/jobboard/internal/types"
)

type statusCall struct {
	ID     types.ID
	Status string
	Note   string
}

// fakeBackend implements every board service interface in memory.
type fakeBackend struct {
	mu sync.Mutex

	apps    []types.Application
	jobs    []types.Job
	byState map[string][]types.Job
	cv      []byte

	loadErr    error
	updateErr  error
	cvErr      error
	payment    *types.PaymentStatus
	paymentErr error
	deleteErr  error

	appUpdates  []statusCall
	jobUpdates  []statusCall
	moderations []statusCall
	deleted     []types.ID
	paymentHits int
}

func (f *fakeBackend) ApplicationsByEmployer(_ context.Context, _ types.ID) ([]types.Application, error) {
	return f.apps, f.loadErr
}

func (f *fakeBackend) ApplicationsByUser(_ context.Context, _ string) ([]types.Application, error) {
	return f.apps, f.loadErr
}

func (f *fakeBackend) UpdateApplicationStatus(_ context.Context, id types.ID, status, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appUpdates = append(f.appUpdates, statusCall{id, status, message})
	return f.updateErr
}

func (f *fakeBackend) DownloadCV(_ context.Context, _ string) ([]byte, error) {
	return f.cv, f.cvErr
}

func (f *fakeBackend) JobsByEmployer(_ context.Context, _ types.ID) ([]types.Job, error) {
	return f.jobs, f.loadErr
}

func (f *fakeBackend) UpdateJobStatus(_ context.Context, id types.ID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobUpdates = append(f.jobUpdates, statusCall{ID: id, Status: status})
	return f.updateErr
}

func (f *fakeBackend) DeleteJob(_ context.Context, id types.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeBackend) AdminJobs(_ context.Context, status string) ([]types.Job, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.byState != nil {
		return f.byState[status], nil
	}
	return f.jobs, nil
}

func (f *fakeBackend) ModerateJob(_ context.Context, id types.ID, status, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moderations = append(f.moderations, statusCall{id, status, reason})
	return f.updateErr
}

func (f *fakeBackend) PaymentStatus(_ context.Context, _ types.ID) (*types.PaymentStatus, error) {
	f.mu.Lock()
	f.paymentHits++
	f.mu.Unlock()
	return f.payment, f.paymentErr
}

func (f *fakeBackend) AdminDeleteJob(ctx context.Context, id types.ID) error {
	return f.DeleteJob(ctx, id)
}

type memSaver struct {
	saved map[string][]byte
}

func (s *memSaver) Save(name string, data []byte) (string, error) {
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	s.saved[name] = data
	return "mem://" + name, nil
}
