package catalog_test

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/mohammadpnp/product-importer/internal/domain/catalog"
)

// fakeProductStore keeps the catalog in a map keyed by normalized SKU, the
// same uniqueness the real store enforces.
type fakeProductStore struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	byID     map[int64]string
	nextID   int64
	upserts  []string

	findErr   error
	failOnSKU string
	failWith  error
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{
		products: make(map[string]*domain.Product),
		byID:     make(map[int64]string),
	}
}

func (f *fakeProductStore) FindByNormalizedSKU(ctx context.Context, sku string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return nil, f.findErr
	}
	p, ok := f.products[domain.NormalizeSKU(sku)]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductStore) Insert(ctx context.Context, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failOnSKU != "" && domain.NormalizeSKU(product.SKU) == domain.NormalizeSKU(f.failOnSKU) {
		return f.failWith
	}

	key := domain.NormalizeSKU(product.SKU)
	if _, exists := f.products[key]; exists {
		return domain.ErrDuplicateSKU
	}

	f.nextID++
	product.ID = f.nextID
	copied := *product
	f.products[key] = &copied
	f.byID[product.ID] = key
	f.upserts = append(f.upserts, key)
	return nil
}

func (f *fakeProductStore) UpdateFields(ctx context.Context, id int64, name, description string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key, ok := f.byID[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	f.products[key].Name = name
	f.products[key].Description = description
	f.upserts = append(f.upserts, key)
	return nil
}

func (f *fakeProductStore) get(sku string) *domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[domain.NormalizeSKU(sku)]
}

func (f *fakeProductStore) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.products)
}

type fakeJobTracker struct {
	created     map[string]string
	started     []string
	total       int64
	advances    []int64
	finalized   bool
	finalStatus domain.JobStatus
	finalErrs   []string

	createErr   error
	startErr    error
	setTotalErr error
	advanceErr  error
	finalizeErr error
}

func newFakeJobTracker() *fakeJobTracker {
	return &fakeJobTracker{created: make(map[string]string)}
}

func (f *fakeJobTracker) Create(ctx context.Context, jobID, filename string) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.created[jobID]; exists {
		return domain.ErrDuplicateJob
	}
	f.created[jobID] = filename
	return nil
}

func (f *fakeJobTracker) Start(ctx context.Context, jobID string) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = append(f.started, jobID)
	return nil
}

func (f *fakeJobTracker) SetTotal(ctx context.Context, jobID string, total int64) error {
	if f.setTotalErr != nil {
		return f.setTotalErr
	}
	f.total = total
	return nil
}

func (f *fakeJobTracker) Advance(ctx context.Context, jobID string, processed int64) error {
	if f.advanceErr != nil {
		return f.advanceErr
	}
	f.advances = append(f.advances, processed)
	return nil
}

func (f *fakeJobTracker) Finalize(ctx context.Context, jobID string, status domain.JobStatus, errs []string) error {
	if f.finalizeErr != nil {
		return f.finalizeErr
	}
	if f.finalized {
		return domain.ErrInvalidTransition
	}
	f.finalized = true
	f.finalStatus = status
	f.finalErrs = errs
	return nil
}

type progressCall struct {
	current int64
	total   int64
	status  string
}

type fakeTaskReporter struct {
	progress      []progressCall
	succeeded     bool
	succeedResult any
	failed        bool
	failReason    string
}

func (f *fakeTaskReporter) SetProgress(ctx context.Context, taskID string, current, total int64, status string) error {
	f.progress = append(f.progress, progressCall{current: current, total: total, status: status})
	return nil
}

func (f *fakeTaskReporter) Succeed(ctx context.Context, taskID string, current, total int64, status string, result any) error {
	f.succeeded = true
	f.succeedResult = result
	return nil
}

func (f *fakeTaskReporter) Fail(ctx context.Context, taskID, reason string) error {
	f.failed = true
	f.failReason = reason
	return nil
}

type publishedEvent struct {
	eventType string
	payload   any
}

type fakeEventPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (f *fakeEventPublisher) Publish(ctx context.Context, eventType string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{eventType: eventType, payload: payload})
}

func (f *fakeEventPublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.eventType)
	}
	return out
}

type enqueuedTask struct {
	name    string
	payload any
}

type fakeTaskQueue struct {
	tasks     []enqueuedTask
	nextID    int
	returnErr error
}

func (f *fakeTaskQueue) Enqueue(ctx context.Context, name string, payload any) (string, error) {
	if f.returnErr != nil {
		return "", f.returnErr
	}
	f.nextID++
	f.tasks = append(f.tasks, enqueuedTask{name: name, payload: payload})
	return fmt.Sprintf("task-%d", f.nextID), nil
}
