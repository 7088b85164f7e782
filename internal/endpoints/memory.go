package endpoints

import (
	"context"
	"sort"
	"sync"

	extendpoints "github.com/goliatone/go-external-content/endpoints"
	"github.com/google/uuid"
)

// NewMemoryEndpointRepository constructs an "in memory" endpoint repository.
func NewMemoryEndpointRepository() EndpointRepository {
	return &memoryEndpointRepository{
		byID: make(map[uuid.UUID]*extendpoints.Endpoint),
	}
}

type memoryEndpointRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*extendpoints.Endpoint
}

func (m *memoryEndpointRepository) Create(_ context.Context, endpoint *extendpoints.Endpoint) (*extendpoints.Endpoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := endpoint.Clone()
	m.byID[cloned.ID] = cloned
	return cloned.Clone(), nil
}

func (m *memoryEndpointRepository) GetByID(_ context.Context, id uuid.UUID) (*extendpoints.Endpoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &extendpoints.NotFoundError{Resource: "endpoint", Key: id.String()}
	}
	return record.Clone(), nil
}

func (m *memoryEndpointRepository) GetDefault(_ context.Context) (*extendpoints.Endpoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.byID {
		if record.IsDefault && record.IsActive {
			return record.Clone(), nil
		}
	}
	return nil, extendpoints.ErrNoDefault
}

func (m *memoryEndpointRepository) List(_ context.Context) ([]*extendpoints.Endpoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*extendpoints.Endpoint, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, record.Clone())
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records, nil
}

func (m *memoryEndpointRepository) ListDefaults(_ context.Context) ([]*extendpoints.Endpoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*extendpoints.Endpoint, 0, 1)
	for _, record := range m.byID {
		if record.IsDefault {
			records = append(records, record.Clone())
		}
	}
	return records, nil
}

func (m *memoryEndpointRepository) Update(_ context.Context, endpoint *extendpoints.Endpoint) (*extendpoints.Endpoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[endpoint.ID]; !ok {
		return nil, &extendpoints.NotFoundError{Resource: "endpoint", Key: endpoint.ID.String()}
	}

	cloned := endpoint.Clone()
	m.byID[cloned.ID] = cloned
	return cloned.Clone(), nil
}

func (m *memoryEndpointRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.byID, id)
	return nil
}
