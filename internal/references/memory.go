package references

import (
	"context"
	"sort"
	"sync"

	extreferences "github.com/goliatone/go-external-content/references"
	"github.com/google/uuid"
)

// NewMemoryReferenceRepository constructs an "in memory" reference repository.
func NewMemoryReferenceRepository() ReferenceRepository {
	return &memoryReferenceRepository{
		byID: make(map[uuid.UUID]*extreferences.Reference),
	}
}

type memoryReferenceRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*extreferences.Reference
}

func (m *memoryReferenceRepository) Create(_ context.Context, reference *extreferences.Reference) (*extreferences.Reference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := reference.Clone()
	m.byID[cloned.ID] = cloned
	return cloned.Clone(), nil
}

func (m *memoryReferenceRepository) GetByID(_ context.Context, id uuid.UUID) (*extreferences.Reference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &extreferences.NotFoundError{Resource: "reference", Key: id.String()}
	}
	return record.Clone(), nil
}

func (m *memoryReferenceRepository) GetByExternalID(_ context.Context, templateID uuid.UUID, externalID string) (*extreferences.Reference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.byID {
		if record.TemplateID == templateID && record.ExternalID == externalID {
			return record.Clone(), nil
		}
	}
	return nil, &extreferences.NotFoundError{Resource: "reference", Key: externalID}
}

func (m *memoryReferenceRepository) ListByTemplate(_ context.Context, templateID uuid.UUID) ([]*extreferences.Reference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*extreferences.Reference, 0)
	for _, record := range m.byID {
		if record.TemplateID == templateID {
			records = append(records, record.Clone())
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (m *memoryReferenceRepository) Update(_ context.Context, reference *extreferences.Reference) (*extreferences.Reference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[reference.ID]; !ok {
		return nil, &extreferences.NotFoundError{Resource: "reference", Key: reference.ID.String()}
	}

	cloned := reference.Clone()
	m.byID[cloned.ID] = cloned
	return cloned.Clone(), nil
}

func (m *memoryReferenceRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.byID, id)
	return nil
}
