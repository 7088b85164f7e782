package templates

import (
	"context"
	"sort"
	"sync"

	exttemplates "github.com/goliatone/go-external-content/templates"
	"github.com/google/uuid"
)

// NewMemoryDefinitionRepository constructs an "in memory" definition repository.
func NewMemoryDefinitionRepository() DefinitionRepository {
	return &memoryDefinitionRepository{
		byID: make(map[uuid.UUID]*exttemplates.Definition),
	}
}

type memoryDefinitionRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*exttemplates.Definition
}

func (m *memoryDefinitionRepository) Create(_ context.Context, definition *exttemplates.Definition) (*exttemplates.Definition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := definition.Clone()
	m.byID[cloned.ID] = cloned
	return cloned.Clone(), nil
}

func (m *memoryDefinitionRepository) GetByID(_ context.Context, id uuid.UUID) (*exttemplates.Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &exttemplates.NotFoundError{Resource: "template", Key: id.String()}
	}
	return record.Clone(), nil
}

func (m *memoryDefinitionRepository) GetByContentType(_ context.Context, contentTypeName string) (*exttemplates.Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.byID {
		if record.IsActive && record.ContentTypeName == contentTypeName {
			return record.Clone(), nil
		}
	}
	return nil, &exttemplates.NotFoundError{Resource: "template", Key: contentTypeName}
}

func (m *memoryDefinitionRepository) List(_ context.Context) ([]*exttemplates.Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*exttemplates.Definition, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, record.Clone())
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].SortOrder != records[j].SortOrder {
			return records[i].SortOrder < records[j].SortOrder
		}
		return records[i].DisplayName < records[j].DisplayName
	})
	return records, nil
}

func (m *memoryDefinitionRepository) Update(_ context.Context, definition *exttemplates.Definition) (*exttemplates.Definition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[definition.ID]; !ok {
		return nil, &exttemplates.NotFoundError{Resource: "template", Key: definition.ID.String()}
	}

	cloned := definition.Clone()
	m.byID[cloned.ID] = cloned
	return cloned.Clone(), nil
}

func (m *memoryDefinitionRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.byID, id)
	return nil
}
