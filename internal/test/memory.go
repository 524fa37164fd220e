package test

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/exceptions"
)

// MemoryRepository is a data.Repository kept in process, for tests that do
// not need DynamoDB Local. Next tokens are plain offsets.
type MemoryRepository[T interface{}, I interface{}] struct {
	Name     string
	OnCreate func(I, time.Time, string, string) T
	OnUpdate func(T, I, time.Time) T
	NewId    func() string

	mutex sync.Mutex
	keys  map[string][]string
	items map[string]T
}

func NewMemoryRepository[T interface{}, I interface{}](
	name string,
	onCreate func(I, time.Time, string, string) T,
	onUpdate func(T, I, time.Time) T,
) *MemoryRepository[T, I] {
	return &MemoryRepository[T, I]{
		Name:     name,
		OnCreate: onCreate,
		OnUpdate: onUpdate,
		keys:     make(map[string][]string),
		items:    make(map[string]T),
	}
}

func (m *MemoryRepository[T, I]) pk(workspaceId string) string {
	return fmt.Sprintf("%s:%s", workspaceId, m.Name)
}

func (m *MemoryRepository[T, I]) Get(_ context.Context, workspaceId string, itemId string) (T, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	item, ok := m.items[m.pk(workspaceId)+"/"+itemId]
	if !ok {
		return item, exceptions.NotFound(m.Name, itemId)
	}
	return item, nil
}

func (m *MemoryRepository[T, I]) List(_ context.Context, workspaceId string, params data.QueryParams) (data.QueryResults[T], error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	keys := m.keys[m.pk(workspaceId)]
	start := 0
	if len(params.NextToken) > 0 {
		offset, err := strconv.Atoi(string(params.NextToken))
		if err != nil || offset < 0 || offset > len(keys) {
			return data.QueryResults[T]{}, exceptions.InvalidInput("nextToken is not valid for this workspace")
		}
		start = offset
	}
	end := start + int(*params.GetLimit())
	if end > len(keys) {
		end = len(keys)
	}
	results := data.QueryResults[T]{Items: make([]T, 0, end-start)}
	for _, key := range keys[start:end] {
		results.Items = append(results.Items, m.items[m.pk(workspaceId)+"/"+key])
	}
	if end < len(keys) {
		results.NextToken = []byte(strconv.Itoa(end))
	}
	return results, nil
}

func (m *MemoryRepository[T, I]) Create(_ context.Context, workspaceId string, input I) (T, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	pk := m.pk(workspaceId)
	sk := uuid.NewString()
	if m.NewId != nil {
		sk = m.NewId()
	}
	item := m.OnCreate(input, time.Now(), pk, sk)
	m.keys[pk] = append(m.keys[pk], sk)
	m.items[pk+"/"+sk] = item
	return item, nil
}

func (m *MemoryRepository[T, I]) Update(_ context.Context, workspaceId string, itemId string, input I) (T, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	key := m.pk(workspaceId) + "/" + itemId
	existing, ok := m.items[key]
	if !ok {
		return existing, exceptions.NotFound(m.Name, itemId)
	}
	updated := m.OnUpdate(existing, input, time.Now())
	m.items[key] = updated
	return updated, nil
}

func (m *MemoryRepository[T, I]) Delete(_ context.Context, workspaceId string, itemId string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	pk := m.pk(workspaceId)
	delete(m.items, pk+"/"+itemId)
	keys := m.keys[pk]
	for i, key := range keys {
		if key == itemId {
			m.keys[pk] = append(keys[:i:i], keys[i+1:]...)
			break
		}
	}
	return nil
}
