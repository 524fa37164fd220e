package data

import "context"

const maxLimit = int32(100)

type QueryParams struct {
	Limit     int    `json:"limit"`
	NextToken []byte `json:"nextToken"`
}

func (q *QueryParams) GetLimit() *int32 {
	limit := int32(q.Limit)
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}
	return &limit
}

type QueryResults[T interface{}] struct {
	Items     []T    `json:"items"`
	NextToken []byte `json:"nextToken"`
}

type NextToken map[string]map[string]string

// Repository is the persistence contract every workspace scoped resource
// shares. Items live in the partition "<workspaceId>:<resource>".
type Repository[T interface{}, I interface{}] interface {
	Get(ctx context.Context, workspaceId string, itemId string) (T, error)
	List(ctx context.Context, workspaceId string, params QueryParams) (QueryResults[T], error)
	Create(ctx context.Context, workspaceId string, input I) (T, error)
	Update(ctx context.Context, workspaceId string, itemId string, input I) (T, error)
	Delete(ctx context.Context, workspaceId string, itemId string) error
}
