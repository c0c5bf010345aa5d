package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

// Resource provides the uniform list/create/update/remove contract over one
// backend collection.
type Resource[T any] struct {
	client *Client
	path   string
}

func NewResource[T any](client *Client, path string) *Resource[T] {
	return &Resource[T]{client: client, path: "/" + path}
}

// decodeList unwraps the data payload into a slice, failing closed to an
// empty slice when the payload is not array-shaped.
func decodeList[T any](raw json.RawMessage) []T {
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		zap.S().Warnw("decode error: payload is not a collection", "error", err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// List fetches the collection. Only non-empty filter values are serialized
// as query parameters.
func (r *Resource[T]) List(ctx context.Context, filters map[string]string) ([]T, error) {
	var query url.Values
	for k, v := range filters {
		if v == "" {
			continue
		}
		if query == nil {
			query = url.Values{}
		}
		query.Set(k, v)
	}

	env, err := r.client.get(ctx, r.path, query)
	if err != nil {
		return nil, err
	}
	return decodeList[T](env.Data), nil
}

func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	env, err := r.client.get(ctx, fmt.Sprintf("%s/%d", r.path, id), nil)
	if err != nil {
		return nil, err
	}
	var item T
	if err := json.Unmarshal(env.Data, &item); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &item, nil
}

// Create posts the payload and returns the server's message.
func (r *Resource[T]) Create(ctx context.Context, payload map[string]any) (string, error) {
	env, err := r.client.post(ctx, r.path, payload)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Update sends a partial payload. Only the keys present in partial reach
// the wire; callers diff against the displayed record before calling.
func (r *Resource[T]) Update(ctx context.Context, id int64, partial map[string]any) (string, error) {
	env, err := r.client.put(ctx, fmt.Sprintf("%s/%d", r.path, id), partial)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (r *Resource[T]) Remove(ctx context.Context, id int64) (string, error) {
	env, err := r.client.delete(ctx, fmt.Sprintf("%s/%d", r.path, id))
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
