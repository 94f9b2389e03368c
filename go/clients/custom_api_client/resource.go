package custom_api_client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/mcdev12/courtside/go/clients"
	"github.com/mcdev12/courtside/go/internal/resource"
)

// envelope is the wire form of every custom entities response
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Resource is one custom entity collection. It satisfies resource.API.
type Resource[E any, P any] struct {
	client        *CustomApiClient
	path          string
	collectionKey string
	idKey         string
}

func NewResource[E any, P any](client *CustomApiClient, path, collectionKey, idKey string) *Resource[E, P] {
	return &Resource[E, P]{
		client:        client,
		path:          path,
		collectionKey: collectionKey,
		idKey:         idKey,
	}
}

var _ resource.API[struct{}, struct{}] = (*Resource[struct{}, struct{}])(nil)

func (r *Resource[E, P]) List(ctx context.Context) (resource.Envelope[[]E], error) {
	env, err := r.do(ctx, http.MethodGet, r.path, nil)
	if err != nil {
		return resource.Envelope[[]E]{}, fmt.Errorf("failed to list %s: %w", r.collectionKey, err)
	}

	out := resource.Envelope[[]E]{Success: env.Success, Error: env.Error}
	if !env.Success || isNull(env.Data) {
		return out, nil
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return resource.Envelope[[]E]{}, fmt.Errorf("failed to unmarshal %s: %w", r.collectionKey, err)
	}
	if raw, ok := data[r.collectionKey]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &out.Data); err != nil {
			return resource.Envelope[[]E]{}, fmt.Errorf("failed to unmarshal %s: %w", r.collectionKey, err)
		}
	}

	return out, nil
}

func (r *Resource[E, P]) Create(ctx context.Context, payload P) (resource.Envelope[E], error) {
	env, err := r.do(ctx, http.MethodPost, r.path, payload)
	if err != nil {
		return resource.Envelope[E]{}, fmt.Errorf("failed to create: %w", err)
	}
	return decodeEntity[E](env)
}

// Update sends the full replacement field set with the id added under idKey
func (r *Resource[E, P]) Update(ctx context.Context, id uuid.UUID, payload P) (resource.Envelope[E], error) {
	body, err := withID(payload, r.idKey, id)
	if err != nil {
		return resource.Envelope[E]{}, err
	}

	env, err := r.do(ctx, http.MethodPut, r.itemPath(id), body)
	if err != nil {
		return resource.Envelope[E]{}, fmt.Errorf("failed to update %s: %w", id, err)
	}
	return decodeEntity[E](env)
}

func (r *Resource[E, P]) Delete(ctx context.Context, id uuid.UUID) (resource.Envelope[struct{}], error) {
	env, err := r.do(ctx, http.MethodDelete, r.itemPath(id), nil)
	if err != nil {
		return resource.Envelope[struct{}]{}, fmt.Errorf("failed to delete %s: %w", id, err)
	}
	return resource.Envelope[struct{}]{Success: env.Success, Error: env.Error}, nil
}

func (r *Resource[E, P]) itemPath(id uuid.UUID) string {
	return fmt.Sprintf("%s/%s", r.path, id)
}

// do performs the round trip and decodes the envelope. A non-2xx answer that
// still carries a failed envelope with a message is an application rejection,
// not a transport failure.
func (r *Resource[E, P]) do(ctx context.Context, method, endpoint string, in interface{}) (*envelope, error) {
	body, err := r.client.SendJSON(ctx, method, endpoint, in)
	if err != nil {
		var statusErr *clients.StatusError
		if errors.As(err, &statusErr) {
			var env envelope
			if json.Unmarshal(statusErr.Body, &env) == nil && !env.Success && env.Error != "" {
				return &env, nil
			}
		}
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal envelope: %w, raw response: %s", err, string(body))
	}
	return &env, nil
}

func decodeEntity[E any](env *envelope) (resource.Envelope[E], error) {
	out := resource.Envelope[E]{Success: env.Success, Error: env.Error}
	if !env.Success || isNull(env.Data) {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out.Data); err != nil {
		return resource.Envelope[E]{}, fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return out, nil
}

func withID(payload interface{}, idKey string, id uuid.UUID) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("payload is not a JSON object: %w", err)
	}

	idRaw, err := json.Marshal(id)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal id: %w", err)
	}
	fields[idKey] = idRaw
	return fields, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
