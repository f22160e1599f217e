package store

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/nmorel/habitude/internal/error_values"
)

// UpdateRequest carries a partial remote update. The title is included on
// toggles too, so the server can treat an update against an unknown id as a
// create with explicit completion state.
type UpdateRequest struct {
	Completed *bool   `json:"completed,omitempty"`
	Title     *string `json:"title,omitempty"`
}

// Remote is the authoritative copy of the todos. Every call returns
// errorvalues.ErrNoToken when no credential is available, which sends the
// calling operation down its offline path.
type Remote interface {
	List(ctx context.Context) ([]*Item, error)
	Create(ctx context.Context, title string) (*Item, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenProvider supplies the bearer credential attached to every remote
// request. Token returns errorvalues.ErrNoToken when none is available.
type TokenProvider interface {
	Token() (string, error)
}

// StaticToken is a fixed credential. The empty string means "not logged in".
type StaticToken string

func (t StaticToken) Token() (string, error) {
	if t == "" {
		return "", errorvalues.ErrNoToken
	}
	return string(t), nil
}

type HTTPRemote struct {
	baseURL string
	tokens  TokenProvider
	client  *http.Client
}

func NewHTTPRemote(baseURL string, tokens TokenProvider) *HTTPRemote {
	return &HTTPRemote{
		baseURL: baseURL,
		tokens:  tokens,
		client:  &http.Client{Timeout: time.Second * 15},
	}
}

func (r *HTTPRemote) List(ctx context.Context) ([]*Item, error) {
	var resp struct {
		Todos []*Item `json:"todos"`
	}
	err := r.do(ctx, http.MethodGet, "/api/v1/todos", nil, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return resp.Todos, nil
}

func (r *HTTPRemote) Create(ctx context.Context, title string) (*Item, error) {
	var item Item
	err := r.do(ctx, http.MethodPost, "/api/v1/todos", map[string]string{"title": title}, &item, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *HTTPRemote) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Item, error) {
	var item Item
	err := r.do(ctx, http.MethodPut, "/api/v1/todos/"+id.String(), req, &item, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *HTTPRemote) Delete(ctx context.Context, id uuid.UUID) error {
	return r.do(ctx, http.MethodDelete, "/api/v1/todos/"+id.String(), nil, nil, http.StatusNoContent)
}

func (r *HTTPRemote) do(ctx context.Context, method, path string, body, out any, wantStatus int) error {
	token, err := r.tokens.Token()
	if err != nil {
		return errorvalues.ErrNoToken
	}
	var buf bytes.Buffer
	if body != nil {
		if err = sonic.ConfigDefault.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.client.Do(req)
	if err != nil {
		return errorvalues.ErrRemoteUnavailable
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case wantStatus:
	case http.StatusUnauthorized, http.StatusForbidden:
		return errorvalues.ErrNoToken
	case http.StatusNotFound:
		return errorvalues.ErrTodoNotFound
	default:
		return errorvalues.ErrRemoteUnavailable
	}
	if out != nil {
		if err = sonic.ConfigDefault.NewDecoder(resp.Body).Decode(out); err != nil {
			return errorvalues.ErrRemoteUnavailable
		}
	}
	return nil
}
