package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

const statusSuccess = "success"

// envelope is the uniform response shape of the notes service.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

type Option func(*HTTPClient)

// WithTimeout bounds every request. Zero keeps requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.http.Timeout = d
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) {
		c.http = h
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		c.log = l
	}
}

func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) Register(ctx context.Context, r models.Registration) error {
	return c.do(ctx, http.MethodPost, "/register", r, false, nil)
}

func (c *HTTPClient) Login(ctx context.Context, cr models.Credentials) (models.LoginResult, error) {
	var res models.LoginResult
	err := c.do(ctx, http.MethodPost, "/login", cr, false, &res)
	return res, err
}

func (c *HTTPClient) GetUserLogged(ctx context.Context) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodGet, "/users/me", nil, true, &u)
	return u, err
}

func (c *HTTPClient) AddNote(ctx context.Context, n models.NewNote) (models.Note, error) {
	var note models.Note
	err := c.do(ctx, http.MethodPost, "/notes", n, true, &note)
	return note, err
}

func (c *HTTPClient) GetActiveNotes(ctx context.Context) ([]models.Note, error) {
	notes := []models.Note{}
	err := c.do(ctx, http.MethodGet, "/notes", nil, true, &notes)
	return notes, err
}

func (c *HTTPClient) GetArchivedNotes(ctx context.Context) ([]models.Note, error) {
	notes := []models.Note{}
	err := c.do(ctx, http.MethodGet, "/notes/archived", nil, true, &notes)
	return notes, err
}

func (c *HTTPClient) GetNote(ctx context.Context, id string) (models.Note, error) {
	var note models.Note
	err := c.do(ctx, http.MethodGet, notePath(id), nil, true, &note)
	return note, err
}

func (c *HTTPClient) ArchiveNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, notePath(id)+"/archive", nil, true, nil)
}

func (c *HTTPClient) UnarchiveNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, notePath(id)+"/unarchive", nil, true, nil)
}

func (c *HTTPClient) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, notePath(id), nil, true, nil)
}

func notePath(id string) string {
	return "/notes/" + url.PathEscape(id)
}

// do performs one request and decodes the envelope. out, when non-nil,
// receives the data payload of a successful response.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, auth bool, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if auth {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("read access token: %w", err)
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+token)
	}

	c.log.Debug(ctx, "remote call", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{HTTPStatus: resp.StatusCode, Message: fmt.Sprintf("malformed response: %v", err)}
	}

	if env.Status != statusSuccess {
		c.log.Debug(ctx, "remote call rejected", "path", path, "http_status", resp.StatusCode, "status", env.Status)
		return &APIError{HTTPStatus: resp.StatusCode, Status: env.Status, Message: env.Message}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &APIError{HTTPStatus: resp.StatusCode, Status: env.Status, Message: fmt.Sprintf("malformed data: %v", err)}
	}
	return nil
}
