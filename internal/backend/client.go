package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"main/internal/metrics"
	"main/pkg/customerrors"
)

// Envelope is the response shape every backend endpoint returns. The backend
// reports domain failures (validation, not-found) with HTTP status <= 422 and
// status "failed"; those are ordinary values here, not errors. Only transport
// problems and 5xx responses surface as Go errors.
type Envelope struct {
	Status  string          `json:"status"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Reason  string          `json:"reason,omitempty"`
}

// OK reports whether the backend accepted the operation.
func (e *Envelope) OK() bool { return e.Status == "success" }

// Decode unmarshals the payload into out.
func (e *Envelope) Decode(out any) error {
	if len(e.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(e.Payload, out)
}

// Client talks to the commerce backend's REST API, one method per endpoint.
// Methods that require authorization take the caller's access token; public
// catalog reads take none. Every method validates its inputs before issuing
// any network call.
type Client struct {
	baseURL string
	httpc   *http.Client
	Metrics *metrics.Metrics
}

func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		Metrics: m,
	}
}

// TokenPair is what login and refresh hand back.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// checkID guards every *ID parameter: zero and negative ids never reach the network.
func checkID(id int64) error {
	if id <= 0 {
		return customerrors.ErrInvalidID
	}
	return nil
}

// checkRequired guards required string fields.
func checkRequired(fields ...string) error {
	for _, f := range fields {
		if f == "" {
			return customerrors.ErrMissingField
		}
	}
	return nil
}

// do issues one HTTP call and decodes the envelope. token is attached as a
// bearer header when non-empty. Responses with status > 422 are upstream
// errors; everything at or below resolves to an Envelope for the caller to
// inspect.
func (c *Client) do(ctx context.Context, method, path, token string, body any) (env *Envelope, err error) {
	defer func(start time.Time) {
		c.Metrics.ObserveUpstream(method+" "+path, start, err)
	}(time.Now())

	var reader *bytes.Reader
	if body != nil {
		b, merr := json.Marshal(body)
		if merr != nil {
			err = merr
			return nil, err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode > 422 {
		err = fmt.Errorf("%w: %s %s returned %d", customerrors.ErrUpstream, method, path, resp.StatusCode)
		return nil, err
	}

	env = &Envelope{}
	if derr := json.NewDecoder(resp.Body).Decode(env); derr != nil {
		err = derr
		return nil, err
	}
	return env, nil
}
