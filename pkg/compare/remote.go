package compare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"attrsort/pkg/errors"
	"attrsort/pkg/httputil"
	"attrsort/pkg/observability"
	"attrsort/pkg/token"
)

// DefaultTimeout bounds a single comparator round trip, retries included.
const DefaultTimeout = 30 * time.Second

// compareRequest is the wire form of one pairwise query.
type compareRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

// compareResponse is the wire form of one pairwise answer: the directional
// win weights for the queried pair.
type compareResponse struct {
	AScore float64 `json:"a_score"`
	BScore float64 `json:"b_score"`
}

// Remote is a comparator backed by an HTTP scoring endpoint. Each pair is
// scored with a POST to {endpoint}/v1/compare; transient failures (network
// errors, 5xx responses) are retried with backoff.
//
// Remote is safe for concurrent use.
type Remote struct {
	endpoint string
	client   *http.Client
}

// NewRemote creates a comparator against the given endpoint base URL.
// A zero timeout falls back to [DefaultTimeout].
func NewRemote(endpoint string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Remote{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Compare returns the signed preference scalar ba−ab for the pair; negative
// means a should come first.
func (r *Remote) Compare(ctx context.Context, a, b token.Token) (float64, error) {
	ab, ba, err := r.RawCompare(ctx, a, b)
	if err != nil {
		return 0, err
	}
	return ba - ab, nil
}

// RawCompare queries the endpoint for the pair's directional win weights.
// Errors are wrapped with [errors.ErrCodeCompareFailed] so callers can
// surface them uniformly.
func (r *Remote) RawCompare(ctx context.Context, a, b token.Token) (float64, float64, error) {
	start := time.Now()

	var resp compareResponse
	err := httputil.RetryWithBackoff(ctx, func() error {
		return r.post(ctx, compareRequest{A: a.String(), B: b.String()}, &resp)
	})
	observability.Compare().OnCompare(ctx, a.String(), b.String(), time.Since(start), err)

	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeCompareFailed, err, "compare %s / %s", a, b)
	}
	return resp.AScore, resp.BScore, nil
}

func (r *Remote) post(ctx context.Context, reqBody compareRequest, out *compareResponse) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint+"/v1/compare", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return httputil.Retryable(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return httputil.Retryable(fmt.Errorf("server error: %s", resp.Status))
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return httputil.Retryable(err)
	}
	return json.Unmarshal(body, out)
}
