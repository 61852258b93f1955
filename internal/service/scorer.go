package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chronicpal/backend/internal/insights"
)

var (
	// ErrScorerUnavailable covers timeouts, transport failures, non-2xx
	// responses and malformed bodies from the risk scorer.
	ErrScorerUnavailable = errors.New("risk scorer unavailable")
	// ErrInvalidScorerResponse is returned when the body does not match the
	// expected schema. It unwraps to ErrScorerUnavailable.
	ErrInvalidScorerResponse = fmt.Errorf("%w: invalid response schema", ErrScorerUnavailable)
)

const maxErrorBody = 512

// ScorerStatusError represents a non-2xx response from the scorer.
type ScorerStatusError struct {
	StatusCode int
	Body       string // first 512 bytes
}

func (e *ScorerStatusError) Error() string {
	return fmt.Sprintf("risk scorer returned HTTP %d: %s", e.StatusCode, e.Body)
}

func (e *ScorerStatusError) Unwrap() error {
	return ErrScorerUnavailable
}

// ScoreResult is a validated scorer response.
type ScoreResult struct {
	RiskScore    float64
	Model        string
	FeaturesUsed map[string]any
}

// HTTPRiskScorer calls POST {baseURL}/predict. Calls are never retried.
type HTTPRiskScorer struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// ScorerOption configures HTTPRiskScorer.
type ScorerOption func(*HTTPRiskScorer)

// WithScorerTimeout sets the HTTP client timeout.
func WithScorerTimeout(d time.Duration) ScorerOption {
	return func(s *HTTPRiskScorer) {
		if d > 0 {
			s.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying client.
func WithHTTPClient(c *http.Client) ScorerOption {
	return func(s *HTTPRiskScorer) {
		if c != nil {
			s.httpClient = c
		}
	}
}

func NewHTTPRiskScorer(baseURL, token string, opts ...ScorerOption) *HTTPRiskScorer {
	s := &HTTPRiskScorer{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 3 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Predict sends the payload and validates the response shape strictly.
func (s *HTTPRiskScorer) Predict(ctx context.Context, payload insights.AnonymizedPayload) (*ScoreResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scorer payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScorerUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-ML-Token", s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScorerUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrScorerUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyStr := string(respBody)
		if len(bodyStr) > maxErrorBody {
			bodyStr = bodyStr[:maxErrorBody]
		}
		return nil, &ScorerStatusError{StatusCode: resp.StatusCode, Body: bodyStr}
	}

	return decodeScore(respBody)
}

// decodeScore accepts only {riskScore: number in [0,1], model: string,
// featuresUsed?: object}. A missing or malformed featuresUsed becomes empty.
func decodeScore(body []byte) (*ScoreResult, error) {
	var raw struct {
		RiskScore    json.RawMessage `json:"riskScore"`
		Model        json.RawMessage `json:"model"`
		FeaturesUsed json.RawMessage `json:"featuresUsed"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScorerResponse, err)
	}

	if isNull(raw.RiskScore) {
		return nil, fmt.Errorf("%w: missing riskScore", ErrInvalidScorerResponse)
	}
	var score float64
	if err := json.Unmarshal(raw.RiskScore, &score); err != nil {
		return nil, fmt.Errorf("%w: riskScore is not a number", ErrInvalidScorerResponse)
	}
	if score < 0 || score > 1 {
		return nil, fmt.Errorf("%w: riskScore %v out of range", ErrInvalidScorerResponse, score)
	}

	if isNull(raw.Model) {
		return nil, fmt.Errorf("%w: missing model", ErrInvalidScorerResponse)
	}
	var model string
	if err := json.Unmarshal(raw.Model, &model); err != nil {
		return nil, fmt.Errorf("%w: model is not a string", ErrInvalidScorerResponse)
	}

	features := map[string]any{}
	if !isNull(raw.FeaturesUsed) {
		var decoded map[string]any
		if err := json.Unmarshal(raw.FeaturesUsed, &decoded); err == nil && decoded != nil {
			features = decoded
		}
	}

	return &ScoreResult{RiskScore: score, Model: model, FeaturesUsed: features}, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null"
}
