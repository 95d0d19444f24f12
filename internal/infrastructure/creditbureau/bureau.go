package creditbureau

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/hearthloan/prequal/internal/domain/port"
)

const (
	MinScore = 300
	MaxScore = 850
)

type Config struct {
	// BaseURL of the bureau API. Empty selects the deterministic simulator.
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	// RetryBackoff is the first retry interval; later ones grow exponentially.
	RetryBackoff time.Duration
}

// Simulator returns a stable score in [MinScore, MaxScore] derived from a hash
// of the user ID, so repeated pulls for one user agree.
type Simulator struct{}

func NewSimulator() *Simulator { return &Simulator{} }

func (Simulator) SoftPull(_ context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, errors.New("user ID is required")
	}
	return simulatedScore(userID), nil
}

func simulatedScore(userID uuid.UUID) int {
	h := sha256.Sum256([]byte(userID.String()))
	return MinScore + int(binary.BigEndian.Uint32(h[:4])%(MaxScore-MinScore+1))
}

// Client performs soft pulls against a bureau HTTP API, retrying transient
// failures with exponential backoff.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 200 * time.Millisecond
	}
	return &Client{cfg: cfg, http: httpClient}
}

// New picks the HTTP client when a base URL is configured and the simulator
// otherwise.
func New(cfg Config) port.CreditBureau {
	if cfg.BaseURL == "" {
		return NewSimulator()
	}
	return NewClient(cfg, nil)
}

type scoreResponse struct {
	Score int `json:"score"`
}

func (c *Client) SoftPull(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, errors.New("user ID is required")
	}

	endpoint, err := url.JoinPath(c.cfg.BaseURL, "v1", "scores", userID.String())
	if err != nil {
		return 0, fmt.Errorf("build bureau url: %w", err)
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.cfg.RetryBackoff
	var policy backoff.BackOff = exp
	if c.cfg.MaxRetries >= 0 {
		policy = backoff.WithMaxRetries(policy, uint64(c.cfg.MaxRetries))
	}

	var score int
	err = backoff.Retry(func() error {
		s, err := c.fetch(ctx, endpoint)
		if err != nil {
			return err
		}
		score = s
		return nil
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return 0, fmt.Errorf("credit bureau soft pull: %w", err)
	}
	return score, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Pull-Type", "soft")
	if c.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return 0, fmt.Errorf("bureau returned %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return 0, backoff.Permanent(fmt.Errorf("bureau returned %d", resp.StatusCode))
	}

	var body scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, backoff.Permanent(fmt.Errorf("decode bureau response: %w", err))
	}
	if body.Score < MinScore || body.Score > MaxScore {
		return 0, backoff.Permanent(fmt.Errorf("bureau score %d out of range", body.Score))
	}
	return body.Score, nil
}
