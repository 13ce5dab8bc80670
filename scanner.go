// Package paypulse is the client side of the OmniPay login handshake: it
// scrapes the challenge from the login page, answers it and reads paystubs.
package paypulse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/net/html"

	"github.com/paypulse/showcase/core"
)

// DefaultTimeout bounds every request made by a Scanner
const DefaultTimeout = 10 * time.Second

// Scanner implements Client against an OmniPay provider
type Scanner struct {
	baseURL string
	client  *retryablehttp.Client
	logger  *slog.Logger

	mu    sync.RWMutex
	token string
}

// Option configures a Scanner
type Option func(*Scanner)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(s *Scanner) {
		s.client.HTTPClient.Timeout = d
	}
}

// WithRetries enables up to n retries of failed requests. The default is none.
func WithRetries(n int) Option {
	return func(s *Scanner) {
		s.client.RetryMax = n
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// NewScanner creates a scanner for the provider at baseURL
func NewScanner(baseURL string, opts ...Option) *Scanner {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.HTTPClient.Timeout = DefaultTimeout

	s := &Scanner{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client.Logger = s.logger
	return s
}

// Token returns the access token obtained by Authenticate
func (s *Scanner) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// FetchChallenge loads the login page and returns the challenge it embeds
func (s *Scanner) FetchChallenge(ctx context.Context) (string, error) {
	resp, err := s.do(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: login page returned %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse login page: %v", ErrUpstreamUnavailable, err)
	}

	challenge, ok := findChallenge(doc)
	if !ok {
		return "", fmt.Errorf("%w: could not find challenge input on page", ErrUpstreamUnavailable)
	}

	return challenge, nil
}

// Authenticate fetches a challenge, solves it and logs in
func (s *Scanner) Authenticate(ctx context.Context) error {
	s.logger.InfoContext(ctx, "connecting to provider", "url", s.baseURL)

	challenge, err := s.FetchChallenge(ctx)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "found challenge", "challenge", challenge)

	response, err := core.Solve(challenge)
	if err != nil {
		return fmt.Errorf("failed to solve challenge: %w", err)
	}
	s.logger.DebugContext(ctx, "computed response", "response", response)

	body, err := json.Marshal(map[string]string{
		"challenge": challenge,
		"response":  response,
	})
	if err != nil {
		return fmt.Errorf("failed to encode login request: %w", err)
	}

	resp, err := s.do(ctx, http.MethodPost, "/login", body, http.Header{
		"Content-Type": []string{"application/json"},
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrMalformedRequest, readError(resp.Body))
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, readError(resp.Body))
	default:
		return fmt.Errorf("%w: login returned %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return fmt.Errorf("%w: failed to decode login response: %v", ErrUpstreamUnavailable, err)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("%w: login response carried no access token", ErrUpstreamUnavailable)
	}

	s.mu.Lock()
	s.token = token.AccessToken
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "login successful")
	return nil
}

// Report returns the full payroll report of the authenticated employee
func (s *Scanner) Report(ctx context.Context) (*core.PayrollReport, error) {
	token := s.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	resp, err := s.do(ctx, http.MethodGet, "/api/paystubs", nil, http.Header{
		"Authorization": []string{"Bearer " + token},
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrForbidden, readError(resp.Body))
	default:
		return nil, fmt.Errorf("%w: paystubs returned %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var report core.PayrollReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("%w: failed to decode paystubs: %v", ErrUpstreamUnavailable, err)
	}

	return &report, nil
}

// Paystubs returns the paystubs of the authenticated employee
func (s *Scanner) Paystubs(ctx context.Context) ([]core.Paystub, error) {
	report, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}
	return report.Paystubs, nil
}

func (s *Scanner) do(ctx context.Context, method, path string, body []byte, header http.Header) (*http.Response, error) {
	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, s.baseURL+path, rawBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	return resp, nil
}

// findChallenge returns the value of the first <input id="challenge">
func findChallenge(n *html.Node) (string, bool) {
	if n.Type == html.ElementNode && n.Data == "input" {
		var id, value string
		var hasValue bool
		for _, attr := range n.Attr {
			switch attr.Key {
			case "id":
				id = attr.Val
			case "value":
				value, hasValue = attr.Val, true
			}
		}
		if id == "challenge" && hasValue {
			return value, true
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if v, ok := findChallenge(c); ok {
			return v, true
		}
	}
	return "", false
}

func readError(r io.Reader) string {
	var body struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(r, 4096))
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(data))
}
