package paypulse

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paypulse/showcase/adapters/payroll"
	"github.com/paypulse/showcase/adapters/store"
	"github.com/paypulse/showcase/adapters/tokenizer"
	"github.com/paypulse/showcase/core"
	"github.com/paypulse/showcase/metrics"
	"github.com/paypulse/showcase/service"
	transporthttp "github.com/paypulse/showcase/transport/http"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newProvider(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := service.NewAuthService(tokenizer.NewRandomTokenizer(0), store.NewMemoryStore(), nil, metrics.Nop(), discardLogger())
	srv := httptest.NewServer(transporthttp.SetupRouter(authService, payroll.NewDemoSource(), nil, discardLogger()))
	t.Cleanup(srv.Close)
	return srv
}

func TestScanner_EndToEnd(t *testing.T) {
	ctx := context.Background()
	srv := newProvider(t)
	scanner := NewScanner(srv.URL+"/", WithLogger(discardLogger()))

	require.NoError(t, scanner.Authenticate(ctx))
	assert.Regexp(t, `^[0-9a-f]{32}$`, scanner.Token())

	stubs, err := scanner.Paystubs(ctx)
	require.NoError(t, err)
	require.Len(t, stubs, 3)
	assert.Equal(t, "2023-11-30", stubs[0].Date)
	assert.Equal(t, "2500.00", stubs[0].NetPay.StringFixed(2))

	report, err := scanner.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", report.Employee)
}

func TestScanner_PaystubsBeforeAuthenticate(t *testing.T) {
	scanner := NewScanner("http://127.0.0.1:1", WithLogger(discardLogger()))

	_, err := scanner.Paystubs(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestScanner_SubmitsSolvedChallenge(t *testing.T) {
	var got map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html><input id="challenge" value="ABCD"></html>`)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"access_token":"fake_token","token_type":"bearer"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	scanner := NewScanner(srv.URL, WithLogger(discardLogger()))
	require.NoError(t, scanner.Authenticate(context.Background()))

	want, err := core.Solve("ABCD")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"challenge": "ABCD", "response": want}, got)
	assert.Equal(t, "fake_token", scanner.Token())
}

func TestScanner_NoChallengeOnPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html><body>No challenge here</body></html>`)
	}))
	defer srv.Close()

	scanner := NewScanner(srv.URL, WithLogger(discardLogger()))
	err := scanner.Authenticate(context.Background())
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.ErrorContains(t, err, "could not find challenge input")
}

func TestScanner_LoginRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<input id="challenge" value="ABCD">`)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"Invalid credentials or bot detected"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	scanner := NewScanner(srv.URL, WithLogger(discardLogger()))
	err := scanner.Authenticate(context.Background())
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, scanner.Token())
}

func TestScanner_UpstreamErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	scanner := NewScanner(srv.URL, WithLogger(discardLogger()))
	err := scanner.Authenticate(context.Background())
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestScanner_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	scanner := NewScanner(url, WithLogger(discardLogger()))
	_, err := scanner.FetchChallenge(context.Background())
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestScanner_ForbiddenToken(t *testing.T) {
	ctx := context.Background()
	srv := newProvider(t)
	scanner := NewScanner(srv.URL, WithLogger(discardLogger()))

	scanner.token = "invalid_token_123"

	_, err := scanner.Paystubs(ctx)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorContains(t, err, "Invalid or expired token")
}

func TestWritePaystubs(t *testing.T) {
	var buf bytes.Buffer
	WritePaystubs(&buf, payroll.DemoReport().Paystubs)

	out := buf.String()
	assert.Contains(t, out, "DATE")
	assert.Contains(t, out, "NET PAY")
	assert.Contains(t, out, "2023-11-15")
	assert.Contains(t, out, "2400.00")
	assert.Contains(t, out, "USD")
}
