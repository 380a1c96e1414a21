package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

const okBody = `{"candidates":[{"content":{"parts":[{"text":"Hello, empire!"}],"role":"model"},"finishReason":"STOP"}]}`

// scripted answers each request with the next status in order; 200 gets okBody.
type scripted struct {
	mu       sync.Mutex
	statuses []int
	calls    int
	bodies   []Request
	queries  []string
	paths    []string
}

func (s *scripted) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var req Request
	_ = json.NewDecoder(r.Body).Decode(&req)
	s.bodies = append(s.bodies, req)
	s.queries = append(s.queries, r.URL.Query().Get("key"))
	s.paths = append(s.paths, r.URL.Path)

	status := http.StatusOK
	if s.calls < len(s.statuses) {
		status = s.statuses[s.calls]
	}
	s.calls++

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status == http.StatusOK {
		_, _ = w.Write([]byte(okBody))
		return
	}
	_, _ = w.Write([]byte(`{"error":{"status":"` + http.StatusText(status) + `"}}`))
}

func newTestClient(t *testing.T, h http.Handler) (*Client, *[]time.Duration) {
	t.Helper()
	srv := httptest.NewServer(h)
	c := New(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
	t.Cleanup(func() {
		c.httpClient.CloseIdleConnections()
		srv.Close()
	})

	var waits []time.Duration
	c.wait = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	return c, &waits
}

func TestGenerateSuccess(t *testing.T) {
	s := &scripted{}
	c, waits := newTestClient(t, s)

	got, err := c.Generate(context.Background(), "Write a listing")
	require.NoError(t, err)
	require.Equal(t, "Hello, empire!", got)
	require.Empty(t, *waits)

	require.Equal(t, 1, s.calls)
	require.Equal(t, "test-key", s.queries[0])
	require.Equal(t, "/models/"+DefaultModel+":generateContent", s.paths[0])
	require.Len(t, s.bodies[0].Contents, 1)
	require.Equal(t, "Write a listing", s.bodies[0].Contents[0].Parts[0].Text)
}

func TestGenerateRetriesRateLimitThenSucceeds(t *testing.T) {
	s := &scripted{statuses: []int{429, 429, 429, 200}}
	c, waits := newTestClient(t, s)

	got, err := c.Generate(context.Background(), "p")
	require.NoError(t, err)
	require.Equal(t, "Hello, empire!", got)
	require.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, *waits)
	require.Equal(t, 4, s.calls)
}

func TestGenerateGivesUpAfterFourRateLimits(t *testing.T) {
	s := &scripted{statuses: []int{429, 429, 429, 429, 200}}
	c, waits := newTestClient(t, s)

	_, err := c.Generate(context.Background(), "p")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusTooManyRequests, se.Code)
	require.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, *waits)
	require.Equal(t, 4, s.calls, "no fifth attempt after the final 429")
}

func TestGenerateOtherStatusIsTerminal(t *testing.T) {
	for _, code := range []int{400, 403, 500, 503} {
		s := &scripted{statuses: []int{code, 200}}
		c, waits := newTestClient(t, s)

		_, err := c.Generate(context.Background(), "p")
		var se *StatusError
		require.True(t, errors.As(err, &se), "status %d", code)
		require.Equal(t, code, se.Code)
		require.Empty(t, *waits)
		require.Equal(t, 1, s.calls)
	}
}

func TestGenerateErrorBodyKeepsWholeRunes(t *testing.T) {
	// One ASCII byte shifts the two-byte runes so byte 512 lands mid-rune.
	body := "x" + strings.Repeat("é", 400)
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(body))
	}))

	_, err := c.Generate(context.Background(), "p")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.True(t, utf8.ValidString(se.Body), "body cut mid-rune")
	require.Len(t, se.Body, maxErrorBody-1)
	require.True(t, strings.HasPrefix(body, se.Body))
}

func TestGenerateRateLimitThenServerError(t *testing.T) {
	s := &scripted{statuses: []int{429, 500}}
	c, waits := newTestClient(t, s)

	_, err := c.Generate(context.Background(), "p")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, 500, se.Code)
	require.Equal(t, []time.Duration{time.Second}, *waits)
}

func TestGenerateMissingTextFallsBack(t *testing.T) {
	for _, body := range []string{
		`{}`,
		`{"candidates":[]}`,
		`{"candidates":[{"content":{"parts":[]}}]}`,
		`{"candidates":[{"content":{"parts":[{"text":""}]}}]}`,
	} {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		got, err := c.Generate(context.Background(), "p")
		require.NoError(t, err, body)
		require.Equal(t, FallbackText, got, body)
	}
}

func TestGenerateMalformedBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	_, err := c.Generate(context.Background(), "p")
	require.ErrorContains(t, err, "parse response")
}

func TestGenerateMissingKey(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:0"}, nil)
	_, err := c.Generate(context.Background(), "p")
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGenerateTransportErrorHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := New(Config{APIKey: "secret-key", BaseURL: base}, nil)
	_, err := c.Generate(context.Background(), "p")
	require.Error(t, err)
	require.NotContains(t, err.Error(), "secret-key")
}

func TestGenerateWaitHonorsContext(t *testing.T) {
	s := &scripted{statuses: []int{429, 200}}
	c, _ := newTestClient(t, s)
	c.wait = sleep
	c.delays = []time.Duration{time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Generate(ctx, "p")
	require.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	c := New(Config{APIKey: "k"}, nil)
	require.Equal(t, DefaultModel, c.Model())
	require.Equal(t, DefaultBaseURL, c.baseURL)

	c = New(Config{APIKey: "k", BaseURL: "http://x/v1/", Model: "m"}, nil)
	require.Equal(t, "http://x/v1/models/m:generateContent?key=k", c.endpoint())
}
