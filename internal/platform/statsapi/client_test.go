package statsapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"leetboard/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func payload(username string, counts ...int) string {
	buckets := ""
	for i, c := range counts {
		if i > 0 {
			buckets += ","
		}
		buckets += fmt.Sprintf(`{"difficulty":"d%d","count":%d,"submissions":%d}`, i, c, c*2)
	}
	return fmt.Sprintf(`{%q:{"submitStatsGlobal":{"acSubmissionNum":[%s]}}}`, username, buckets)
}

func TestUsernameFromURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"https://leetcode.com/u/alice/", "alice", true},
		{"https://leetcode.com/u/alice", "alice", true},
		{"  https://leetcode.com/u/bob_99/  ", "bob_99", true},
		{"https://leetcode.com/u/carol/?tab=solutions", "carol", true},
		{"https://leetcode.com/u/dave/submissions/", "dave", true},
		{"https://leetcode.com/u/", "", false},
		{"https://leetcode.com/alice/", "", false},
		{"http://leetcode.com/u/alice/", "", false},
		{"https://example.com/bob", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := UsernameFromURL(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseStats(t *testing.T) {
	stats, ok := ParseStats([]byte(payload("alice", 10, 5, 4, 1)), "alice")
	require.True(t, ok)
	assert.Equal(t, model.Stats{TotalSolved: 10, EasySolved: 5, MediumSolved: 4, HardSolved: 1}, stats)

	// Only the first four buckets matter.
	stats, ok = ParseStats([]byte(payload("alice", 7, 3, 2, 2, 99)), "alice")
	require.True(t, ok)
	assert.Equal(t, 7, stats.TotalSolved)
	assert.Equal(t, 2, stats.HardSolved)

	// Usernames with gjson syntax are matched literally.
	stats, ok = ParseStats([]byte(payload("a.b*c", 1, 1, 0, 0)), "a.b*c")
	require.True(t, ok)
	assert.Equal(t, 1, stats.TotalSolved)
}

func TestParseStats_NoData(t *testing.T) {
	cases := map[string]string{
		"empty body":      ``,
		"not json":        `<html>rate limited</html>`,
		"other user":      payload("mallory", 1, 2, 3, 4),
		"null user":       `{"alice": null}`,
		"missing buckets": `{"alice": {"submitStatsGlobal": {}}}`,
		"short buckets":   payload("alice", 1, 2),
		"array root":      `[1,2,3]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			stats, ok := ParseStats([]byte(body), "alice")
			assert.False(t, ok)
			assert.Equal(t, model.Stats{}, stats)
		})
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.Client(), srv.URL+"/", timeout, zap.NewNop())
}

func TestFetchStats_WellFormed(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, payload("alice", 10, 5, 4, 1))
	}, time.Second)

	res := c.FetchStats(context.Background(), "alice")
	assert.Equal(t, "/alice", gotPath)
	assert.Equal(t, OutcomeOK, res.Outcome)
	assert.Empty(t, res.Info)
	assert.Equal(t, model.Stats{TotalSolved: 10, EasySolved: 5, MediumSolved: 4, HardSolved: 1}, res.Stats)
}

func TestFetchStats_Malformed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors":"user not found"}`)
	}, time.Second)

	res := c.FetchStats(context.Background(), "ghost")
	assert.Equal(t, OutcomeNoData, res.Outcome)
	assert.Equal(t, model.InfoNoData, res.Info)
	assert.Equal(t, model.Stats{}, res.Stats)
}

func TestFetchStats_HTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}, time.Second)

	res := c.FetchStats(context.Background(), "alice")
	assert.Equal(t, OutcomeError, res.Outcome)
	assert.Equal(t, model.InfoFetchError, res.Info)
	assert.Equal(t, model.Stats{}, res.Stats)
}

func TestFetchStats_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 50*time.Millisecond)
	defer close(release)

	start := time.Now()
	res := c.FetchStats(context.Background(), "slowpoke")
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, OutcomeError, res.Outcome)
	assert.Equal(t, model.InfoFetchError, res.Info)
}

func TestFetchStats_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewClient(http.DefaultClient, base, time.Second, zap.NewNop())
	res := c.FetchStats(context.Background(), "alice")
	assert.Equal(t, OutcomeError, res.Outcome)
	assert.Equal(t, model.InfoFetchError, res.Info)
}
