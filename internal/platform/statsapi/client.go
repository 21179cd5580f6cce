// Package statsapi talks to the third-party LeetCode statistics API.
package statsapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"leetboard/internal/domain/model"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ProfilePrefix is the only profile URL shape the aggregator fetches stats for.
const ProfilePrefix = "https://leetcode.com/u/"

const maxBodyBytes = 1 << 20

// Outcome classifies a FetchStats call for run accounting.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNoData
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNoData:
		return "no_data"
	default:
		return "error"
	}
}

// Result is what FetchStats produces for one username. Info is empty only
// for OutcomeOK.
type Result struct {
	Stats   model.Stats
	Info    string
	Outcome Outcome
}

// UsernameFromURL extracts the username from a LeetCode profile URL such as
// https://leetcode.com/u/alice/. ok is false for any other URL.
func UsernameFromURL(profileURL string) (string, bool) {
	rest, found := strings.CutPrefix(strings.TrimSpace(profileURL), ProfilePrefix)
	if !found {
		return "", false
	}
	rest, _, _ = strings.Cut(rest, "?")
	rest, _, _ = strings.Cut(rest, "#")
	rest = strings.TrimSuffix(rest, "/")
	username, _, _ := strings.Cut(rest, "/")
	if username == "" {
		return "", false
	}
	return username, true
}

type Client struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
	log     *zap.Logger
}

// NewClient builds a client for baseURL. Each request is bounded by timeout
// in addition to whatever deadline the caller's context carries.
func NewClient(httpClient *http.Client, baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		log:     logger,
	}
}

// FetchStats never fails: transport and protocol errors become
// model.InfoFetchError, a payload without usable counts becomes
// model.InfoNoData. Both carry zeroed stats.
func (c *Client) FetchStats(ctx context.Context, username string) Result {
	body, err := c.get(ctx, username)
	if err != nil {
		c.log.Error("error fetching stats", zap.String("username", username), zap.Error(err))
		return Result{Info: model.InfoFetchError, Outcome: OutcomeError}
	}

	stats, ok := ParseStats(body, username)
	if !ok {
		c.log.Warn("stats payload has no usable data", zap.String("username", username))
		return Result{Info: model.InfoNoData, Outcome: OutcomeNoData}
	}
	return Result{Stats: stats, Outcome: OutcomeOK}
}

func (c *Client) get(ctx context.Context, username string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.baseURL + "/" + url.PathEscape(username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http %d from %s", resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// ParseStats reads
//
//	{"<username>": {"submitStatsGlobal": {"acSubmissionNum": [{"count": n}, ...]}}}
//
// mapping the first four buckets to total, easy, medium and hard. ok is false
// when the username key is absent or the bucket array is too short.
func ParseStats(body []byte, username string) (model.Stats, bool) {
	if !gjson.ValidBytes(body) {
		return model.Stats{}, false
	}

	// Walk the top-level keys instead of building a path so usernames
	// containing gjson path syntax ('.', '*', '?') are matched literally.
	var user gjson.Result
	gjson.ParseBytes(body).ForEach(func(key, value gjson.Result) bool {
		if key.String() == username {
			user = value
			return false
		}
		return true
	})
	if !user.IsObject() {
		return model.Stats{}, false
	}

	buckets := user.Get("submitStatsGlobal.acSubmissionNum")
	if !buckets.IsArray() {
		return model.Stats{}, false
	}
	counts := buckets.Array()
	if len(counts) < 4 {
		return model.Stats{}, false
	}

	return model.Stats{
		TotalSolved:  int(counts[0].Get("count").Int()),
		EasySolved:   int(counts[1].Get("count").Int()),
		MediumSolved: int(counts[2].Get("count").Int()),
		HardSolved:   int(counts[3].Get("count").Int()),
	}, true
}
