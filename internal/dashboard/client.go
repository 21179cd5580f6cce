package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"leetboard/internal/common"
	"leetboard/internal/domain/model"
)

// FetchSnapshot performs the dashboard's single GET /data call.
func FetchSnapshot(ctx context.Context, client *http.Client, baseURL string) (model.Snapshot, error) {
	endpoint := strings.TrimRight(baseURL, "/") + "/data"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body common.ErrorResponse
		if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil && body.Error != "" {
			return nil, fmt.Errorf("fetch %s: %s: %s", endpoint, resp.Status, body.Error)
		}
		return nil, fmt.Errorf("fetch %s: %s", endpoint, resp.Status)
	}

	var snapshot model.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snapshot == nil {
		return nil, errors.New("decode snapshot: server returned null")
	}
	return snapshot, nil
}
