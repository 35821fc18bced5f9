// Package api talks to the remote analysis service. Every call is
// best-effort: a bounded timeout, no retries, and a usable fallback value on
// failure. Failures are still returned as errors wrapping ErrRemoteUnavailable
// so callers decide whether to surface or mask them.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"emovoice/internal/emotion"
	"emovoice/internal/store"
)

const requestTimeout = 8 * time.Second

// ErrRemoteUnavailable marks any transport, HTTP or decode failure. The
// returned values are still usable fallbacks.
var ErrRemoteUnavailable = errors.New("remote service unavailable")

// Insight is one piece of guidance returned by the insights endpoint.
type Insight struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ActionText  string `json:"actionText"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Category    string `json:"category"`
}

// Client is the HTTP client for the analysis service. An empty base URL puts
// the client in offline mode: every call answers with its fallback.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.SugaredLogger
}

func NewClient(baseURL string, log *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
		log:     log,
	}
}

type analyzeResponse struct {
	PrimaryEmotion   string  `json:"primary_emotion"`
	SecondaryEmotion string  `json:"secondary_emotion"`
	Intensity        float64 `json:"intensity"`
}

// AnalyzeAudio uploads the audio file for emotion analysis. On any failure it
// returns a deterministic fallback mood derived from the audio path together
// with an ErrRemoteUnavailable-wrapped error.
func (c *Client) AnalyzeAudio(ctx context.Context, audioPath string) (store.Mood, error) {
	if c.baseURL == "" {
		return fallbackMood(audioPath), fmt.Errorf("%w: no base url configured", ErrRemoteUnavailable)
	}

	body, contentType, err := audioForm(audioPath)
	if err != nil {
		c.log.Warnw("analyze audio: build form", "err", err)
		return fallbackMood(audioPath), fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", body)
	if err != nil {
		return fallbackMood(audioPath), fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warnw("analyze audio", "err", err)
		return fallbackMood(audioPath), fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warnw("analyze audio", "status", resp.StatusCode)
		return fallbackMood(audioPath), fmt.Errorf("%w: status %d", ErrRemoteUnavailable, resp.StatusCode)
	}

	var ar analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return fallbackMood(audioPath), fmt.Errorf("%w: decode response: %v", ErrRemoteUnavailable, err)
	}

	primary, err := emotion.Parse(ar.PrimaryEmotion)
	if err != nil {
		return fallbackMood(audioPath), fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	var secondary emotion.Emotion
	if ar.SecondaryEmotion != "" {
		if secondary, err = emotion.Parse(ar.SecondaryEmotion); err != nil {
			return fallbackMood(audioPath), fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
		}
	}

	return store.Mood{
		Primary:   primary,
		Secondary: secondary,
		Intensity: emotion.ClampIntensity(ar.Intensity),
		Timestamp: time.Now(),
	}, nil
}

// Insights fetches insights for a user over a time range. On failure the
// caller gets a single synthetic "connection issue" insight plus the error.
func (c *Client) Insights(ctx context.Context, userID string, timeRange store.TimeRange) ([]Insight, error) {
	if c.baseURL == "" {
		return fallbackInsights(), fmt.Errorf("%w: no base url configured", ErrRemoteUnavailable)
	}

	u := fmt.Sprintf("%s/insights?userId=%s&timeRange=%s",
		c.baseURL, url.QueryEscape(userID), url.QueryEscape(string(timeRange)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fallbackInsights(), fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warnw("fetch insights", "err", err)
		return fallbackInsights(), fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warnw("fetch insights", "status", resp.StatusCode)
		return fallbackInsights(), fmt.Errorf("%w: status %d", ErrRemoteUnavailable, resp.StatusCode)
	}

	var insights []Insight
	if err := json.NewDecoder(resp.Body).Decode(&insights); err != nil {
		return fallbackInsights(), fmt.Errorf("%w: decode response: %v", ErrRemoteUnavailable, err)
	}
	return insights, nil
}

// reportPayload is the wire shape of a shared report.
type reportPayload struct {
	ID        string                        `json:"id"`
	Date      string                        `json:"date"`
	Recipient string                        `json:"recipient"`
	Status    string                        `json:"status"`
	TimeRange string                        `json:"timeRange"`
	Emotions  map[emotion.Emotion][]float64 `json:"emotions"`
}

// ShareReport pushes a report to the service. Success means a 2xx response.
func (c *Client) ShareReport(ctx context.Context, r store.Report) (bool, error) {
	payload := reportPayload{
		ID:        r.ID,
		Date:      r.Date.UTC().Format(time.RFC3339),
		Recipient: r.Recipient,
		Status:    string(r.Status),
		TimeRange: string(r.TimeRange),
		Emotions:  r.Emotions,
	}
	return c.postJSON(ctx, "/share-report", payload)
}

// SyncData uploads a local data snapshot for a user.
func (c *Client) SyncData(ctx context.Context, userID string, data any) (bool, error) {
	return c.postJSON(ctx, "/sync", map[string]any{
		"userId": userID,
		"data":   data,
	})
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (bool, error) {
	if c.baseURL == "" {
		return false, fmt.Errorf("%w: no base url configured", ErrRemoteUnavailable)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("%w: encode payload: %v", ErrRemoteUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warnw("post", "path", path, "err", err)
		return false, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("%w: status %d", ErrRemoteUnavailable, resp.StatusCode)
	}
	return true, nil
}

func audioForm(audioPath string) (io.Reader, string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("audio", filepath.Base(audioPath))
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("copy audio: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// fallbackMood synthesizes a mood when analysis is unreachable. The result is
// deterministic for a given audio path so the offline experience is stable.
func fallbackMood(audioPath string) store.Mood {
	h := fnv.New32a()
	h.Write([]byte(audioPath))
	seed := h.Sum32()

	all := emotion.All()
	primary := all[int(seed)%len(all)]
	secondary := all[int(seed>>8)%len(all)]
	// Intensity in [0.5, 1.0), mirroring the service's typical confidence band.
	intensity := 0.5 + float64(seed%500)/1000

	return store.Mood{
		Primary:   primary,
		Secondary: secondary,
		Intensity: intensity,
		Timestamp: time.Now(),
	}
}

func fallbackInsights() []Insight {
	return []Insight{{
		ID:          "offline",
		Title:       "Connection Issue",
		Description: "Unable to fetch insights from the server. Showing local data only.",
		ActionText:  "Check connection",
		Icon:        "wifi-off",
		Color:       "#F44336",
		Category:    "error",
	}}
}
