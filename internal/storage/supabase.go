package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SupabaseStorage uploads photos to a public Supabase Storage bucket over
// its REST API.
type SupabaseStorage struct {
	baseURL    string
	apiKey     string
	bucket     string
	httpClient *http.Client
}

func NewSupabaseStorage(projectID, apiKey, bucket string) *SupabaseStorage {
	return &SupabaseStorage{
		baseURL:    fmt.Sprintf("https://%s.supabase.co", projectID),
		apiKey:     apiKey,
		bucket:     bucket,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type supabaseError struct {
	StatusCode string `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

func (s *SupabaseStorage) objectPath(visibility, key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}

	parts := []string{s.baseURL, "storage/v1/object"}
	if visibility != "" {
		parts = append(parts, visibility)
	}
	parts = append(parts, url.PathEscape(s.bucket), strings.Join(segments, "/"))
	return strings.Join(parts, "/")
}

func (s *SupabaseStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.objectPath("", key), body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request for %s: %w", key, err)
	}

	req.ContentLength = size
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "max-age=31536000")
	req.Header.Set("x-upsert", "false")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))

		reason := strings.TrimSpace(string(raw))
		var apiErr supabaseError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			reason = apiErr.Message
		}
		return "", fmt.Errorf("upload %s failed with status %d: %s", key, resp.StatusCode, reason)
	}

	return s.PublicURL(key), nil
}

func (s *SupabaseStorage) PublicURL(key string) string {
	return s.objectPath("public", key)
}
