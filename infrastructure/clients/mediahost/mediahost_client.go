package mediahost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"

	"github.com/google/uuid"
)

// Client talks to the external media host: it uploads local files and
// deletes assets by public id. Every call carries a bounded timeout.
type Client struct {
	baseURL    string
	apiKey     string
	folder     string
	httpClient *http.Client
}

type Config struct {
	BaseURL string
	APIKey  string
	Folder  string
	Timeout time.Duration
}

func NewClient(cfg Config) repository.IMediaHost {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		folder:     cfg.Folder,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type uploadResponse struct {
	URL       string  `json:"url"`
	SecureURL string  `json:"secure_url"`
	PublicID  string  `json:"public_id"`
	Duration  float64 `json:"duration"`
}

// Upload sends the local file as multipart form data. The client assigns
// the public id up front so the asset remains addressable for cleanup even
// if the response is lost.
func (c *Client) Upload(ctx context.Context, localPath string) (*model.MediaAsset, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open local file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed closing upload file")
		}
	}()

	publicID := fmt.Sprintf("%s/%s", c.folder, uuid.NewString())

	body, contentType, err := buildMultipart(f, filepath.Base(localPath), publicID)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media host upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("media host upload failed: status %d: %s", resp.StatusCode, payload)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("media host upload: decode response: %w", err)
	}

	asset := &model.MediaAsset{
		URL:      parsed.SecureURL,
		PublicID: parsed.PublicID,
		Duration: parsed.Duration,
	}
	if asset.URL == "" {
		asset.URL = parsed.URL
	}
	if asset.PublicID == "" {
		asset.PublicID = publicID
	}
	return asset, nil
}

func buildMultipart(f *os.File, filename, publicID string) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", err
	}
	if err := writer.WriteField("public_id", publicID); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}

// Delete removes an asset by public id. A 404 counts as success: the goal
// is absence, and cleanup paths retry blindly.
func (c *Client) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/assets/%s", c.baseURL, publicID), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("media host delete: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("media host delete failed: status %d", resp.StatusCode)
	}
	return nil
}
