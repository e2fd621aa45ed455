// Package cloudinary is a minimal client for Cloudinary's signed upload
// REST endpoint, used to host complaint photos.
package cloudinary

import (
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Client uploads images into a configured folder.
type Client struct {
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
	httpc     *http.Client
}

// New creates a client for the given account.
func New(cloudName, apiKey, apiSecret, folder string) *Client {
	return &Client{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		folder:    folder,
		httpc:     &http.Client{Timeout: 30 * time.Second},
	}
}

// UploadResult is the subset of the upload response we use.
type UploadResult struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Format    string `json:"format"`
	Bytes     int    `json:"bytes"`
}

// UploadBase64 uploads an image given as a data URL
// ("data:image/jpeg;base64,...") or raw base64; Cloudinary accepts both
// directly in the file field.
func (c *Client) UploadBase64(data string) (*UploadResult, error) {
	return c.upload(func(w *multipart.Writer) error {
		return w.WriteField("file", data)
	})
}

// UploadBytes uploads raw image bytes under the given filename.
func (c *Client) UploadBytes(data []byte, filename string) (*UploadResult, error) {
	return c.upload(func(w *multipart.Writer) error {
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			return err
		}
		_, err = io.Copy(part, bytes.NewReader(data))
		return err
	})
}

func (c *Client) upload(writeFile func(*multipart.Writer) error) (*UploadResult, error) {
	params := map[string]string{
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
		"api_key":   c.apiKey,
	}
	if c.folder != "" {
		params["folder"] = c.folder
	}
	params["signature"] = c.sign(params)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range params {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("cloudinary: build form: %w", err)
		}
	}
	if err := writeFile(w); err != nil {
		return nil, fmt.Errorf("cloudinary: build form: %w", err)
	}
	w.Close()

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", c.cloudName)
	req, err := http.NewRequest(http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cloudinary: upload failed (%d): %s", resp.StatusCode, body)
	}

	var result UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("cloudinary: decode response: %w", err)
	}
	return &result, nil
}

// sign computes the request signature. api_key, file and resource_type
// are excluded from the signed string.
func (c *Client) sign(params map[string]string) string {
	excluded := map[string]bool{"api_key": true, "file": true, "resource_type": true}

	pairs := make([]string, 0, len(params))
	for k, v := range params {
		if !excluded[k] && v != "" {
			pairs = append(pairs, k+"="+v)
		}
	}
	sort.Strings(pairs)

	h := sha1.New()
	h.Write([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return fmt.Sprintf("%x", h.Sum(nil))
}
