package storage

import (
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/UnitedVilla/checkin-system/config"
)

// ObjectClient talks to the managed blob store's signed REST API. The store
// holds the uploaded identity documents; this server only ever verifies
// existence, signs client-side uploads, and (for operators) deletes.
type ObjectClient struct {
	cfg    config.ObjectStoreConfig
	client *http.Client
}

var Objects *ObjectClient

func InitializeObjects(cfg config.ObjectStoreConfig) {
	Objects = &ObjectClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *ObjectClient) baseURL() string {
	return "https://api.cloudinary.com/v1_1/" + c.cfg.CloudName
}

// Exists reports whether an object is present at the given path. Uploads
// happen client-side against the signed API, so this lookup is the only
// authoritative verification the server performs.
func (c *ObjectClient) Exists(ctx context.Context, path string) (bool, error) {
	endpoint := c.baseURL() + "/resources/image/upload/" + escapePath(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}
	req.SetBasicAuth(c.cfg.APIKey, c.cfg.APISecret)

	res, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("object store lookup for %s failed with status %d", path, res.StatusCode)
	}
}

// SignUpload returns the form parameters a client needs to upload one
// object directly to the store under the given path. The signature covers
// public_id and timestamp, same scheme the store expects for signed uploads.
func (c *ObjectClient) SignUpload(path string) map[string]string {
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	return map[string]string{
		"api_key":   c.cfg.APIKey,
		"public_id": path,
		"timestamp": timestamp,
		"signature": c.sign(path, timestamp),
	}
}

// Delete removes an object. Nothing in the check-in flow deletes uploads;
// this exists for operator cleanup tooling.
func (c *ObjectClient) Delete(ctx context.Context, path string) error {
	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	form := url.Values{}
	form.Add("public_id", path)
	form.Add("api_key", c.cfg.APIKey)
	form.Add("timestamp", timestamp)
	form.Add("signature", c.sign(path, timestamp))

	endpoint := c.baseURL() + "/image/destroy"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("object store delete failed with status %d: %s", res.StatusCode, string(body))
	}
	return nil
}

// escapePath escapes each path segment but keeps the separators, since the
// store addresses nested objects by slash-delimited public IDs.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func (c *ObjectClient) sign(publicID, timestamp string) string {
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, c.cfg.APISecret)
	return fmt.Sprintf("%x", sha1.Sum([]byte(signatureString)))
}
