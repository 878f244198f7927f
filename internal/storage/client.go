package storage

import (
	"bytes"
	"fmt"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// Client wraps the Supabase storage bucket holding curator upload images.
type Client struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewClient(supabaseURL, serviceRoleKey, bucket string) (*Client, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &Client{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// StoreImage uploads the bytes under uploads/{storedFilename} and returns
// the object path. The caller is responsible for generating a
// collision-resistant stored filename.
func (c *Client) StoreImage(storedFilename string, data []byte, contentType string) (string, error) {
	objectPath := "uploads/" + storedFilename

	upsert := false
	_, err := c.client.UploadFile(c.bucket, objectPath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return objectPath, nil
}

// PublicURL returns the public object URL for a stored path.
func (c *Client) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, objectPath)
}

// DeleteImage removes a stored object.
func (c *Client) DeleteImage(objectPath string) error {
	_, err := c.client.RemoveFile(c.bucket, []string{objectPath})
	return err
}
