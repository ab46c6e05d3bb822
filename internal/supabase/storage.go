package supabase

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	storage "github.com/supabase-community/storage-go"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.]`)

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

// NewStorageClient returns a client bound to one bucket. The portal keeps
// three: general attachments, brand assets, and payment proofs.
func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) (*StorageClient, error) {
	baseURL := strings.TrimRight(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// ObjectName builds the stored filename: a purpose prefix, an upload
// timestamp, and the sanitized original name.
func ObjectName(prefix, filename string) string {
	clean := unsafeNameChars.ReplaceAllString(filename, "_")
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), clean)
}

// UploadFile stores data under objectName and returns the storage path and
// its public URL.
func (s *StorageClient) UploadFile(objectName, contentType string, data []byte) (string, string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	upsert := false
	_, err := s.client.UploadFile(s.bucket, objectName, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload file: %w", err)
	}

	return objectName, s.PublicURL(objectName), nil
}

// PublicURL resolves a stored path to its public object URL.
func (s *StorageClient) PublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.baseURL, s.bucket, storagePath)
}

func (s *StorageClient) DeleteFile(storagePath string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{storagePath})
	return err
}

func (s *StorageClient) DownloadFile(storagePath string) ([]byte, error) {
	data, err := s.client.DownloadFile(s.bucket, storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}

	return data, nil
}
