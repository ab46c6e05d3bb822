package supabase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"nexus-portal-backend/internal/supabase"
)

func TestObjectName_SanitizesFilename(t *testing.T) {
	name := supabase.ObjectName("upload", "my photo (final)!.png")

	assert.True(t, strings.HasPrefix(name, "upload-"))
	assert.True(t, strings.HasSuffix(name, "-my_photo__final__.png"))
	assert.NotContains(t, name, " ")
	assert.NotContains(t, name, "(")
}

func TestObjectName_KeepsDotsAndAlphanumerics(t *testing.T) {
	name := supabase.ObjectName("proof", "receipt.2024.pdf")

	assert.True(t, strings.HasSuffix(name, "-receipt.2024.pdf"))
}

func TestObjectName_TimestampSegment(t *testing.T) {
	a := supabase.ObjectName("brand", "logo.svg")
	b := supabase.ObjectName("brand", "logo.svg")

	partsA := strings.SplitN(a, "-", 3)
	partsB := strings.SplitN(b, "-", 3)
	assert.Len(t, partsA, 3)
	assert.Equal(t, partsA[0], partsB[0])
	assert.Equal(t, partsA[2], partsB[2])
}

func TestStorageClient_PublicURL(t *testing.T) {
	client, err := supabase.NewStorageClient("https://example.supabase.co/", "service-key", "attachments")
	assert.NoError(t, err)

	url := client.PublicURL("upload-123-file.png")
	assert.Equal(t, "https://example.supabase.co/storage/v1/object/public/attachments/upload-123-file.png", url)
}
