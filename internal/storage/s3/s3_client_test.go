package s3

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bizcardx/internal/config"
)

func TestGetPresignedURL_PathStyleEndpoint(t *testing.T) {
	store, err := NewS3Client(context.Background(), &config.S3Config{
		Region:    "us-east-1",
		Bucket:    "cards-bucket",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio-secret",
	}, zap.NewNop())
	require.NoError(t, err)

	url, err := store.GetPresignedURL(context.Background(), "cards-bucket", "cards/abc/original.png", 600)
	require.NoError(t, err)
	assert.Contains(t, url, "http://localhost:9000/cards-bucket/cards/abc/original.png")
	assert.Contains(t, url, "X-Amz-Expires=600")
}
