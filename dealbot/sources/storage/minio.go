package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"dealbot/dealbot/config"
	"dealbot/dealbot/types"
	"dealbot/dealbot/utils/logging"
)

// OfferCache stores scraped marketplace offers in MinIO so repeated
// queries skip the browser round trip. Entries older than TTL are
// treated as misses.
type OfferCache struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
}

type offerObject struct {
	Key       string             `json:"key"`
	Offer     types.ProductOffer `json:"offer"`
	Timestamp time.Time          `json:"timestamp"`
}

const defaultTTL = 1 * time.Hour

func NewOfferCache(cfg config.Config) (*OfferCache, error) {
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: false,
		},
	)
	if err != nil {
		return nil, err
	}

	bucket := cfg.MinIOBucket
	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &OfferCache{client: client, bucket: bucket, ttl: defaultTTL}, nil
}

func objectKey(key string) string {
	hash := fmt.Sprintf("%x", md5.Sum([]byte(key)))
	return filepath.Join("offers", fmt.Sprintf("%s.json", hash))
}

func (c *OfferCache) GetOffer(ctx context.Context, key string) (types.ProductOffer, bool) {
	obj, err := c.client.GetObject(ctx, c.bucket, objectKey(key), minio.GetObjectOptions{})
	if err != nil {
		return types.ProductOffer{}, false
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return types.ProductOffer{}, false
	}
	var stored offerObject
	if err := json.Unmarshal(data, &stored); err != nil {
		return types.ProductOffer{}, false
	}
	if time.Since(stored.Timestamp) > c.ttl {
		return types.ProductOffer{}, false
	}
	return stored.Offer, true
}

func (c *OfferCache) PutOffer(ctx context.Context, key string, offer types.ProductOffer) {
	data, err := json.Marshal(offerObject{
		Key:       key,
		Offer:     offer,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return
	}
	_, err = c.client.PutObject(ctx, c.bucket, objectKey(key),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		logging.ErrorLogger.Error("offer cache write failed",
			zap.String("key", key), zap.Error(err))
	}
}
