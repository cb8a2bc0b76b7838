package helper

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"quizku_backend/internals/configs"
	"quizku_backend/internals/logger"
)

/* =======================================================================
   OSS Service
======================================================================= */

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // optional: "certificates"
}

func normalizeEndpoint(ep string) string {
	ep = strings.TrimSpace(ep)
	ep = strings.TrimPrefix(ep, "https://")
	ep = strings.TrimPrefix(ep, "http://")
	return strings.TrimRight(ep, "/")
}

func NewOSSService(cfg configs.OSSConfig) (*OSSService, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("missing config: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}
	endpoint := normalizeEndpoint(cfg.Endpoint)
	client, err := oss.New(endpoint, cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// light bucket check; AccessDenied is tolerated for put-only keys
	if loc, err := client.GetBucketLocation(cfg.Bucket); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			logger.L().WithField("bucket", cfg.Bucket).Warn("oss: skip location check, AccessDenied")
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		logger.L().WithField("bucket", cfg.Bucket).WithField("location", loc).Info("oss bucket ready")
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: cfg.Bucket,
		Prefix:     strings.Trim(cfg.Prefix, "/"),
	}, nil
}

// Key joins the service prefix and name.
func (s *OSSService) Key(name string) string {
	name = strings.TrimLeft(name, "/")
	if s.Prefix == "" {
		return name
	}
	return s.Prefix + "/" + name
}

func (s *OSSService) UploadStream(ctx context.Context, key string, r io.Reader, contentType string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.Bucket.PutObject(key, r,
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("attachment"),
	)
}

// SignedURL returns a time-limited GET link for a private object.
func (s *OSSService) SignedURL(key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return s.Bucket.SignURL(key, oss.HTTPGet, int64(ttl/time.Second))
}

func (s *OSSService) DeleteObject(ctx context.Context, key string) error {
	return s.Bucket.DeleteObject(key, oss.WithContext(ctx))
}

// ReapOlderThan deletes objects under the prefix last modified before now-retention.
func (s *OSSService) ReapOlderThan(ctx context.Context, retention time.Duration) (int, error) {
	threshold := time.Now().Add(-retention)
	prefix := s.Prefix
	if prefix != "" {
		prefix += "/"
	}

	marker := oss.Marker("")
	var keys []string
	for {
		lor, err := s.Bucket.ListObjects(oss.Prefix(prefix), marker, oss.MaxKeys(1000), oss.WithContext(ctx))
		if err != nil {
			return 0, err
		}
		for _, obj := range lor.Objects {
			if obj.Key != "" && obj.LastModified.Before(threshold) {
				keys = append(keys, obj.Key)
			}
		}
		if !lor.IsTruncated {
			break
		}
		marker = oss.Marker(lor.NextMarker)
	}

	deleted := 0
	for i := 0; i < len(keys); i += 1000 {
		end := min(i+1000, len(keys))
		batch := keys[i:end]
		if _, err := s.Bucket.DeleteObjects(batch, oss.DeleteObjectsQuiet(true), oss.WithContext(ctx)); err != nil {
			logger.L().WithError(err).Warnf("oss reaper: delete batch %d-%d failed", i, end)
			continue
		}
		deleted += len(batch)
	}
	return deleted, nil
}
