package assets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	lru "github.com/hashicorp/golang-lru"
)

const (
	defaultIconKey = "default.png"
	iconCacheSize  = 512
	headTimeout    = 500 * time.Millisecond
)

// SpacesService serves badge icon URLs from a DigitalOcean Spaces bucket.
type SpacesService struct {
	client   *s3.Client
	bucket   string
	region   string
	IconRoot string
	urlCache *lru.Cache
}

func NewSpacesService(spacesKey, spacesSecret, region, bucket, iconRoot string) *SpacesService {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		panic(fmt.Sprintf("Unable to load Spaces config: %v", err))
	}

	cache, _ := lru.New(iconCacheSize)

	return &SpacesService{
		client:   s3.NewFromConfig(cfg),
		bucket:   bucket,
		region:   region,
		IconRoot: strings.TrimPrefix(iconRoot, "/"),
		urlCache: cache,
	}
}

// IconURL resolves the public URL for a badge icon. Missing objects fall back
// to the shared default icon. Resolved URLs are cached per badge ID.
func (s *SpacesService) IconURL(ctx context.Context, badgeID string) string {
	if cached, ok := s.urlCache.Get(badgeID); ok {
		return cached.(string)
	}

	key := fmt.Sprintf("%s/%s.png", s.IconRoot, badgeID)

	timeoutCtx, cancel := context.WithTimeout(ctx, headTimeout)
	defer cancel()

	_, err := s.client.HeadObject(timeoutCtx, &s3.HeadObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		key = fmt.Sprintf("%s/%s", s.IconRoot, defaultIconKey)
	}

	url := s.objectURL(key)
	s.urlCache.Add(badgeID, url)
	return url
}

// DeleteIcon removes a badge icon and evicts its cached URL.
func (s *SpacesService) DeleteIcon(ctx context.Context, badgeID string) error {
	key := fmt.Sprintf("%s/%s.png", s.IconRoot, badgeID)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete icon %s: %w", key, err)
	}

	s.urlCache.Remove(badgeID)
	return nil
}

func (s *SpacesService) objectURL(key string) string {
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.bucket, s.region, key)
}
