package imagecache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ngoctranle/mediadex/internal/config"
	"github.com/ngoctranle/mediadex/internal/domain/hints"
	"github.com/ngoctranle/mediadex/internal/domain/item"
	"github.com/ngoctranle/mediadex/pkg/logger"
)

// cloudinaryImageCache serves image cache tags from the Cloudinary
// asset version of the item's artwork, memoized in Redis. The aspect
// ratio of primary images comes from the same asset metadata.
type cloudinaryImageCache struct {
	cld    *cloudinary.Cloudinary
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCloudinaryImageCache(cfg config.Config, rdb *redis.Client, log logger.Logger) (hints.ImageCache, error) {

	if cfg.Cloudinary.CloudName == "" {
		return nil, fmt.Errorf("cloudinary cloud_name has not config")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.ApiKey,
		cfg.Cloudinary.ApiSecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init cloudinary: %w", err)
	}

	log.Info("Connect Cloudinary successfully.")
	return &cloudinaryImageCache{
		cld:    cld,
		rdb:    rdb,
		ttl:    cfg.Search.ImageTagTTL,
		logger: log,
	}, nil
}

func (c *cloudinaryImageCache) Tag(ctx context.Context, it *item.Item, kind item.ImageKind) (string, error) {
	publicID := it.Images[kind]
	if publicID == "" {
		return "", nil
	}

	key := "imgtag:" + publicID
	if tag, ok := c.cached(ctx, key); ok {
		return tag, nil
	}

	asset, err := c.asset(ctx, publicID)
	if err != nil {
		return "", err
	}

	tag := strconv.Itoa(asset.Version)
	c.remember(ctx, key, tag)
	return tag, nil
}

func (c *cloudinaryImageCache) PrimaryAspectRatio(ctx context.Context, it *item.Item) (float64, error) {
	publicID := it.Images[item.ImagePrimary]
	if publicID == "" {
		return 0, nil
	}

	key := "imgar:" + publicID
	if raw, ok := c.cached(ctx, key); ok {
		if ratio, err := strconv.ParseFloat(raw, 64); err == nil {
			return ratio, nil
		}
	}

	asset, err := c.asset(ctx, publicID)
	if err != nil {
		return 0, err
	}
	if asset.Height == 0 {
		return 0, nil
	}

	ratio := float64(asset.Width) / float64(asset.Height)
	c.remember(ctx, key, strconv.FormatFloat(ratio, 'f', -1, 64))
	return ratio, nil
}

func (c *cloudinaryImageCache) asset(ctx context.Context, publicID string) (*admin.AssetResult, error) {
	c.logger.Debug("image cache miss, querying provider", zap.String("public_id", publicID))

	res, err := c.cld.Admin.Asset(ctx, admin.AssetParams{PublicID: publicID})
	if err != nil {
		return nil, fmt.Errorf("cloudinary asset lookup failed: %w", err)
	}
	return res, nil
}

func (c *cloudinaryImageCache) cached(ctx context.Context, key string) (string, bool) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("image cache read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	if val != "" {
		c.logger.Debug("image cache hit", zap.String("key", key))
	}
	return val, val != ""
}

func (c *cloudinaryImageCache) remember(ctx context.Context, key, val string) {
	if err := c.rdb.Set(ctx, key, val, c.ttl).Err(); err != nil {
		c.logger.Warn("image cache write failed", zap.String("key", key), zap.Error(err))
	}
}
