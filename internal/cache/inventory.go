package cache

import (
	"context"
	"fmt"
	"time"
)

// Only post-by-id reads are cached. List endpoints are paginated and profile
// documents change through child tables, so those reads go straight to the
// database.
const (
	postKeyPrefix = "post:%d"
	PostTTL       = 5 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}
