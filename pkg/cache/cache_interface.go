package cache

import (
	"context"
	"time"
)

// Stats là snapshot thống kê của cache layer
// Hits/Misses đếm từ lúc process start, Keys là số keys hiện tại trong store
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Keys   int64  `json:"keys"`
}

// Cache interface định nghĩa contract cho cache layer
// Cho phép swap implementation (Redis, In-memory)
//
// Cache là best-effort: caller KHÔNG được propagate cache errors
// lên user — mọi error chỉ log rồi fall through sang uncached path.
type Cache interface {
	// Get lấy data từ cache và unmarshal vào dest
	// Returns: (found bool, error)
	// - found = true: cache hit, data đã unmarshal vào dest
	// - found = false: cache miss, dest không bị thay đổi
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set lưu data vào cache với TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete xóa các keys khỏi cache
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern xóa tất cả keys match glob pattern (vd: "popular:*")
	DeletePattern(ctx context.Context, pattern string) error

	// Ping kiểm tra connection
	Ping(ctx context.Context) error

	// Stats trả về hit/miss counters và key count
	Stats(ctx context.Context) (Stats, error)
}
