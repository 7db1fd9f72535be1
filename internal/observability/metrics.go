// Package observability holds metrics and tracing plumbing shared by the
// rest of the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkstream_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FeedCacheHits counts feed page requests served from the cache.
	FeedCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkstream_feed_cache_hits_total",
		Help: "Feed pages served from the cache",
	})

	// FeedCacheMisses counts feed page requests that fell through to the database.
	FeedCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkstream_feed_cache_misses_total",
		Help: "Feed pages recomputed from the database",
	})

	// PostsPublished counts successfully created posts.
	PostsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkstream_posts_published_total",
		Help: "Total number of posts created",
	})

	// FollowEdgesChanged counts follow graph mutations by action.
	FollowEdgesChanged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkstream_follow_edges_changed_total",
		Help: "Follow graph mutations by action",
	}, []string{"action"})
)
