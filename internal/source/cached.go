package source

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/spherical/question-splitter/internal/cache"
	"github.com/spherical/question-splitter/internal/domain"
	"github.com/spherical/question-splitter/internal/observability"
)

// PathSource is a TextSource backed by a single file.
type PathSource interface {
	domain.TextSource
	Path() string

	// CacheVariant names the settings that change what Load returns for the same
	// bytes, such as whether image pages were detected.
	CacheVariant() []string
}

// CachedSource memoizes an inner source by file content. Cache failures never fail a run.
type CachedSource struct {
	inner  PathSource
	cache  cache.Client
	ttl    time.Duration
	logger *observability.Logger
}

// NewCachedSource wraps inner with the given cache.
func NewCachedSource(inner PathSource, c cache.Client, ttl time.Duration, logger *observability.Logger) *CachedSource {
	if logger == nil {
		logger = observability.Nop()
	}
	return &CachedSource{
		inner:  inner,
		cache:  c,
		ttl:    ttl,
		logger: logger.WithComponent("source_cache"),
	}
}

// Describe implements domain.TextSource.
func (s *CachedSource) Describe() string {
	return s.inner.Describe()
}

// Load implements domain.TextSource.
func (s *CachedSource) Load(ctx context.Context) (*domain.Document, error) {
	content, err := os.ReadFile(s.inner.Path())
	if err != nil {
		// let the inner source report the proper SourceUnavailable error
		return s.inner.Load(ctx)
	}
	key := cache.ContentKey(content, s.inner.CacheVariant()...)

	if data, err := s.cache.Get(ctx, key); err == nil {
		var doc domain.Document
		if err := json.Unmarshal(data, &doc); err == nil {
			doc.Path = s.inner.Path()
			s.logger.Debug().Str("key", key).Msg("extraction cache hit")
			return &doc, nil
		}
		s.logger.Warn().Str("key", key).Msg("discarding undecodable cache entry")
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Warn().Err(err).Msg("extraction cache delete failed")
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn().Err(err).Msg("extraction cache read failed")
	}

	doc, err := s.inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(doc); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn().Err(err).Msg("extraction cache write failed")
		}
	}

	return doc, nil
}
