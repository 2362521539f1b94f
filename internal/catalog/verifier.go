package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/ibanezbetes/trinity-sub010/internal/common/logger"
	"github.com/ibanezbetes/trinity-sub010/internal/common/metrics"
	"github.com/ibanezbetes/trinity-sub010/internal/models"
)

// MaxTitles caps how many candidate titles are verified per query. Anything
// beyond the cap is discarded before any lookup is issued.
const MaxTitles = 10

// MovieSearcher is the catalog lookup the verifier fans out over.
type MovieSearcher interface {
	SearchMovie(ctx context.Context, title string) (*models.VerifiedMovie, error)
}

// StaticCatalog supplies curated movies when the live catalog is unreachable.
type StaticCatalog interface {
	StaticRecommendations() []models.VerifiedMovie
}

// Verifier grounds model-suggested titles against the catalog. Titles the
// catalog cannot confirm are dropped silently; the survivors keep the model's
// original ordering.
type Verifier struct {
	searcher MovieSearcher
	static   StaticCatalog
	logger   logger.Logger
}

func NewVerifier(searcher MovieSearcher, static StaticCatalog, log logger.Logger) *Verifier {
	return &Verifier{
		searcher: searcher,
		static:   static,
		logger: log.With(map[string]interface{}{
			"component": "grounding-verifier",
		}),
	}
}

// Verify looks up each candidate concurrently and returns the confirmed
// movies in candidate order. Individual misses and errors remove only the
// affected title. When the whole batch fails (the catalog is down or the
// context already expired) the curated static catalog is substituted so the
// user still gets recommendations.
func (v *Verifier) Verify(ctx context.Context, titles []string) []models.VerifiedMovie {
	if len(titles) == 0 {
		return nil
	}
	if len(titles) > MaxTitles {
		v.logger.Warn("truncating candidate titles", map[string]interface{}{
			"requested": len(titles),
			"cap":       MaxTitles,
		})
		titles = titles[:MaxTitles]
	}

	start := time.Now()
	defer func() {
		metrics.VerificationDuration.Observe(time.Since(start).Seconds())
	}()

	if ctx.Err() != nil {
		v.logger.Warn("verification skipped, context expired", map[string]interface{}{
			"error": ctx.Err().Error(),
		})
		return v.static.StaticRecommendations()
	}

	results := make([]*models.VerifiedMovie, len(titles))
	failures := make([]error, len(titles))

	var wg sync.WaitGroup
	for i, title := range titles {
		wg.Add(1)
		go func(idx int, t string) {
			defer wg.Done()
			movie, err := v.searcher.SearchMovie(ctx, t)
			if err != nil {
				failures[idx] = err
				metrics.CatalogLookups.WithLabelValues("error").Inc()
				v.logger.Warn("catalog lookup failed", map[string]interface{}{
					"title": t,
					"error": err.Error(),
				})
				return
			}
			if movie == nil {
				metrics.CatalogLookups.WithLabelValues("miss").Inc()
				v.logger.Debug("title not found in catalog", map[string]interface{}{
					"title": t,
				})
				return
			}
			metrics.CatalogLookups.WithLabelValues("hit").Inc()
			results[idx] = movie
		}(i, title)
	}
	wg.Wait()

	verified := make([]models.VerifiedMovie, 0, len(titles))
	errorCount := 0
	for i, movie := range results {
		if movie != nil {
			verified = append(verified, *movie)
		}
		if failures[i] != nil {
			errorCount++
		}
	}

	// Every lookup erroring out means the catalog itself is down, not that
	// the titles were hallucinated. Serve the curated set instead of nothing.
	if len(verified) == 0 && errorCount == len(titles) {
		v.logger.Error("catalog batch failed, substituting curated movies", map[string]interface{}{
			"titleCount": len(titles),
		})
		return v.static.StaticRecommendations()
	}

	v.logger.Info("verification completed", map[string]interface{}{
		"requested": len(titles),
		"verified":  len(verified),
	})
	return verified
}
