// Package recommend coordinates the recommendation pipeline: model
// classification, response decoding, catalog grounding and degraded-mode
// fallbacks.
package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/ibanezbetes/trinity-sub010/internal/common/errors"
	"github.com/ibanezbetes/trinity-sub010/internal/common/logger"
	"github.com/ibanezbetes/trinity-sub010/internal/common/metrics"
	"github.com/ibanezbetes/trinity-sub010/internal/common/observability"
	"github.com/ibanezbetes/trinity-sub010/internal/fallback"
	"github.com/ibanezbetes/trinity-sub010/internal/models"
)

// ModelClient classifies a user query through the generative model.
type ModelClient interface {
	ClassifyIntent(ctx context.Context, query string) (string, error)
}

// ResponseDecoder turns raw model text into a usable intent. It never fails.
type ResponseDecoder interface {
	Decode(raw string) models.ClassifiedIntent
}

// TitleVerifier grounds candidate titles against the catalog.
type TitleVerifier interface {
	Verify(ctx context.Context, titles []string) []models.VerifiedMovie
}

// Orchestrator runs a query through the full pipeline. Recommend never
// returns an error: every upstream failure is absorbed into a degraded but
// complete response.
type Orchestrator struct {
	model    ModelClient
	decoder  ResponseDecoder
	verifier TitleVerifier
	fallback *fallback.Engine
	obs      *observability.Observability
	logger   logger.Logger
}

func NewOrchestrator(
	model ModelClient,
	decoder ResponseDecoder,
	verifier TitleVerifier,
	fb *fallback.Engine,
	obs *observability.Observability,
	log logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		model:    model,
		decoder:  decoder,
		verifier: verifier,
		fallback: fb,
		obs:      obs,
		logger: log.With(map[string]interface{}{
			"component": "orchestrator",
		}),
	}
}

// Recommend processes one user query end to end.
//
// Off-topic queries return the model's conversational reply without touching
// the catalog. On-topic queries get their candidate titles verified and a
// summary reply reflecting how many survived. Any model failure is classified
// and answered from the curated fallback instead.
func (o *Orchestrator) Recommend(ctx context.Context, query string) (result models.OrchestrationResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("pipeline panic recovered", map[string]interface{}{
				"panic": fmt.Sprintf("%v", r),
			})
			result = o.degrade(query, errors.CategoryGeneralError)
		}
		result.ProcessingTimeMs = time.Since(start).Milliseconds()
		metrics.QueriesProcessed.WithLabelValues(string(result.Intent), fmt.Sprintf("%t", result.UsedFallback)).Inc()
		o.obs.RecordQueryProcessed(ctx, string(result.Intent), result.UsedFallback)
		o.obs.RecordQueryDuration(ctx, time.Since(start), string(result.Intent))
	}()

	raw, err := o.model.ClassifyIntent(ctx, query)
	if err != nil {
		category := errors.Classify(err)
		o.logger.Warn("model classification failed", map[string]interface{}{
			"category": string(category),
			"error":    err.Error(),
		})
		return o.degrade(query, category)
	}

	intent := o.decoder.Decode(raw)

	if intent.Intent == models.IntentOther {
		return models.OrchestrationResult{
			Intent: models.IntentOther,
			Reply:  intent.Reply,
		}
	}

	movies := o.verifier.Verify(ctx, intent.Titles)

	return models.OrchestrationResult{
		Intent: models.IntentCinema,
		Titles: intent.Titles,
		Reply:  o.summarize(len(intent.Titles), len(movies)),
		Movies: movies,
	}
}

// degrade answers a query from the curated fallback after an upstream
// failure.
func (o *Orchestrator) degrade(query string, category errors.FailureCategory) models.OrchestrationResult {
	res := o.fallback.Recommend(query, category)
	titles := make([]string, 0, len(res.Movies))
	for _, m := range res.Movies {
		titles = append(titles, m.Title)
	}
	return models.OrchestrationResult{
		Intent:          models.IntentCinema,
		Titles:          titles,
		Reply:           res.Reply,
		Movies:          res.Movies,
		UsedFallback:    true,
		FailureCategory: category,
		DetectedGenres:  res.DetectedGenres,
	}
}

// summarize builds the reply for a grounded cinema response. The tone
// depends on how many candidates survived verification.
func (o *Orchestrator) summarize(requested, verified int) string {
	switch {
	case verified == 0:
		return "Vaya, no he podido confirmar ninguna de esas películas en mi catálogo. ¿Me das alguna pista más de lo que te apetece ver?"
	case verified >= requested:
		return fmt.Sprintf("¡Aquí tienes! He encontrado %d películas que encajan con lo que buscas. ¡A disfrutar!", verified)
	default:
		return fmt.Sprintf("He podido confirmar %d de las %d películas que tenía en mente. Las demás se me escapan, pero estas merecen mucho la pena.", verified, requested)
	}
}
