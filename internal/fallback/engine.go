// Package fallback serves curated recommendations when the model or the
// catalog cannot. It never performs I/O and never fails.
package fallback

import (
	"strings"

	"github.com/ibanezbetes/trinity-sub010/internal/common/errors"
	"github.com/ibanezbetes/trinity-sub010/internal/common/logger"
	"github.com/ibanezbetes/trinity-sub010/internal/common/metrics"
	"github.com/ibanezbetes/trinity-sub010/internal/models"
)

// maxTargetedMovies caps genre-targeted fallback results.
const maxTargetedMovies = 8

// defaultStaticCount is how many curated movies an untargeted fallback serves.
const defaultStaticCount = 5

// Result is a complete degraded response: curated movies plus an
// in-character reply explaining the situation.
type Result struct {
	Movies         []models.VerifiedMovie
	Reply          string
	DetectedGenres []string
}

// Engine builds degraded responses from curated offline data.
type Engine struct {
	logger logger.Logger
}

func NewEngine(log logger.Logger) *Engine {
	return &Engine{
		logger: log.With(map[string]interface{}{
			"component": "fallback-engine",
		}),
	}
}

// StaticRecommendations returns a copy of the full curated catalog.
func (e *Engine) StaticRecommendations() []models.VerifiedMovie {
	out := make([]models.VerifiedMovie, len(staticMovies))
	copy(out, staticMovies)
	return out
}

// PersonaMessage returns the in-character explanation for a failure
// category. Unknown categories get the network message.
func (e *Engine) PersonaMessage(category errors.FailureCategory) string {
	if msg, ok := personaMessages[category]; ok {
		return msg
	}
	return personaMessages[errors.CategoryNetworkError]
}

// ShouldFallback reports whether the error warrants degraded content.
func (e *Engine) ShouldFallback(err error) bool {
	return errors.ShouldFallback(err)
}

// Recommend builds a degraded response tuned to the query. Detected genre
// interests select matching movies from the curated pool; a query with no
// genre signal, or one nothing in the pool matches, gets the top curated
// titles instead. Deterministic for a given query and category.
func (e *Engine) Recommend(query string, category errors.FailureCategory) Result {
	metrics.FallbackActivations.WithLabelValues(string(category)).Inc()

	genres := DetectGenres(query)
	movies := e.selectMovies(genres)

	e.logger.Info("serving fallback recommendations", map[string]interface{}{
		"category":       string(category),
		"detectedGenres": genres,
		"movieCount":     len(movies),
	})

	return Result{
		Movies:         movies,
		Reply:          e.buildReply(category, genres),
		DetectedGenres: genres,
	}
}

// selectMovies filters the curated pool by detected genres, falling back to
// the top static titles when targeting yields nothing.
func (e *Engine) selectMovies(genres []string) []models.VerifiedMovie {
	if len(genres) == 0 {
		return e.topStatic()
	}

	wanted := make(map[string]bool, len(genres))
	for _, g := range genres {
		wanted[g] = true
	}

	pool := make([]models.VerifiedMovie, 0, len(staticMovies)+len(extendedMovies))
	pool = append(pool, staticMovies...)
	pool = append(pool, extendedMovies...)

	var matched []models.VerifiedMovie
	for _, movie := range pool {
		for _, g := range movie.Genres {
			if wanted[g] {
				matched = append(matched, movie)
				break
			}
		}
		if len(matched) == maxTargetedMovies {
			break
		}
	}

	if len(matched) == 0 {
		return e.topStatic()
	}
	return matched
}

func (e *Engine) topStatic() []models.VerifiedMovie {
	out := make([]models.VerifiedMovie, defaultStaticCount)
	copy(out, staticMovies[:defaultStaticCount])
	return out
}

// buildReply composes the persona message plus at most one genre clause.
// Clause priority: regional, then comedy, drama, action, romance, and a
// generic clause listing whatever else was detected.
func (e *Engine) buildReply(category errors.FailureCategory, genres []string) string {
	reply := e.PersonaMessage(category)

	if len(genres) == 0 {
		return reply
	}

	detected := make(map[string]bool, len(genres))
	for _, g := range genres {
		detected[g] = true
	}

	switch {
	case detected[RegionalGenre]:
		reply += " He seleccionado joyas del cine español que te van a encantar."
	case detected["Comedia"]:
		reply += " Aquí tienes unas comedias que te sacarán una sonrisa."
	case detected["Drama"]:
		reply += " Te propongo dramas de los que no te dejan indiferente."
	case detected["Acción"]:
		reply += " Prepárate, que estas películas de acción no dan tregua."
	case detected["Romance"]:
		reply += " Estas historias de amor son de las que se recuerdan."
	default:
		reply += " Veo que buscas " + strings.ToLower(strings.Join(genres, ", ")) + ", así que te dejo unas cuantas que encajan."
	}

	return reply
}
