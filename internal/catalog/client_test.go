package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ibanezbetes/trinity-sub010/internal/common/config"
	"github.com/ibanezbetes/trinity-sub010/internal/common/errors"
	"github.com/ibanezbetes/trinity-sub010/internal/common/logger"
	"github.com/ibanezbetes/trinity-sub010/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalogConfig(baseURL string) config.CatalogConfig {
	return config.CatalogConfig{
		BaseURL:      baseURL,
		APIKey:       "test-key",
		ImageBaseURL: "https://image.example.com/w500",
		Language:     "es-ES",
		Timeout:      2000,
	}
}

func TestSearchMovie(t *testing.T) {
	t.Run("best match with full enrichment", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search/movie", r.URL.Path)
			assert.Equal(t, "Dune", r.URL.Query().Get("query"))
			assert.Equal(t, "es-ES", r.URL.Query().Get("language"))
			w.Write([]byte(`{"results": [
				{"id": 438631, "title": "Dune", "overview": "Paul Atreides viaja a Arrakis.", "release_date": "2021-09-15", "poster_path": "/dune.jpg", "vote_average": 7.8, "genre_ids": [878, 12]},
				{"id": 841, "title": "Dune (1984)", "overview": "", "release_date": "1984-12-14", "poster_path": "", "vote_average": 6.2, "genre_ids": [878]}
			]}`))
		}))
		defer server.Close()

		client, err := NewClient(testCatalogConfig(server.URL), logger.NewTestLogger(t))
		require.NoError(t, err)

		movie, err := client.SearchMovie(context.Background(), "Dune")
		require.NoError(t, err)
		require.NotNil(t, movie)
		assert.Equal(t, 438631, movie.ID)
		assert.Equal(t, "Dune", movie.Title)
		assert.Equal(t, "2021", movie.ReleaseYear)
		assert.Equal(t, "https://image.example.com/w500/dune.jpg", movie.PosterURL)
		assert.Equal(t, []string{"Ciencia ficción", "Aventura"}, movie.Genres)
		assert.Equal(t, 7.8, movie.Rating)
	})

	t.Run("missing fields get defaults", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": [{"id": 99, "title": "Oscura", "overview": "", "release_date": "", "poster_path": "", "vote_average": 0, "genre_ids": []}]}`))
		}))
		defer server.Close()

		client, err := NewClient(testCatalogConfig(server.URL), logger.NewTestLogger(t))
		require.NoError(t, err)

		movie, err := client.SearchMovie(context.Background(), "Oscura")
		require.NoError(t, err)
		require.NotNil(t, movie)
		assert.Equal(t, models.UnknownYear, movie.ReleaseYear)
		assert.Equal(t, models.DefaultOverview, movie.Overview)
		assert.Empty(t, movie.PosterURL)
	})

	t.Run("no results is a miss, not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": []}`))
		}))
		defer server.Close()

		client, err := NewClient(testCatalogConfig(server.URL), logger.NewTestLogger(t))
		require.NoError(t, err)

		movie, err := client.SearchMovie(context.Background(), "Película Inventada Que No Existe")
		require.NoError(t, err)
		assert.Nil(t, movie)
	})

	t.Run("5xx carries catalog-unavailable category", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client, err := NewClient(testCatalogConfig(server.URL), logger.NewTestLogger(t))
		require.NoError(t, err)

		_, err = client.SearchMovie(context.Background(), "Dune")
		require.Error(t, err)
		assert.Equal(t, errors.CategoryCatalogUnavailable, errors.Classify(err))
	})

	t.Run("constructor rejects missing key", func(t *testing.T) {
		cfg := testCatalogConfig("https://example.com")
		cfg.APIKey = ""
		_, err := NewClient(cfg, logger.NewTestLogger(t))
		require.Error(t, err)
	})
}

func TestGenreNames(t *testing.T) {
	assert.Equal(t, []string{"Comedia", "Drama"}, GenreNames([]int{35, 18}))
	assert.Empty(t, GenreNames([]int{999999}))
	assert.Empty(t, GenreNames(nil))
}
