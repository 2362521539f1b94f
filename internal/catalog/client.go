package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ibanezbetes/trinity-sub010/internal/common/config"
	"github.com/ibanezbetes/trinity-sub010/internal/common/errors"
	"github.com/ibanezbetes/trinity-sub010/internal/common/httpclient"
	"github.com/ibanezbetes/trinity-sub010/internal/common/logger"
	"github.com/ibanezbetes/trinity-sub010/internal/models"
)

const maxResponseSize = 1 << 20 // 1MB

// Client talks to the movie catalog's search API.
type Client struct {
	cfg    config.CatalogConfig
	http   *httpclient.Client
	logger logger.Logger
}

// NewClient validates the catalog configuration and builds a client.
func NewClient(cfg config.CatalogConfig, log logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewConfigurationError("catalog api key is required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.NewConfigurationError("catalog base url is required")
	}

	return &Client{
		cfg:  cfg,
		http: httpclient.New(cfg.GetTimeout()),
		logger: log.With(map[string]interface{}{
			"component": "catalog-client",
		}),
	}, nil
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	GenreIDs    []int   `json:"genre_ids"`
}

// SearchMovie looks a title up in the catalog and returns the best match, or
// nil when the catalog has no record of it. A nil movie with a nil error is a
// legitimate miss, not a failure.
func (c *Client) SearchMovie(ctx context.Context, title string) (*models.VerifiedMovie, error) {
	endpoint := fmt.Sprintf("%s/search/movie?api_key=%s&language=%s&query=%s",
		c.cfg.BaseURL,
		url.QueryEscape(c.cfg.APIKey),
		url.QueryEscape(c.cfg.Language),
		url.QueryEscape(title),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.NewTransportError("catalog", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		svcErr := errors.NewUpstreamStatusError("catalog", resp.StatusCode)
		if resp.StatusCode >= 500 {
			svcErr.Category = errors.CategoryCatalogUnavailable
		}
		return nil, svcErr
	}

	var search searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&search); err != nil {
		return nil, errors.NewTransportError("catalog", fmt.Errorf("decode catalog response: %w", err))
	}

	if len(search.Results) == 0 {
		return nil, nil
	}

	return c.toVerifiedMovie(search.Results[0]), nil
}

// toVerifiedMovie enriches a raw catalog record, substituting defaults for
// missing fields so callers always see a complete movie.
func (c *Client) toVerifiedMovie(r searchResult) *models.VerifiedMovie {
	year := models.UnknownYear
	if len(r.ReleaseDate) >= 4 {
		year = r.ReleaseDate[:4]
	}

	overview := strings.TrimSpace(r.Overview)
	if overview == "" {
		overview = models.DefaultOverview
	}

	posterURL := ""
	if r.PosterPath != "" {
		posterURL = c.cfg.ImageBaseURL + r.PosterPath
	}

	return &models.VerifiedMovie{
		ID:          r.ID,
		Title:       r.Title,
		PosterURL:   posterURL,
		Overview:    overview,
		ReleaseYear: year,
		Genres:      GenreNames(r.GenreIDs),
		Rating:      r.VoteAverage,
	}
}
