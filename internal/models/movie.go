package models

// VerifiedMovie is a movie whose existence was confirmed against the catalog
// (or curated offline). Created once per successful lookup, immutable after.
type VerifiedMovie struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	PosterURL   string   `json:"posterUrl,omitempty"`
	Overview    string   `json:"overview"`
	ReleaseYear string   `json:"releaseYear"`
	Genres      []string `json:"genres"`
	Rating      float64  `json:"rating"`
}

// UnknownYear is used when the catalog record carries no parseable date.
const UnknownYear = "Unknown"

// DefaultOverview is used when the catalog record carries no synopsis.
const DefaultOverview = "Sinopsis no disponible."
