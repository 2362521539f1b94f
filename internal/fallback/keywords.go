package fallback

import "strings"

// RegionalGenre tags curated Spanish productions. It is appended after the
// table genres when the query signals interest in Spanish cinema.
const RegionalGenre = "Cine español"

// genreKeyword binds one catalog genre to the query stems that signal it.
// Stems, not full words, so "comedias" and "romántica" match too.
type genreKeyword struct {
	genre string
	stems []string
}

// genreKeywords is ordered; detection walks it top to bottom so detected
// genres always come out in a stable order regardless of query wording.
var genreKeywords = []genreKeyword{
	{genre: "Comedia", stems: []string{"comedia", "comedy", "divertid", "gracios", "reír", "reir", "risa", "humor"}},
	{genre: "Drama", stems: []string{"drama", "dramátic", "dramatic", "llorar", "emotiv", "triste"}},
	{genre: "Acción", stems: []string{"acción", "accion", "action", "adrenalina", "pelea", "explosion"}},
	{genre: "Romance", stems: []string{"romántic", "romantic", "romance", "amor", "love"}},
	{genre: "Terror", stems: []string{"terror", "horror", "miedo", "susto"}},
	{genre: "Ciencia ficción", stems: []string{"ciencia ficción", "ciencia ficcion", "sci-fi", "scifi", "futurist", "espacial", "robot"}},
	{genre: "Animación", stems: []string{"animación", "animacion", "animad", "dibujos", "pixar"}},
	{genre: "Suspense", stems: []string{"suspense", "thriller", "intriga", "misterio"}},
	{genre: "Aventura", stems: []string{"aventura", "adventure"}},
	{genre: "Fantasía", stems: []string{"fantasía", "fantasia", "fantasy", "magia"}},
}

// regionalStems signal interest in Spanish cinema specifically.
var regionalStems = []string{
	"cine español",
	"película española",
	"pelicula española",
	"películas españolas",
	"peliculas españolas",
	"española",
	"español",
	"de españa",
}

// DetectGenres extracts genre interests from the raw query text. Table
// genres come first in table order; the regional signal, when present, is
// appended last. Detection is deterministic for a given query.
func DetectGenres(query string) []string {
	q := strings.ToLower(query)

	var detected []string
	for _, entry := range genreKeywords {
		for _, stem := range entry.stems {
			if strings.Contains(q, stem) {
				detected = append(detected, entry.genre)
				break
			}
		}
	}

	for _, stem := range regionalStems {
		if strings.Contains(q, stem) {
			detected = append(detected, RegionalGenre)
			break
		}
	}

	return detected
}
