package catalog

// genreNames maps TMDB genre identifiers to their Spanish display names.
var genreNames = map[int]string{
	28:    "Acción",
	12:    "Aventura",
	16:    "Animación",
	35:    "Comedia",
	80:    "Crimen",
	99:    "Documental",
	18:    "Drama",
	10751: "Familia",
	14:    "Fantasía",
	36:    "Historia",
	27:    "Terror",
	10402: "Música",
	9648:  "Misterio",
	10749: "Romance",
	878:   "Ciencia ficción",
	10770: "Película de TV",
	53:    "Suspense",
	10752: "Bélica",
	37:    "Western",
}

// GenreNames resolves catalog genre ids to Spanish names, skipping unknown
// ids.
func GenreNames(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := genreNames[id]; ok {
			names = append(names, name)
		}
	}
	return names
}
