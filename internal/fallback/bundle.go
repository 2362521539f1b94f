package fallback

import (
	"github.com/ibanezbetes/trinity-sub010/internal/common/errors"
	"github.com/ibanezbetes/trinity-sub010/internal/models"
)

// staticMovies is the curated offline catalog served when every upstream is
// down. Ten well-known titles with complete, pre-verified data.
var staticMovies = []models.VerifiedMovie{
	{
		ID:          550,
		Title:       "El Club de la Lucha",
		PosterURL:   "https://image.tmdb.org/t/p/w500/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
		Overview:    "Un oficinista insomne y un carismático vendedor de jabón fundan un club clandestino de lucha que se les va de las manos.",
		ReleaseYear: "1999",
		Genres:      []string{"Drama"},
		Rating:      8.4,
	},
	{
		ID:          13,
		Title:       "Forrest Gump",
		PosterURL:   "https://image.tmdb.org/t/p/w500/arw2vcBveWOVZr6pxd9XTd1TdQa.jpg",
		Overview:    "La extraordinaria vida de un hombre sencillo que, sin proponérselo, protagoniza momentos clave de la historia de Estados Unidos.",
		ReleaseYear: "1994",
		Genres:      []string{"Comedia", "Drama", "Romance"},
		Rating:      8.5,
	},
	{
		ID:          278,
		Title:       "Cadena Perpetua",
		PosterURL:   "https://image.tmdb.org/t/p/w500/q6y0Go1tsGEsmtFryDOJo3dEmqu.jpg",
		Overview:    "Condenado por un crimen que no cometió, un banquero teje durante décadas una amistad y un plan dentro de la prisión de Shawshank.",
		ReleaseYear: "1994",
		Genres:      []string{"Drama", "Crimen"},
		Rating:      8.7,
	},
	{
		ID:          238,
		Title:       "El Padrino",
		PosterURL:   "https://image.tmdb.org/t/p/w500/3bhkrj58Vtu7enYsRolD1fZdja1.jpg",
		Overview:    "El envejecido patriarca de una dinastía del crimen organizado transfiere el control de su imperio a su reticente hijo menor.",
		ReleaseYear: "1972",
		Genres:      []string{"Drama", "Crimen"},
		Rating:      8.7,
	},
	{
		ID:          424,
		Title:       "La Lista de Schindler",
		PosterURL:   "https://image.tmdb.org/t/p/w500/sF1U4EUQS8YHUYjNl3pMGNIQyr0.jpg",
		Overview:    "La historia real del empresario que salvó a más de mil judíos polacos durante el Holocausto empleándolos en sus fábricas.",
		ReleaseYear: "1993",
		Genres:      []string{"Drama", "Historia", "Bélica"},
		Rating:      8.6,
	},
	{
		ID:          354912,
		Title:       "Coco",
		PosterURL:   "https://image.tmdb.org/t/p/w500/eKi8dIrr8voobbaGzDpe8w0PVbC.jpg",
		Overview:    "Un niño que sueña con ser músico viaja a la Tierra de los Muertos para descubrir la verdadera historia de su familia.",
		ReleaseYear: "2017",
		Genres:      []string{"Animación", "Familia", "Comedia"},
		Rating:      8.2,
	},
	{
		ID:          1417,
		Title:       "El Laberinto del Fauno",
		PosterURL:   "https://image.tmdb.org/t/p/w500/67ygsnTbobyOqMdCIBztdqobdUM.jpg",
		Overview:    "En la España de la posguerra, una niña escapa de la brutalidad de su padrastro a través de un laberinto habitado por criaturas fantásticas.",
		ReleaseYear: "2006",
		Genres:      []string{"Fantasía", "Drama", "Bélica", "Cine español"},
		Rating:      7.7,
	},
	{
		ID:          76341,
		Title:       "Mad Max: Furia en la Carretera",
		PosterURL:   "https://image.tmdb.org/t/p/w500/8tZYtuWezp8JbcsvHYO0O46tFbo.jpg",
		Overview:    "En un desierto postapocalíptico, Max se une a la imperatora Furiosa en una huida a toda velocidad de un señor de la guerra tiránico.",
		ReleaseYear: "2015",
		Genres:      []string{"Acción", "Aventura", "Ciencia ficción"},
		Rating:      7.6,
	},
	{
		ID:          25376,
		Title:       "El Secreto de Sus Ojos",
		PosterURL:   "https://image.tmdb.org/t/p/w500/hWYGRNvMcYwtfQUCflJohnywRwM.jpg",
		Overview:    "Un oficial judicial retirado escribe una novela sobre un caso de asesinato sin resolver que lo ha perseguido durante veinticinco años.",
		ReleaseYear: "2009",
		Genres:      []string{"Drama", "Crimen", "Romance"},
		Rating:      8.0,
	},
	{
		ID:          120467,
		Title:       "El Gran Hotel Budapest",
		PosterURL:   "https://image.tmdb.org/t/p/w500/eWdyYQreja6JGCzqHWXpWHDrrPo.jpg",
		Overview:    "Las aventuras de un legendario conserje y su botones de confianza en un famoso hotel europeo de entreguerras.",
		ReleaseYear: "2014",
		Genres:      []string{"Comedia", "Drama"},
		Rating:      8.1,
	},
}

// extendedMovies widens the curated pool for genre-targeted fallbacks,
// with special weight on Spanish cinema.
var extendedMovies = []models.VerifiedMovie{
	{
		ID:          252171,
		Title:       "Ocho Apellidos Vascos",
		PosterURL:   "https://image.tmdb.org/t/p/w500/sMz0Hffeh0bbSNtGW5BE1bCsAF3.jpg",
		Overview:    "Un sevillano de pura cepa se hace pasar por vasco para conquistar a una chica de un pueblo de Euskadi.",
		ReleaseYear: "2014",
		Genres:      []string{"Comedia", "Romance", "Cine español"},
		Rating:      6.5,
	},
	{
		ID:          485184,
		Title:       "Campeones",
		PosterURL:   "https://image.tmdb.org/t/p/w500/t0P9bzcm3HMrRBLkzeLzzSGbr7i.jpg",
		Overview:    "Un entrenador de baloncesto profesional es condenado a entrenar a un equipo de personas con discapacidad intelectual.",
		ReleaseYear: "2018",
		Genres:      []string{"Comedia", "Drama", "Cine español"},
		Rating:      7.1,
	},
	{
		ID:          474395,
		Title:       "Toc Toc",
		PosterURL:   "https://image.tmdb.org/t/p/w500/oRrGCZ3msaUnenYawjQmRcSNuwM.jpg",
		Overview:    "Varios pacientes con trastornos obsesivo-compulsivos coinciden en la consulta de un reputado psicólogo que no llega a la cita.",
		ReleaseYear: "2017",
		Genres:      []string{"Comedia", "Cine español"},
		Rating:      6.7,
	},
	{
		ID:          229297,
		Title:       "La Gran Familia Española",
		PosterURL:   "https://image.tmdb.org/t/p/w500/yR2fjqnzrmOsOlyQS0bOxyCYbJH.jpg",
		Overview:    "Durante la final del Mundial de fútbol, una boda reúne a cinco hermanos y saca a la luz los secretos de toda la familia.",
		ReleaseYear: "2013",
		Genres:      []string{"Comedia", "Drama", "Cine español"},
		Rating:      6.0,
	},
	{
		ID:          157336,
		Title:       "Interstellar",
		PosterURL:   "https://image.tmdb.org/t/p/w500/gEU2QniE6E77NI6lCU6MxlNBvIx.jpg",
		Overview:    "Un grupo de exploradores atraviesa un agujero de gusano en busca de un nuevo hogar para la humanidad.",
		ReleaseYear: "2014",
		Genres:      []string{"Ciencia ficción", "Drama", "Aventura"},
		Rating:      8.4,
	},
	{
		ID:          27205,
		Title:       "Origen",
		PosterURL:   "https://image.tmdb.org/t/p/w500/9e3Dz7aCANy5aRUQF745IlNloJ1.jpg",
		Overview:    "Un ladrón especializado en robar secretos del subconsciente recibe el encargo inverso: implantar una idea en la mente de un heredero.",
		ReleaseYear: "2010",
		Genres:      []string{"Acción", "Ciencia ficción", "Aventura"},
		Rating:      8.4,
	},
	{
		ID:          19404,
		Title:       "Dilwale Dulhania Le Jayenge",
		PosterURL:   "https://image.tmdb.org/t/p/w500/lfRkUr7DYdHldAqi3PwdQGBRBPM.jpg",
		Overview:    "Dos jóvenes se enamoran durante un viaje por Europa y luchan contra las tradiciones familiares para estar juntos.",
		ReleaseYear: "1995",
		Genres:      []string{"Comedia", "Drama", "Romance"},
		Rating:      8.6,
	},
	{
		ID:          680,
		Title:       "Pulp Fiction",
		PosterURL:   "https://image.tmdb.org/t/p/w500/d5iIlFn5s0ImszYzBPb8JPIfbXD.jpg",
		Overview:    "Las vidas de dos sicarios, un boxeador y la mujer de un gánster se entrelazan en cuatro historias de violencia y redención.",
		ReleaseYear: "1994",
		Genres:      []string{"Suspense", "Crimen"},
		Rating:      8.5,
	},
}

// personaMessages carries the in-character explanation for each failure
// category. Unknown categories fall back to the network message.
var personaMessages = map[errors.FailureCategory]string{
	errors.CategoryModelUnavailable:   "¡Ay, cariño! Mi cerebro cinéfilo está echándose la siesta, pero tranquilo, que estas películas me las sé de memoria.",
	errors.CategoryCatalogUnavailable: "Mi catálogo de películas está un poco perezoso ahora mismo, así que te recomiendo de mi colección personal.",
	errors.CategoryNetworkError:       "Parece que hay problemillas de conexión, pero no te preocupes, que para recomendarte cine no necesito internet.",
	errors.CategoryRateLimited:        "Has alcanzado el límite de consultas por minuto. Dame un respirito y mientras tanto, apunta estas joyas.",
	errors.CategoryTimeout:            "Uy, esto está tardando más de la cuenta. No te hago esperar más: aquí van unas recomendaciones de las buenas.",
	errors.CategoryGeneralError:       "Algo se me ha cruzado por dentro, pero una buena película lo arregla todo. Mira lo que te traigo.",
}
