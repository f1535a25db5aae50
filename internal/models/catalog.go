package models

// MediaType тип элемента каталога
type MediaType string

const (
	MediaTypeMovie MediaType = "movie" // фильм
	MediaTypeTV    MediaType = "tv"    // сериал
)

// Valid проверяет, что тип известен
func (t MediaType) Valid() bool {
	return t == MediaTypeMovie || t == MediaTypeTV
}

// Genre жанр TMDB
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductionCompany студия-производитель
type ProductionCompany struct {
	Name          string `json:"name"`
	OriginCountry string `json:"origin_country"`
	ID            int    `json:"id"`
}

// Movie элемент списка фильмов (popular, search)
type Movie struct {
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	Genres       []Genre `json:"genres,omitempty"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	ID           int     `json:"id"`
	VoteCount    int     `json:"vote_count"`
	Runtime      int     `json:"runtime,omitempty"`
}

// MovieDetails полная карточка фильма
type MovieDetails struct {
	Tagline             string              `json:"tagline"`
	Status              string              `json:"status"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
	Movie
	Budget  int64 `json:"budget"`
	Revenue int64 `json:"revenue"`
}

// TVShow элемент списка сериалов
type TVShow struct {
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	FirstAirDate string  `json:"first_air_date"`
	Genres       []Genre `json:"genres,omitempty"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	ID           int     `json:"id"`
	VoteCount    int     `json:"vote_count"`
}

// TVShowDetails полная карточка сериала
type TVShowDetails struct {
	Status              string              `json:"status"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
	TVShow
	NumberOfSeasons  int `json:"number_of_seasons"`
	NumberOfEpisodes int `json:"number_of_episodes"`
}

// MoviePage страница результатов по фильмам
type MoviePage struct {
	Results      []Movie `json:"results"`
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// HasMore сообщает, есть ли следующая страница
func (p *MoviePage) HasMore() bool {
	return p.Page < p.TotalPages
}

// TVShowPage страница результатов по сериалам
type TVShowPage struct {
	Results      []TVShow `json:"results"`
	Page         int      `json:"page"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// HasMore сообщает, есть ли следующая страница
func (p *TVShowPage) HasMore() bool {
	return p.Page < p.TotalPages
}
