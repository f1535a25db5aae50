package models

import (
	"strconv"
	"time"
)

// FavoriteEntry снимок элемента каталога в списке избранного пользователя.
// Уникален по паре (владелец, Key()); владелец задается ключом хранилища, а не полем.
type FavoriteEntry struct {
	AddedAt      time.Time `json:"added_at"`
	MediaType    MediaType `json:"media_type"`
	Title        string    `json:"title"`
	PosterPath   string    `json:"poster_path"`
	BackdropPath string    `json:"backdrop_path"`
	Overview     string    `json:"overview"`
	ReleaseDate  string    `json:"release_date"`
	VoteAverage  float64   `json:"vote_average"`
	ID           int       `json:"id"`
}

// FavoriteFromMovie делает снимок фильма для избранного
func FavoriteFromMovie(m *Movie) FavoriteEntry {
	return FavoriteEntry{
		ID:           m.ID,
		MediaType:    MediaTypeMovie,
		Title:        m.Title,
		PosterPath:   m.PosterPath,
		BackdropPath: m.BackdropPath,
		Overview:     m.Overview,
		ReleaseDate:  m.ReleaseDate,
		VoteAverage:  m.VoteAverage,
	}
}

// FavoriteFromTVShow делает снимок сериала для избранного
func FavoriteFromTVShow(s *TVShow) FavoriteEntry {
	return FavoriteEntry{
		ID:           s.ID,
		MediaType:    MediaTypeTV,
		Title:        s.Name,
		PosterPath:   s.PosterPath,
		BackdropPath: s.BackdropPath,
		Overview:     s.Overview,
		ReleaseDate:  s.FirstAirDate,
		VoteAverage:  s.VoteAverage,
	}
}

// FavoriteKey ключ элемента избранного: TMDB id фильма и сериала могут совпадать,
// поэтому тип входит в ключ ("movie:550", "tv:1399")
func FavoriteKey(mediaType MediaType, id int) string {
	return string(mediaType) + ":" + strconv.Itoa(id)
}

// Key возвращает ключ записи
func (e *FavoriteEntry) Key() string {
	return FavoriteKey(e.MediaType, e.ID)
}
