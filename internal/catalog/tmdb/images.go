package tmdb

// ImageBaseURL адрес CDN изображений TMDB
const ImageBaseURL = "https://image.tmdb.org/t/p"

// PlaceholderImage локальная заглушка для элементов без картинки
const PlaceholderImage = "/images/placeholder.svg"

const (
	DefaultPosterSize   = "w500"
	DefaultBackdropSize = "w1280"
)

var (
	posterSizes   = map[string]bool{"w92": true, "w154": true, "w185": true, "w342": true, "w500": true, "w780": true, "original": true}
	backdropSizes = map[string]bool{"w300": true, "w780": true, "w1280": true, "original": true}
)

// PosterURL собирает URL постера; неизвестный размер заменяется на w500
func PosterURL(path, size string) string {
	return imageURL(path, size, posterSizes, DefaultPosterSize)
}

// BackdropURL собирает URL фонового изображения; неизвестный размер заменяется на w1280
func BackdropURL(path, size string) string {
	return imageURL(path, size, backdropSizes, DefaultBackdropSize)
}

func imageURL(path, size string, allowed map[string]bool, fallback string) string {
	if path == "" {
		return PlaceholderImage
	}
	if !allowed[size] {
		size = fallback
	}
	if path[0] != '/' {
		path = "/" + path
	}
	return ImageBaseURL + "/" + size + path
}
