package cli

import (
	"fmt"
	"strings"

	"github.com/iudanet/filmvault/internal/models"
)

// year возвращает год из даты TMDB (YYYY-MM-DD)
func year(date string) string {
	if len(date) < 4 {
		return "----"
	}
	return date[:4]
}

func rating(v float64) string {
	if v <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", v)
}

func genres(gs []models.Genre) string {
	names := make([]string, 0, len(gs))
	for _, g := range gs {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

func pageFooter(page, total int) string {
	if total <= 0 {
		return ""
	}
	return fmt.Sprintf("Page %d of %d", page, total)
}
