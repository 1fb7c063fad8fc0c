package tmdb

import "strings"

const (
	posterSize   = "w500"
	backdropSize = "w1280"
	maxGenres    = 3
)

// MovieDTO is a movie as the catalog API sends it; every field but id and title may be absent
type MovieDTO struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle *string  `json:"original_title"`
	Overview      *string  `json:"overview"`
	PosterPath    *string  `json:"poster_path"`
	BackdropPath  *string  `json:"backdrop_path"`
	ReleaseDate   *string  `json:"release_date"`
	VoteAverage   *float64 `json:"vote_average"`
	VoteCount     *int     `json:"vote_count"`
	Popularity    *float64 `json:"popularity"`
	Adult         *bool    `json:"adult"`
	GenreIDs      []int    `json:"genre_ids"`

	// detail responses carry full genre objects instead of ids
	Genres  []GenreDTO `json:"genres,omitempty"`
	Runtime *int       `json:"runtime,omitempty"`
	Tagline *string    `json:"tagline,omitempty"`
}

type GenreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MoviesResponse is one page of a catalog listing
type MoviesResponse struct {
	Page         int        `json:"page"`
	Results      []MovieDTO `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// Movie is the display form used by the rest of the application
type Movie struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title"`
	Overview      string   `json:"overview"`
	PosterPath    *string  `json:"poster_path,omitempty"`
	BackdropPath  *string  `json:"backdrop_path,omitempty"`
	PosterURL     string   `json:"poster_url"`
	BackdropURL   string   `json:"backdrop_url"`
	ReleaseDate   string   `json:"release_date"`
	ReleaseYear   string   `json:"release_year"`
	VoteAverage   float64  `json:"vote_average"`
	VoteCount     int      `json:"vote_count"`
	Popularity    float64  `json:"popularity"`
	Adult         bool     `json:"adult"`
	GenreIDs      []int    `json:"genre_ids"`
	GenreNames    []string `json:"genre_names"`
	Runtime       int      `json:"runtime,omitempty"`
	Tagline       string   `json:"tagline,omitempty"`
}

type MoviePage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// genreNames maps catalog genre ids to display names
var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// ToMovie maps a transport record to its display form using imageBaseURL for artwork
func (d MovieDTO) ToMovie(imageBaseURL string) Movie {
	m := Movie{
		ID:            d.ID,
		Title:         d.Title,
		OriginalTitle: deref(d.OriginalTitle),
		Overview:      deref(d.Overview),
		PosterPath:    d.PosterPath,
		BackdropPath:  d.BackdropPath,
		ReleaseDate:   deref(d.ReleaseDate),
		VoteAverage:   deref(d.VoteAverage),
		VoteCount:     deref(d.VoteCount),
		Popularity:    deref(d.Popularity),
		Adult:         deref(d.Adult),
		GenreIDs:      d.GenreIDs,
		Runtime:       deref(d.Runtime),
		Tagline:       deref(d.Tagline),
	}
	if m.GenreIDs == nil {
		m.GenreIDs = []int{}
	}
	if len(m.GenreIDs) == 0 && len(d.Genres) > 0 {
		for _, g := range d.Genres {
			m.GenreIDs = append(m.GenreIDs, g.ID)
		}
	}

	m.PosterURL = imageURL(imageBaseURL, posterSize, d.PosterPath)
	m.BackdropURL = imageURL(imageBaseURL, backdropSize, d.BackdropPath)
	if m.BackdropURL == "" {
		m.BackdropURL = m.PosterURL
	}
	m.ReleaseYear = releaseYear(m.ReleaseDate)
	m.GenreNames = genreList(m.GenreIDs, d.Genres)
	return m
}

// ToPage maps a listing response; a missing result list becomes empty
func (r *MoviesResponse) ToPage(imageBaseURL string) *MoviePage {
	page := &MoviePage{
		Page:         r.Page,
		Results:      make([]Movie, 0, len(r.Results)),
		TotalPages:   r.TotalPages,
		TotalResults: r.TotalResults,
	}
	for _, dto := range r.Results {
		page.Results = append(page.Results, dto.ToMovie(imageBaseURL))
	}
	return page
}

// GenreLabel joins the display genre names the way listings show them
func (m Movie) GenreLabel() string {
	return strings.Join(m.GenreNames, ", ")
}

func imageURL(base, size string, path *string) string {
	if path == nil || *path == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + size + *path
}

func releaseYear(date string) string {
	if len(date) < 4 {
		return "N/A"
	}
	return date[:4]
}

func genreList(ids []int, genres []GenreDTO) []string {
	names := make([]string, 0, maxGenres)
	if len(genres) > 0 {
		for _, g := range genres {
			if len(names) == maxGenres {
				break
			}
			names = append(names, g.Name)
		}
		return names
	}
	for _, id := range ids {
		if len(names) == maxGenres {
			break
		}
		if name, ok := genreNames[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
