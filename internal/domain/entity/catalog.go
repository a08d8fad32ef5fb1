package entity

// Category and Genre are flat labeled tags addressed by a unique slug.

type Category struct {
	ID   int64
	Name string
	Slug string
}

type Genre struct {
	ID   int64
	Name string
	Slug string
}

// Title is a cataloged work. Rating is never persisted: it is the mean of
// the related review scores, nil when no reviews exist.
type Title struct {
	ID          int64
	Name        string
	Year        *int
	Description string
	Category    *Category
	Genres      []Genre
	Rating      *float64
}
