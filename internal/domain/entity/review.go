package entity

import "time"

// Authored holds the fields shared by Review and Comment. PubDate is
// immutable after creation; listings are ordered by it.
type Authored struct {
	Text           string
	AuthorID       string
	AuthorUsername string
	PubDate        time.Time
}

// Review scores a title. At most one review per (title, author); the
// database unique constraint is the authoritative arbiter.
type Review struct {
	Authored
	ID        int64
	TitleID   int64
	TitleName string
	Score     int
}

type Comment struct {
	Authored
	ID       int64
	ReviewID int64
}
