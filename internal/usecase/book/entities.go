package book

import "time"

type CreateBookInput struct {
	Title string `json:"title"`
	ISBN  string `json:"isbn"`
}

type BookDTO struct {
	BookID    string    `json:"book_id"`
	Title     string    `json:"title"`
	ISBN      string    `json:"isbn,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
