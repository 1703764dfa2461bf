package book

import "context"

// Repository is the persistence contract for books.
//
// ListBooks returns one page of books matching the filter plus the total
// match count across all pages.
type Repository interface {
	ListBooks(ctx context.Context, f Filter, limit, offset int) ([]*Book, int, error)
	GetBook(ctx context.Context, id string) (*Book, error)
	CreateBook(ctx context.Context, b *Book) error
	UpdateBook(ctx context.Context, b *Book) error
	DeleteBook(ctx context.Context, id string) error
}
