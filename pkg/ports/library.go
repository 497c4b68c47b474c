package ports

import (
	"context"

	"github.com/aretw0/amigurumi/pkg/domain"
)

// LibraryEntry is the summary of a saved pattern.
type LibraryEntry struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Circumference int    `json:"circumference"`
	Stitch        string `json:"stitch"`
	Joined        bool   `json:"joined"`
}

// PatternLibrary persists generated patterns as documents a person can read.
type PatternLibrary interface {
	// Save writes the result and returns the document ID it was stored under.
	Save(ctx context.Context, result *domain.Result) (string, error)

	// Get reads a saved pattern back.
	// Returns domain.ErrPatternNotFound if the document does not exist.
	Get(ctx context.Context, id string) (*domain.Result, error)

	// List returns every saved pattern.
	List(ctx context.Context) ([]LibraryEntry, error)
}
