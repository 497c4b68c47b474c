package loam

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/amigurumi/pkg/domain"
	"github.com/aretw0/amigurumi/pkg/ports"
	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"gopkg.in/yaml.v3"
)

// Library adapts a Loam vault of Markdown documents to ports.PatternLibrary.
// Every pattern is one "<key>.md" file: YAML frontmatter with the full result,
// followed by the pattern as a Markdown list.
type Library struct {
	dir   string
	repo  core.Repository
	typed *loam.TypedRepository[PatternMetadata]
	now   func() time.Time
}

// Open initializes (or reuses) a Loam vault at dir.
func Open(dir string) (*Library, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create library directory: %w", err)
	}

	// Versioning and the dev-run sandbox are off: the vault is a plain folder
	// of Markdown files the user owns.
	repo, err := loam.Init(absPath,
		loam.WithVersioning(false),
		loam.WithForceTemp(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(absPath, repo), nil
}

// New wraps an already initialized repository rooted at dir.
func New(dir string, repo core.Repository) *Library {
	return &Library{
		dir:   dir,
		repo:  repo,
		typed: loam.NewTypedRepository[PatternMetadata](repo),
		now:   time.Now,
	}
}

// DocumentID returns the ID a result is stored under. Dots in custom stitch
// dimensions are replaced so the ID never looks like it has an extension.
func DocumentID(r *domain.Result) string {
	return strings.ReplaceAll(r.Request.Key(), ".", "_")
}

// Save writes the result, overwriting an earlier save of the same request.
func (l *Library) Save(ctx context.Context, r *domain.Result) (string, error) {
	id := DocumentID(r)
	meta := newMetadata(id, r, l.now().UTC().Format(time.RFC3339))

	front, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(front)
	b.WriteString("---\n")
	b.WriteString(markdown(r))

	if err := l.repo.Save(ctx, core.Document{ID: id + ".md", Content: b.String()}); err != nil {
		return "", fmt.Errorf("loam save failed for %s: %w", id, err)
	}
	return id, nil
}

// Get reads a saved pattern by ID (with or without the .md extension).
func (l *Library) Get(ctx context.Context, id string) (*domain.Result, error) {
	id = trimExtension(id)
	if id == "" || strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return nil, fmt.Errorf("%w: %q", domain.ErrPatternNotFound, id)
	}
	if _, err := os.Stat(filepath.Join(l.dir, id+".md")); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPatternNotFound, id)
		}
		return nil, err
	}

	doc, err := l.typed.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	return doc.Data.result()
}

// List returns the saved patterns sorted by ID.
func (l *Library) List(ctx context.Context) ([]ports.LibraryEntry, error) {
	docs, err := l.typed.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	entries := make([]ports.LibraryEntry, 0, len(docs))
	for _, doc := range docs {
		id := doc.Data.ID
		if id == "" {
			id = trimExtension(doc.ID)
		}
		entries = append(entries, ports.LibraryEntry{
			ID:            id,
			Title:         doc.Data.Title,
			Circumference: doc.Data.Circumference,
			Stitch:        doc.Data.Stitch,
			Joined:        doc.Data.Joined,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func markdown(r *domain.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Pattern.Title.Abbrev)
	for i, line := range r.Pattern.Lines(domain.ModeAbbrev) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, line)
	}
	return b.String()
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
