// Package registry holds the static catalog of project instruction
// templates and materializes them into target projects.
//
// The catalog is a two-level mapping: category id → ordered template
// entries. It is defined at process start, never mutated, and looked up by
// (category, template) id pair during a single CLI invocation. Template
// documents ship inside the binary via go:embed; the registry reads them
// through an fs.FS so tests can substitute a directory on disk.
package registry

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/shipkit/internal/errors"
)

//go:embed templates
var embeddedTemplates embed.FS

// DestinationRelPath is where materialized instructions land, relative to
// the destination root.
var DestinationRelPath = filepath.Join(".github", "instructions.md")

// Entry describes one template within a category.
type Entry struct {
	// ID is the lookup key (e.g., "react").
	ID string
	// Name is the human-readable display name.
	Name string
	// Description explains what the template is for.
	Description string
	// Source is the document path relative to the registry filesystem.
	Source string
}

// Category groups related templates under a lookup key (e.g., "fe").
type Category struct {
	ID          string
	Name        string
	Description string
	Templates   []Entry
}

// Registry resolves (category, template) pairs against a fixed catalog.
type Registry struct {
	fsys       fs.FS
	categories []Category
}

// New creates a registry over the given filesystem and catalog.
func New(fsys fs.FS, categories []Category) *Registry {
	return &Registry{fsys: fsys, categories: categories}
}

// Default returns the built-in registry backed by the embedded template
// documents.
func Default() *Registry {
	return New(embeddedTemplates, defaultCatalog())
}

// defaultCatalog is the fixed shipkit template catalog.
func defaultCatalog() []Category {
	return []Category{
		{
			ID:          "fe",
			Name:        "Frontend",
			Description: "Frontend project instructions",
			Templates: []Entry{
				{
					ID:          "react",
					Name:        "React",
					Description: "Instructions for React single-page applications",
					Source:      "templates/fe/react.md",
				},
				{
					ID:          "vanilla",
					Name:        "Vanilla JS",
					Description: "Instructions for framework-free frontend projects",
					Source:      "templates/fe/vanilla.md",
				},
			},
		},
		{
			ID:          "be",
			Name:        "Backend",
			Description: "Backend project instructions",
			Templates: []Entry{
				{
					ID:          "node",
					Name:        "Node.js",
					Description: "Instructions for Node.js services",
					Source:      "templates/be/node.md",
				},
				{
					ID:          "python",
					Name:        "Python",
					Description: "Instructions for Python services",
					Source:      "templates/be/python.md",
				},
			},
		},
		{
			ID:          "github",
			Name:        "GitHub",
			Description: "CI/CD and repository automation instructions",
			Templates: []Entry{
				{
					ID:          "workflows",
					Name:        "GitHub Workflows",
					Description: "Instructions for GitHub Actions workflow authoring",
					Source:      "templates/github/workflows.md",
				},
			},
		},
	}
}

// Categories returns the catalog's category ids in definition order.
func (r *Registry) Categories() []string {
	ids := make([]string, len(r.categories))
	for i, c := range r.categories {
		ids[i] = c.ID
	}
	return ids
}

// Category returns the category with the given id, or nil if unknown.
func (r *Registry) Category(categoryID string) *Category {
	for i := range r.categories {
		if r.categories[i].ID == categoryID {
			return &r.categories[i]
		}
	}
	return nil
}

// Templates lists template ids within categoryID. Returns NotFoundError
// when the category is unknown.
func (r *Registry) Templates(categoryID string) ([]string, error) {
	cat := r.Category(categoryID)
	if cat == nil {
		return nil, errors.NewNotFoundError("category", categoryID)
	}

	ids := make([]string, len(cat.Templates))
	for i, t := range cat.Templates {
		ids[i] = t.ID
	}
	return ids, nil
}

// AllTemplates lists every entry as a "categoryID/templateID" composite
// string, categories in definition order.
func (r *Registry) AllTemplates() []string {
	var out []string
	for _, c := range r.categories {
		for _, t := range c.Templates {
			out = append(out, c.ID+"/"+t.ID)
		}
	}
	return out
}

// Describe returns the entry for the given pair, or nil (without error)
// when either id is unknown. Used for existence checks.
func (r *Registry) Describe(categoryID, templateID string) *Entry {
	cat := r.Category(categoryID)
	if cat == nil {
		return nil
	}
	for i := range cat.Templates {
		if cat.Templates[i].ID == templateID {
			return &cat.Templates[i]
		}
	}
	return nil
}

// resolve looks up an entry, distinguishing unknown-category from
// unknown-template in the returned NotFoundError.
func (r *Registry) resolve(categoryID, templateID string) (*Entry, error) {
	cat := r.Category(categoryID)
	if cat == nil {
		return nil, errors.NewNotFoundError("category", categoryID)
	}
	for i := range cat.Templates {
		if cat.Templates[i].ID == templateID {
			return &cat.Templates[i], nil
		}
	}
	return nil, errors.NewNotFoundError("template", templateID)
}

// Materialize copies the template document for (categoryID, templateID)
// into destRoot/.github/instructions.md, creating intermediate directories
// and overwriting any existing file. Returns the absolute destination path.
//
// Fails with NotFoundError before touching the filesystem when either id
// is unknown, and with SourceMissingError when the registered document is
// absent from the registry filesystem.
func (r *Registry) Materialize(categoryID, templateID, destRoot string) (string, error) {
	entry, err := r.resolve(categoryID, templateID)
	if err != nil {
		return "", err
	}

	content, err := fs.ReadFile(r.fsys, entry.Source)
	if err != nil {
		return "", &errors.SourceMissingError{Path: entry.Source, Err: err}
	}

	dest := filepath.Join(destRoot, DestinationRelPath)
	absDest, err := filepath.Abs(dest)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(absDest), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(absDest, content, 0o644); err != nil {
		return "", err
	}

	return absDest, nil
}
