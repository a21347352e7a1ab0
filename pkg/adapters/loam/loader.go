// Package loam loads catalog overlays from a directory of Markdown files with YAML
// frontmatter, using the Loam document store in read-only mode.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/termuxdev/pkg/catalog"
)

// Loader reads catalog entries from a Loam repository.
type Loader struct {
	Repo *loam.TypedRepository[EntryMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[EntryMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps scalar types consistent across Markdown and YAML files.
	// The catalog is never written back, so the repository is opened read-only.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[EntryMetadata](repo)), nil
}

type entry struct {
	id      string
	meta    EntryMetadata
	content string
}

// Load reads every document and returns them as a catalog overlay.
// Documents are applied in ID order so the result does not depend on directory listing order.
func (l *Loader) Load(ctx context.Context) (*catalog.Catalog, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	// List only carries metadata; bodies come from Get.
	entries := make([]entry, 0, len(docs))
	for _, listed := range docs {
		doc, err := l.Repo.Get(ctx, listed.ID)
		if err != nil {
			return nil, fmt.Errorf("loam get failed for %s: %w", listed.ID, err)
		}
		entries = append(entries, entry{id: doc.ID, meta: doc.Data, content: doc.Content})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	overlay := &catalog.Catalog{}
	for _, e := range entries {
		if err := apply(overlay, e); err != nil {
			return nil, err
		}
	}

	if err := overlay.Validate(); err != nil {
		return nil, fmt.Errorf("content in loam repository: %w", err)
	}
	return overlay, nil
}

func apply(c *catalog.Catalog, e entry) error {
	meta := e.meta
	body := strings.TrimSpace(e.content)
	describe := func() string {
		if meta.Description != "" {
			return meta.Description
		}
		return body
	}

	switch strings.ToLower(strings.TrimSpace(meta.Kind)) {
	case KindStep:
		id := meta.ID
		if id == "" {
			id = trimExtension(e.id)
		}
		c.SetupSteps = append(c.SetupSteps, catalog.SetupStep{
			ID:          id,
			Title:       meta.Title,
			Command:     meta.Command,
			Description: describe(),
		})
	case KindSource:
		sourceType := catalog.SourceType(meta.Type)
		if sourceType == "" {
			sourceType = catalog.SourceCommunity
		}
		c.PackageSources = append(c.PackageSources, catalog.PackageSource{
			Name:        firstNonEmpty(meta.Name, meta.Title),
			URL:         meta.URL,
			Description: describe(),
			Type:        sourceType,
		})
	case KindWorkflow:
		content := stripFence(body)
		if content != "" {
			content += "\n"
		}
		c.Workflows = append(c.Workflows, catalog.WorkflowTemplate{
			Name:        firstNonEmpty(meta.Name, meta.Title),
			Description: meta.Description,
			Content:     content,
		})
	case KindResource:
		c.Resources = append(c.Resources, catalog.Resource{
			Title:       firstNonEmpty(meta.Title, meta.Name),
			Description: describe(),
			URL:         meta.URL,
		})
	case KindSuggestion:
		c.Suggestions = append(c.Suggestions, firstNonEmpty(meta.Title, body))
	case KindNote:
		c.Notes = append(c.Notes, catalog.Note{Title: meta.Title, Body: body})
	default:
		return fmt.Errorf("document %s: unknown kind %q", e.id, meta.Kind)
	}
	return nil
}

// stripFence removes a single surrounding ``` block, keeping its contents.
func stripFence(body string) string {
	if !strings.HasPrefix(body, "```") || !strings.HasSuffix(body, "```") {
		return body
	}
	lines := strings.Split(body, "\n")
	if len(lines) < 2 {
		return body
	}
	return strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func trimExtension(id string) string {
	return strings.TrimSuffix(filepath.Base(id), filepath.Ext(id))
}
