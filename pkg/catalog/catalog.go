package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultData []byte

var ErrInvalidCatalog = errors.New("invalid catalog")

// Tab identifies a section of the interface.
type Tab string

const (
	TabSetup     Tab = "setup"
	TabSources   Tab = "sources"
	TabActions   Tab = "actions"
	TabAI        Tab = "ai"
	TabResources Tab = "resources"
)

// ParseTab maps a user-supplied value onto a known tab. Unknown values select TabSetup.
func ParseTab(s string) Tab {
	switch t := Tab(strings.ToLower(strings.TrimSpace(s))); t {
	case TabSetup, TabSources, TabActions, TabAI, TabResources:
		return t
	default:
		return TabSetup
	}
}

// SourceType classifies a package source.
type SourceType string

const (
	SourceOfficial  SourceType = "official"
	SourceCommunity SourceType = "community"
)

type TabInfo struct {
	ID    Tab    `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

type SetupStep struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Command     string `yaml:"command" json:"command"`
	Description string `yaml:"description" json:"description"`
}

type PackageSource struct {
	Name        string     `yaml:"name" json:"name"`
	URL         string     `yaml:"url" json:"url"`
	Description string     `yaml:"description" json:"description"`
	Type        SourceType `yaml:"type" json:"type"`
}

type WorkflowTemplate struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Content     string `yaml:"content" json:"content"`
}

type Resource struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	URL         string `yaml:"url" json:"url"`
}

// RepoFix is the mirror-selection hint shown under the package sources.
type RepoFix struct {
	Command     string `yaml:"command" json:"command"`
	Description string `yaml:"description" json:"description"`
	Tip         string `yaml:"tip" json:"tip"`
}

type Note struct {
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"`
}

// Catalog is the full set of static reference tables.
type Catalog struct {
	Tabs           []TabInfo          `yaml:"tabs" json:"tabs"`
	SetupSteps     []SetupStep        `yaml:"setup_steps" json:"setup_steps"`
	PackageSources []PackageSource    `yaml:"package_sources" json:"package_sources"`
	RepoFix        RepoFix            `yaml:"repo_fix" json:"repo_fix"`
	Workflows      []WorkflowTemplate `yaml:"workflows" json:"workflows"`
	Resources      []Resource         `yaml:"resources" json:"resources"`
	Suggestions    []string           `yaml:"suggestions" json:"suggestions"`
	Notes          []Note             `yaml:"notes" json:"notes"`
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(defaultData)
})

// Default returns a copy of the embedded catalog.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		// The embedded file is covered by tests; reaching this is a build defect.
		panic(fmt.Sprintf("catalog: embedded data: %v", err))
	}
	return c.Clone()
}

// Validate checks required fields and uniqueness of keys.
func (c *Catalog) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	check := func(kind, key string) {
		if strings.TrimSpace(key) == "" {
			errs = append(errs, fmt.Errorf("%s: missing key", kind))
			return
		}
		id := kind + "/" + key
		if seen[id] {
			errs = append(errs, fmt.Errorf("%s: duplicate %q", kind, key))
		}
		seen[id] = true
	}

	for _, s := range c.SetupSteps {
		check("setup step", s.ID)
		if s.Command == "" {
			errs = append(errs, fmt.Errorf("setup step %q: missing command", s.ID))
		}
	}
	for _, s := range c.PackageSources {
		check("package source", s.Name)
		if s.Type != SourceOfficial && s.Type != SourceCommunity {
			errs = append(errs, fmt.Errorf("package source %q: unknown type %q", s.Name, s.Type))
		}
	}
	for _, w := range c.Workflows {
		check("workflow", w.Name)
		if w.Content == "" {
			errs = append(errs, fmt.Errorf("workflow %q: missing content", w.Name))
		}
	}
	for _, r := range c.Resources {
		check("resource", r.Title)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}
	return nil
}

// Clone returns a deep copy.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{
		Tabs:           append([]TabInfo(nil), c.Tabs...),
		SetupSteps:     append([]SetupStep(nil), c.SetupSteps...),
		PackageSources: append([]PackageSource(nil), c.PackageSources...),
		RepoFix:        c.RepoFix,
		Workflows:      append([]WorkflowTemplate(nil), c.Workflows...),
		Resources:      append([]Resource(nil), c.Resources...),
		Suggestions:    append([]string(nil), c.Suggestions...),
		Notes:          append([]Note(nil), c.Notes...),
	}
	return out
}

// Merge returns a new catalog with the entries of overlay added to c.
// Entries with the same key (step ID, source name, workflow name, resource title)
// replace the base entry in place; new entries are appended.
func (c *Catalog) Merge(overlay *Catalog) *Catalog {
	out := c.Clone()
	if overlay == nil {
		return out
	}

	out.SetupSteps = mergeBy(out.SetupSteps, overlay.SetupSteps, func(s SetupStep) string { return s.ID })
	out.PackageSources = mergeBy(out.PackageSources, overlay.PackageSources, func(s PackageSource) string { return s.Name })
	out.Workflows = mergeBy(out.Workflows, overlay.Workflows, func(w WorkflowTemplate) string { return w.Name })
	out.Resources = mergeBy(out.Resources, overlay.Resources, func(r Resource) string { return r.Title })
	out.Suggestions = mergeBy(out.Suggestions, overlay.Suggestions, func(s string) string { return s })
	out.Notes = mergeBy(out.Notes, overlay.Notes, func(n Note) string { return n.Title })
	if overlay.RepoFix.Command != "" {
		out.RepoFix = overlay.RepoFix
	}
	return out
}

func mergeBy[T any](base, extra []T, key func(T) string) []T {
	index := make(map[string]int, len(base))
	for i, item := range base {
		index[key(item)] = i
	}
	for _, item := range extra {
		if i, ok := index[key(item)]; ok {
			base[i] = item
			continue
		}
		index[key(item)] = len(base)
		base = append(base, item)
	}
	return base
}

// Workflow looks up a template by name, case-insensitively.
func (c *Catalog) Workflow(name string) (WorkflowTemplate, bool) {
	for _, w := range c.Workflows {
		if strings.EqualFold(w.Name, strings.TrimSpace(name)) {
			return w, true
		}
	}
	return WorkflowTemplate{}, false
}

// DefaultWorkflow returns the first template, which the interface selects initially.
func (c *Catalog) DefaultWorkflow() (WorkflowTemplate, bool) {
	if len(c.Workflows) == 0 {
		return WorkflowTemplate{}, false
	}
	return c.Workflows[0], true
}

// TabLabel returns the display label for a tab.
func (c *Catalog) TabLabel(t Tab) string {
	for _, info := range c.Tabs {
		if info.ID == t {
			return info.Label
		}
	}
	return string(t)
}
