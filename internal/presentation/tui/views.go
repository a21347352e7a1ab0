package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/termuxdev/pkg/catalog"
)

// SetupView lists the setup steps as numbered shell snippets.
func SetupView(c *catalog.Catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.TabLabel(catalog.TabSetup))
	for _, s := range c.SetupSteps {
		fmt.Fprintf(&b, "## %s. %s\n\n", s.ID, s.Title)
		fmt.Fprintf(&b, "```bash\n%s\n```\n\n", s.Command)
		if s.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", s.Description)
		}
	}
	writeNotes(&b, c.Notes)
	return b.String()
}

// SourcesView lists the package repositories and the mirror fix.
func SourcesView(c *catalog.Catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.TabLabel(catalog.TabSources))
	for _, s := range c.PackageSources {
		fmt.Fprintf(&b, "- **%s** (%s)  \n  `%s`  \n  %s\n", s.Name, s.Type, s.URL, s.Description)
	}
	if fix := c.RepoFix; fix.Command != "" {
		b.WriteString("\n## Fixing repository errors\n\n")
		if fix.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", fix.Description)
		}
		fmt.Fprintf(&b, "```bash\n%s\n```\n\n", fix.Command)
		if fix.Tip != "" {
			fmt.Fprintf(&b, "> Tip: %s\n", fix.Tip)
		}
	}
	return b.String()
}

// WorkflowsView lists the available workflow templates by name.
func WorkflowsView(c *catalog.Catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.TabLabel(catalog.TabActions))
	for _, w := range c.Workflows {
		fmt.Fprintf(&b, "- **%s**: %s\n", w.Name, w.Description)
	}
	b.WriteString("\nRun `termuxdev workflows <name>` to print a template.\n")
	return b.String()
}

// WorkflowView shows one template as a YAML block.
func WorkflowView(w catalog.WorkflowTemplate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", w.Name)
	if w.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", w.Description)
	}
	b.WriteString("Save as `.github/workflows/main.yml`:\n\n")
	fmt.Fprintf(&b, "```yaml\n%s\n```\n", strings.TrimRight(w.Content, "\n"))
	return b.String()
}

// ResourcesView lists the documentation links.
func ResourcesView(c *catalog.Catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.TabLabel(catalog.TabResources))
	for _, r := range c.Resources {
		fmt.Fprintf(&b, "- [%s](%s): %s\n", r.Title, r.URL, r.Description)
	}
	return b.String()
}

// SuggestionsView lists example prompts for the assistant.
func SuggestionsView(c *catalog.Catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\nTry asking:\n\n", c.TabLabel(catalog.TabAI))
	for _, s := range c.Suggestions {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	return b.String()
}

// AnswerView frames a gateway response under the question that produced it.
// The answer is already markdown and is inserted untouched.
func AnswerView(question, answer string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(question), "\n") {
		fmt.Fprintf(&b, "> %s\n", line)
	}
	b.WriteString("\n")
	b.WriteString(answer)
	if !strings.HasSuffix(answer, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

func writeNotes(b *strings.Builder, notes []catalog.Note) {
	for _, n := range notes {
		fmt.Fprintf(b, "> **%s:** %s\n\n", n.Title, n.Body)
	}
}
