package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Contents(t *testing.T) {
	c := Default()

	require.Len(t, c.SetupSteps, 5)
	assert.Equal(t, "Update Package List", c.SetupSteps[0].Title)
	assert.Equal(t, "pkg update && pkg upgrade -y", c.SetupSteps[0].Command)
	assert.Equal(t, "java -version && gradle -v", c.SetupSteps[4].Command)

	require.Len(t, c.PackageSources, 3)
	for _, s := range c.PackageSources {
		assert.Equal(t, SourceOfficial, s.Type)
		assert.True(t, strings.HasPrefix(s.URL, "https://packages.termux.dev/apt/"))
	}

	require.Len(t, c.Workflows, 2)
	assert.Equal(t, "Java Gradle Build", c.Workflows[0].Name)
	assert.True(t, strings.HasPrefix(c.Workflows[0].Content, "name: Java CI with Gradle\n"))
	assert.Contains(t, c.Workflows[1].Content, "softprops/action-gh-release@v1")

	assert.Len(t, c.Resources, 4)
	assert.Len(t, c.Suggestions, 3)
	assert.Equal(t, "termux-change-repo", c.RepoFix.Command)
	require.Len(t, c.Tabs, 5)
	assert.Equal(t, "Dev AI Assistant", c.TabLabel(TabAI))
}

func TestDefault_IsolatedCopies(t *testing.T) {
	a := Default()
	a.SetupSteps[0].Title = "mutated"
	a.Suggestions = append(a.Suggestions, "extra")

	b := Default()
	assert.Equal(t, "Update Package List", b.SetupSteps[0].Title)
	assert.Len(t, b.Suggestions, 3)
}

func TestParseTab(t *testing.T) {
	tests := []struct {
		in   string
		want Tab
	}{
		{"setup", TabSetup},
		{"SOURCES", TabSources},
		{" actions ", TabActions},
		{"ai", TabAI},
		{"resources", TabResources},
		{"", TabSetup},
		{"bogus", TabSetup},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTab(tt.in), "input %q", tt.in)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Bad YAML", "setup_steps: [\n"},
		{"Missing Step ID", "setup_steps:\n  - title: x\n    command: y\n"},
		{"Missing Command", "setup_steps:\n  - id: '1'\n"},
		{"Unknown Source Type", "package_sources:\n  - name: M\n    type: mirror\n"},
		{"Duplicate Workflow", "workflows:\n  - name: A\n    content: x\n  - name: A\n    content: y\n"},
		{"Empty Workflow", "workflows:\n  - name: A\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	overlay := &Catalog{
		SetupSteps: []SetupStep{
			{ID: "4", Title: "Install Gradle 8", Command: "pkg install gradle -y"},
			{ID: "6", Title: "Install Kotlin", Command: "pkg install kotlin -y"},
		},
		PackageSources: []PackageSource{
			{Name: "Community Mirror", URL: "https://example.org/termux", Type: SourceCommunity},
		},
		Workflows: []WorkflowTemplate{{Name: "Lint", Content: "name: Lint\n"}},
	}

	merged := base.Merge(overlay)

	require.Len(t, merged.SetupSteps, 6)
	assert.Equal(t, "Install Gradle 8", merged.SetupSteps[3].Title)
	assert.Equal(t, "Install Kotlin", merged.SetupSteps[5].Title)
	assert.Len(t, merged.PackageSources, 4)
	assert.Len(t, merged.Workflows, 3)
	assert.Equal(t, "termux-change-repo", merged.RepoFix.Command)

	// Base is untouched.
	assert.Len(t, base.SetupSteps, 5)
	assert.Equal(t, "Install Gradle", base.SetupSteps[3].Title)

	assert.NoError(t, merged.Validate())
	assert.Len(t, base.Merge(nil).SetupSteps, 5)
}

func TestWorkflowLookup(t *testing.T) {
	c := Default()

	w, ok := c.Workflow("release apk/jar")
	require.True(t, ok)
	assert.Equal(t, "Release APK/JAR", w.Name)

	_, ok = c.Workflow("missing")
	assert.False(t, ok)

	first, ok := c.DefaultWorkflow()
	require.True(t, ok)
	assert.Equal(t, "Java Gradle Build", first.Name)

	_, ok = (&Catalog{}).DefaultWorkflow()
	assert.False(t, ok)
}
