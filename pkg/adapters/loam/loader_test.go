package loam

import (
	"context"
	"testing"

	"github.com/aretw0/termuxdev/internal/testutils"
	"github.com/aretw0/termuxdev/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	dir := testutils.ContentDir(t, map[string]string{
		"06-kotlin.md": `---
kind: step
id: "6"
title: Install Kotlin
command: pkg install kotlin -y
---
Adds the Kotlin compiler for Gradle Kotlin DSL builds.`,
		"community.md": `---
kind: source
name: Community Mirror
url: https://mirror.example.org/termux-main
---
A community-run mirror.`,
		"lint.md": "---\nkind: workflow\nname: Lint\ndescription: Runs the linter.\n---\n```yaml\nname: Lint\non: [push]\n```",
		"fdroid.md": `---
kind: resource
title: F-Droid
url: https://f-droid.org
---
Where to download Termux.`,
	})

	loader, err := Open(dir)
	require.NoError(t, err)

	overlay, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, overlay.SetupSteps, 1)
	assert.Equal(t, catalog.SetupStep{
		ID:          "6",
		Title:       "Install Kotlin",
		Command:     "pkg install kotlin -y",
		Description: "Adds the Kotlin compiler for Gradle Kotlin DSL builds.",
	}, overlay.SetupSteps[0])

	require.Len(t, overlay.PackageSources, 1)
	assert.Equal(t, catalog.SourceCommunity, overlay.PackageSources[0].Type)
	assert.Equal(t, "A community-run mirror.", overlay.PackageSources[0].Description)

	require.Len(t, overlay.Workflows, 1)
	assert.Equal(t, "name: Lint\non: [push]\n", overlay.Workflows[0].Content)
	assert.Equal(t, "Runs the linter.", overlay.Workflows[0].Description)

	require.Len(t, overlay.Resources, 1)
	assert.Equal(t, "https://f-droid.org", overlay.Resources[0].URL)

	merged := catalog.Default().Merge(overlay)
	assert.Len(t, merged.SetupSteps, 6)
	assert.Len(t, merged.Workflows, 3)
}

func TestLoader_UnknownKind(t *testing.T) {
	dir := testutils.ContentDir(t, map[string]string{
		"odd.md": "---\nkind: banner\ntitle: x\n---\nbody",
	})

	loader, err := Open(dir)
	require.NoError(t, err)

	_, err = loader.Load(context.Background())
	assert.ErrorContains(t, err, "unknown kind")
}

func TestLoader_InvalidEntry(t *testing.T) {
	dir := testutils.ContentDir(t, map[string]string{
		"broken.md": "---\nkind: step\nid: \"9\"\ntitle: No command\n---\nbody",
	})

	loader, err := Open(dir)
	require.NoError(t, err)

	_, err = loader.Load(context.Background())
	assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
}

func TestStripFence(t *testing.T) {
	assert.Equal(t, "a: 1", stripFence("```yaml\na: 1\n```"))
	assert.Equal(t, "a: 1", stripFence("a: 1"))
	assert.Equal(t, "```", stripFence("```"))
}
