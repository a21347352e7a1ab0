package termuxdev

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version is the release version, without surrounding whitespace.
var Version = strings.TrimSpace(rawVersion)
