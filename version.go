package amigurumi

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the release of the library and the amigurumi binary.
var Version = strings.TrimSpace(version)
