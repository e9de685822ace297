package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"sdkmeta/internal/ports"
	"sdkmeta/internal/types"
)

// DefaultManifestPattern matches vendor manifests such as
// MK64F12_manifest_v3_10.xml.
const DefaultManifestPattern = "*_manifest*.xml"

type ManifestLocatorAdapter struct {
	Pattern string
}

func NewManifestLocatorAdapter(pattern string) ManifestLocatorAdapter {
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultManifestPattern
	}
	return ManifestLocatorAdapter{Pattern: pattern}
}

// FindManifest returns the single manifest directly under root. Zero or
// several matches are both reported as a missing metadata document.
func (a ManifestLocatorAdapter) FindManifest(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sdk root is empty")
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("%s: sdk root %s is not readable", types.MsgMetadataNotFound, root)).
			WithCause(err)
	}
	if !info.IsDir() {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("%s: sdk root %s is not a directory", types.MsgMetadataNotFound, root))
	}

	matches, err := filepath.Glob(filepath.Join(root, a.Pattern))
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid manifest pattern %q", a.Pattern)).
			WithCause(err)
	}
	var files []string
	for _, match := range matches {
		if stat, err := os.Stat(match); err == nil && !stat.IsDir() {
			files = append(files, match)
		}
	}
	sort.Strings(files)

	switch len(files) {
	case 1:
		return files[0], nil
	case 0:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("%s: no file matching %s in %s", types.MsgMetadataNotFound, a.Pattern, root))
	default:
		names := make([]string, 0, len(files))
		for _, file := range files {
			names = append(names, filepath.Base(file))
		}
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("%s: %d files match %s in %s (%s)", types.MsgMetadataNotFound, len(files), a.Pattern, root, strings.Join(names, ", ")))
	}
}

var _ ports.ManifestLocatorPort = ManifestLocatorAdapter{}
