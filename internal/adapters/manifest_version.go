package adapters

import (
	"fmt"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"
)

// SupportedFormatVersions is the manifest format range whose components are
// scoped to devices through the `devices` attribute.
const SupportedFormatVersions = ">=3.0"

// checkFormatVersion rejects manifests older than the supported format. An
// absent format version is accepted.
func checkFormatVersion(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	version, err := pep440.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid format_version %q: %w", value, err)
	}
	spec, err := pep440.NewSpecifiers(SupportedFormatVersions)
	if err != nil {
		return err
	}
	if !spec.Check(version) {
		return fmt.Errorf("format_version %s is not supported (want %s)", value, SupportedFormatVersions)
	}
	return nil
}

// newerDriverVersion reports whether candidate should replace current when two
// driver components share a name on one device. Equal or unparseable
// versions favour the later declaration.
func newerDriverVersion(current string, candidate string) bool {
	currentVersion, err := debversion.NewVersion(strings.TrimSpace(current))
	if err != nil {
		return true
	}
	candidateVersion, err := debversion.NewVersion(strings.TrimSpace(candidate))
	if err != nil {
		return true
	}
	return candidateVersion.Compare(currentVersion) >= 0
}
