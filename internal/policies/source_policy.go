package policies

import (
	"fmt"
	"path"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"sdkmeta/internal/ports"
)

// DefaultSourcePatterns selects C translation units only.
var DefaultSourcePatterns = []string{"*.c"}

// SourcePolicy filters driver source entries by basename. Patterns use
// path.Match syntax; a pattern without meta characters is an exact name.
type SourcePolicy struct {
	Patterns []string
	wildcard bool
	globs    []string
	exact    map[string]struct{}
}

// NewSourcePolicy compiles patterns, falling back to DefaultSourcePatterns
// when none are given. A blank or malformed pattern is an invalid argument.
func NewSourcePolicy(patterns []string) (SourcePolicy, error) {
	if len(patterns) == 0 {
		patterns = DefaultSourcePatterns
	}
	policy := SourcePolicy{Patterns: append([]string(nil), patterns...)}
	if err := policy.compile(); err != nil {
		return SourcePolicy{}, err
	}
	return policy, nil
}

// DefaultSourcePolicy is the policy built from DefaultSourcePatterns.
func DefaultSourcePolicy() SourcePolicy {
	policy, err := NewSourcePolicy(nil)
	if err != nil {
		panic(err)
	}
	return policy
}

func (p SourcePolicy) AcceptSource(entry string) bool {
	if strings.TrimSpace(entry) == "" {
		return false
	}
	if p.wildcard {
		return true
	}
	base := path.Base(strings.ReplaceAll(entry, "\\", "/"))
	if _, ok := p.exact[base]; ok {
		return true
	}
	for _, glob := range p.globs {
		if ok, _ := path.Match(glob, base); ok {
			return true
		}
	}
	return false
}

func (p *SourcePolicy) compile() error {
	p.wildcard = false
	p.globs = nil
	p.exact = map[string]struct{}{}
	for _, pattern := range p.Patterns {
		value, kind := parseSourcePattern(pattern)
		switch kind {
		case patternWildcard:
			p.wildcard = true
		case patternGlob:
			p.globs = append(p.globs, value)
		case patternExact:
			p.exact[value] = struct{}{}
		default:
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid source pattern %q", pattern))
		}
	}
	return nil
}

type patternKind int

const (
	patternExact patternKind = iota
	patternGlob
	patternWildcard
	patternInvalid
)

func parseSourcePattern(value string) (string, patternKind) {
	pattern := strings.TrimSpace(value)
	if pattern == "" || strings.ContainsAny(pattern, "/\\") {
		return "", patternInvalid
	}
	if pattern == "*" {
		return "", patternWildcard
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return pattern, patternExact
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return "", patternInvalid
	}
	return pattern, patternGlob
}

var _ ports.SourcePolicyPort = SourcePolicy{}
