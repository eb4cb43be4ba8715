package nativechange

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrVersionSyntax is returned when a release label does not match the
// expected "<major>.<minor>" numeric form.
var ErrVersionSyntax = errors.New("invalid version syntax")

var versionRe = regexp.MustCompile(`^(\d+)\.(\d+)$`)

// Version is a two-component release identifier. Release lines walked by the
// heatmap builder always carry minor 0; the minor component is kept so that
// labels round-trip exactly.
type Version struct {
	Major int
	Minor int
}

// ParseVersion parses a textual release label such as "15.0". Anything that
// is not two dot-separated integers is a fatal parse error: chain building
// cannot meaningfully continue from a guessed version.
func ParseVersion(label string) (Version, error) {
	match := versionRe.FindStringSubmatch(label)
	if match == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrVersionSyntax, label)
	}

	major, err := strconv.Atoi(match[1])
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrVersionSyntax, label)
	}

	minor, err := strconv.Atoi(match[2])
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrVersionSyntax, label)
	}

	return Version{Major: major, Minor: minor}, nil
}

// String renders the "<major>.<minor>" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// encode folds a version into a single comparable integer. This assumes the
// minor component never exceeds 9, which holds for the two-releases-per-year
// numbering this tool targets; it is a known limitation, not validated here.
func (v Version) encode() int {
	const minorRadix = 10

	return v.Major*minorRadix + v.Minor
}

// Chain enumerates the inclusive sequence of whole major releases between
// two versions, ordered newest first. Intermediate minor lines are dropped:
// only encoded values divisible by ten survive. Chain(v, v) for a major
// release returns a single-element chain, which yields zero transitions.
func Chain(source, target Version) []Version {
	const minorRadix = 10

	low, high := source.encode(), target.encode()
	if low > high {
		low, high = high, low
	}

	var chain []Version

	for n := high; n >= low; n-- {
		if n%minorRadix != 0 {
			continue
		}

		chain = append(chain, Version{Major: n / minorRadix, Minor: n % minorRadix})
	}

	return chain
}

// ParseChain parses two release labels and returns the full newest-first
// version chain between them, inclusive.
func ParseChain(source, target string) ([]Version, error) {
	from, err := ParseVersion(source)
	if err != nil {
		return nil, err
	}

	to, err := ParseVersion(target)
	if err != nil {
		return nil, err
	}

	return Chain(from, to), nil
}
