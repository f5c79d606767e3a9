package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	grafterrors "stackit.dev/graft/internal/errors"
)

// MinimumVersion is the oldest git release that supports rebase --update-refs.
var MinimumVersion = Version{Major: 2, Minor: 38}

// Version is a parsed git version number. Patch and trailing qualifiers are
// ignored for comparison purposes.
type Version struct {
	Major int
	Minor int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast reports whether v is the same as or newer than other.
func (v Version) AtLeast(other Version) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	return v.Minor >= other.Minor
}

// ParseVersion parses the output of `git version`, e.g.
// "git version 2.39.5 (Apple Git-154)".
func ParseVersion(output string) (Version, error) {
	fields := strings.Fields(output)
	var raw string
	for i, f := range fields {
		if f == "version" && i+1 < len(fields) {
			raw = fields[i+1]
			break
		}
	}
	if raw == "" && len(fields) > 0 {
		raw = fields[len(fields)-1]
	}

	parts := strings.Split(raw, ".")
	if len(parts) < 2 {
		return Version{}, fmt.Errorf("unrecognized git version output %q", output)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("unrecognized git version output %q", output)
	}
	// Some builds report versions like "2.39.windows.1"; take the leading
	// digits of the minor component.
	minorDigits := parts[1]
	for i, r := range minorDigits {
		if r < '0' || r > '9' {
			minorDigits = minorDigits[:i]
			break
		}
	}
	minor, err := strconv.Atoi(minorDigits)
	if err != nil {
		return Version{}, fmt.Errorf("unrecognized git version output %q", output)
	}

	return Version{Major: major, Minor: minor}, nil
}

// GetVersion returns the version of the installed git binary.
func GetVersion(ctx context.Context) (Version, error) {
	output, err := RunGitCommandWithContext(ctx, "version")
	if err != nil {
		return Version{}, fmt.Errorf("failed to run git: %w", err)
	}
	return ParseVersion(output)
}

// CheckVersion verifies that the installed git supports rebase --update-refs.
func CheckVersion(ctx context.Context) error {
	version, err := GetVersion(ctx)
	if err != nil {
		return grafterrors.NewPreconditionError("git is not available", err)
	}
	if !version.AtLeast(MinimumVersion) {
		return grafterrors.NewPreconditionError(
			fmt.Sprintf("git %s or newer is required for rebase --update-refs, found %s", MinimumVersion, version),
			grafterrors.ErrGitTooOld)
	}
	return nil
}
