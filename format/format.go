package format

import (
	"errors"
	"fmt"
	"strconv"
)

// Version is the on-disk revision of a save blob. It is recorded in the
// save container header and governs conditional field layouts inside
// property payloads.
type Version uint32

const (
	// V190 is the earliest revision this engine reads.
	V190 Version = 190
	// V195 widened TweakDBID payloads from u32 to u64.
	V195 Version = 195
	// V203 is the most recent revision seen in the wild.
	V203 Version = 203
)

var ErrBadFormat = errors.New("bad save format")

// ParseVersion parses a decimal revision number as found in save
// container headers.
func ParseVersion(v string) (Version, error) {
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: version %q", ErrBadFormat, v)
	}
	ver := Version(n)
	if !ver.Supported() {
		return 0, fmt.Errorf("%w: unsupported version %d", ErrBadFormat, n)
	}
	return ver, nil
}

func (v Version) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Version) UnmarshalText(d []byte) error {
	pv, err := ParseVersion(string(d))
	if err != nil {
		return err
	}
	*v = pv
	return nil
}

// Supported reports whether this engine knows the revision's layout.
func (v Version) Supported() bool {
	return v >= V190 && v <= V203
}

// HasWideTweakIDs reports whether TweakDBID payloads are 8 bytes.
// Revisions before V195 stored only the low 32 bits of the hash.
func (v Version) HasWideTweakIDs() bool {
	return v >= V195
}
