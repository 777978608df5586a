package domain

import (
	"encoding/json"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
)

// Version is the version of a release: either a semantic version or a plain
// integer such as a release id.
type Version struct {
	semver   string
	number   uint64
	isNumber bool
}

// NewSemver returns a semantic version. A leading "v" is optional.
func NewSemver(s string) (Version, error) {
	canonical := "v" + strings.TrimPrefix(s, "v")
	if !semver.IsValid(canonical) {
		return Version{}, zerr.With(ErrInvalidVersion, "version", s)
	}
	return Version{semver: semver.Canonical(canonical)}, nil
}

// MustSemver is NewSemver for constants known to be valid.
func MustSemver(s string) Version {
	v, err := NewSemver(s)
	if err != nil {
		panic(err)
	}
	return v
}

// NewNumber returns an integer version.
func NewNumber(n uint64) Version {
	return Version{number: n, isNumber: true}
}

// ParseVersion accepts either an integer or a semantic version.
func ParseVersion(s string) (Version, error) {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return NewNumber(n), nil
	}
	return NewSemver(s)
}

// IsNumber reports whether the version is an integer version.
func (v Version) IsNumber() bool {
	return v.isNumber
}

// IsZero reports whether the version was never set.
func (v Version) IsZero() bool {
	return !v.isNumber && v.semver == ""
}

// coarse returns the version as a comparable semver string. Integer versions
// become the major component.
func (v Version) coarse() string {
	if v.isNumber {
		return "v" + strconv.FormatUint(v.number, 10) + ".0.0"
	}
	return v.semver
}

// Compare returns -1, 0 or +1 ordering v against o.
func (v Version) Compare(o Version) int {
	if v.isNumber && o.isNumber {
		switch {
		case v.number < o.number:
			return -1
		case v.number > o.number:
			return 1
		default:
			return 0
		}
	}
	return semver.Compare(v.coarse(), o.coarse())
}

// Equal reports whether both versions are the same kind and value.
func (v Version) Equal(o Version) bool {
	if v.isNumber != o.isNumber {
		return false
	}
	if v.isNumber {
		return v.number == o.number
	}
	return semver.Compare(v.semver, o.semver) == 0
}

func (v Version) String() string {
	if v.isNumber {
		return strconv.FormatUint(v.number, 10)
	}
	return strings.TrimPrefix(v.semver, "v")
}

type versionJSON struct {
	Semver  *string `json:"Semver,omitempty"`
	Integer *uint64 `json:"Integer,omitempty"`
}

// MarshalJSON encodes the version as {"Semver":"1.2.3"} or {"Integer":42}.
func (v Version) MarshalJSON() ([]byte, error) {
	if v.isNumber {
		n := v.number
		return json.Marshal(versionJSON{Integer: &n})
	}
	s := v.String()
	return json.Marshal(versionJSON{Semver: &s})
}

// UnmarshalJSON decodes the tagged form written by MarshalJSON.
func (v *Version) UnmarshalJSON(data []byte) error {
	var raw versionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.Integer != nil:
		*v = NewNumber(*raw.Integer)
	case raw.Semver != nil:
		parsed, err := NewSemver(*raw.Semver)
		if err != nil {
			return err
		}
		*v = parsed
	default:
		return zerr.With(ErrInvalidVersion, "json", string(data))
	}
	return nil
}
