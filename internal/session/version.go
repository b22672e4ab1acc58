package session

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// VersionError is returned when the client is older than the minimum
// supported version.
type VersionError struct {
	ClientVersion  string
	MinimumVersion string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("client version %s is below minimum supported %s",
		e.ClientVersion, e.MinimumVersion)
}

// CheckClientVersion gates a reported client version against the configured
// minimum. Either side being empty or not semver-shaped disables the gate;
// a malformed version is the client's problem to fix, not a reason to block
// shopping.
func CheckClientVersion(clientVersion, minimum string) error {
	cv := normalizeVersion(clientVersion)
	mv := normalizeVersion(minimum)
	if !semver.IsValid(cv) || !semver.IsValid(mv) {
		return nil
	}
	if semver.Compare(cv, mv) < 0 {
		return &VersionError{ClientVersion: clientVersion, MinimumVersion: minimum}
	}
	return nil
}

// normalizeVersion adds the "v" prefix semver parsing requires.
func normalizeVersion(v string) string {
	if v == "" {
		return ""
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}
