package service

import (
	"errors"
	"fmt"

	"github.com/integralist/fastly-mutate/internal/mutator/models"
)

// ErrNoVersions indicates the service has no versions to clone from.
var ErrNoVersions = errors.New("failed to find any service versions remotely")

// ResolveSourceVersion returns the version a run clones from.
//
// Precedence:
//  1. explicit (when non-zero) must exist remotely and is returned as is.
//  2. the active version.
//  3. the highest version number (a service that was never activated).
func ResolveSourceVersion(versions []models.Version, explicit int32) (int32, error) {
	if len(versions) == 0 {
		return 0, ErrNoVersions
	}
	if explicit != 0 {
		return versionFromExplicit(versions, explicit)
	}
	if v, ok := activeVersion(versions); ok {
		return v, nil
	}
	return latestVersion(versions), nil
}

// versionFromExplicit validates the specified version actually exists remotely.
func versionFromExplicit(versions []models.Version, explicit int32) (int32, error) {
	for _, v := range versions {
		if v.Number == explicit {
			return explicit, nil
		}
	}
	return 0, fmt.Errorf("failed to find version '%d' remotely", explicit)
}

func activeVersion(versions []models.Version) (int32, bool) {
	for _, v := range versions {
		if v.Active {
			return v.Number, true
		}
	}
	return 0, false
}

// latestVersion doesn't rely on API ordering.
func latestVersion(versions []models.Version) int32 {
	var latest int32
	for _, v := range versions {
		if v.Number > latest {
			latest = v.Number
		}
	}
	return latest
}
