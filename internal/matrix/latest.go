package matrix

import (
	"fmt"
	"regexp"
	"strconv"

	"git.home.luguber.info/inful/wheelindex/internal/registry"
)

// CUDARelease is the newest known patch of one CUDA major.minor line.
type CUDARelease struct {
	MajorMinor string
	Patch      int
}

// Full renders the three-component version, e.g. "12.8.1".
func (r CUDARelease) Full() string {
	return fmt.Sprintf("%s.%d", r.MajorMinor, r.Patch)
}

// DevelTagPattern matches "<major>.<minor>.<patch>-devel-<os>" exactly.
func DevelTagPattern(os string) *regexp.Regexp {
	return regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)-devel-` + regexp.QuoteMeta(os) + `$`)
}

// LatestPatches folds the tags, in the given order, into a table keyed by
// major.minor. A later tag replaces the stored release when its patch is
// greater or equal, so among equal patches the last one seen is kept.
// Tags not matching DevelTagPattern(os) are ignored.
func LatestPatches(tags []registry.Tag, os string) map[string]CUDARelease {
	pattern := DevelTagPattern(os)
	latest := make(map[string]CUDARelease)
	for _, tag := range tags {
		m := pattern.FindStringSubmatch(tag.Name)
		if m == nil {
			continue
		}
		patch, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		key := m[1] + "." + m[2]
		if cur, ok := latest[key]; ok && patch < cur.Patch {
			continue
		}
		latest[key] = CUDARelease{MajorMinor: key, Patch: patch}
	}
	return latest
}
