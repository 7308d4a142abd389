// Package index groups release assets into per-build wheel groups.
package index

import (
	"log/slog"
	"slices"
	"sort"
	"strings"

	"git.home.luguber.info/inful/wheelindex/internal/forge"
	"git.home.luguber.info/inful/wheelindex/internal/logfields"
	"git.home.luguber.info/inful/wheelindex/internal/util/sets"
	"git.home.luguber.info/inful/wheelindex/internal/vercmp"
	"git.home.luguber.info/inful/wheelindex/internal/wheel"
)

// Wheel is a parsed wheel asset together with its release metadata.
type Wheel struct {
	wheel.Info
	DownloadURL string
	Size        int64
	CreatedAt   string
	ReleaseTag  string
	ReleaseDate string
}

// Group holds every wheel built for one CUDA/torch combination.
type Group struct {
	Key    string
	CUDA   string
	Torch  string
	Wheels []Wheel

	platforms sets.Set[string]
	latest    string
}

// CUDADisplay returns the dotted CUDA version of the group.
func (g *Group) CUDADisplay() string { return wheel.CUDADisplay(g.CUDA) }

// TorchDisplay returns the dotted torch version of the group.
func (g *Group) TorchDisplay() string { return wheel.TorchDisplay(g.Torch) }

// Platforms returns the sorted platform badge tags seen in the group.
func (g *Group) Platforms() []string {
	return sets.Sorted(g.platforms)
}

// LatestDate returns the most recent release date (YYYY-MM-DD) in the group.
func (g *Group) LatestDate() string { return g.latest }

// PythonVersions returns the distinct interpreter versions, oldest first.
func (g *Group) PythonVersions() []string {
	seen := sets.New[string]()
	var out []string
	for i := range g.Wheels {
		if v := g.Wheels[i].PythonVersion; seen.AddNew(v) {
			out = append(out, v)
		}
	}
	SortVersions(out)
	return out
}

// SortedWheels returns the wheels ordered by filename.
func (g *Group) SortedWheels() []Wheel {
	out := slices.Clone(g.Wheels)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out
}

func (g *Group) add(w Wheel) {
	g.Wheels = append(g.Wheels, w)
	for _, tag := range wheel.PlatformTags(w.Platform) {
		g.platforms.Add(tag)
	}
	// ISO-8601 dates order lexically.
	if w.ReleaseDate > g.latest {
		g.latest = w.ReleaseDate
	}
}

// Index is the result of organizing a release listing.
type Index struct {
	groups map[string]*Group

	// NonWheel counts assets without a .whl suffix.
	NonWheel int
	// Unparsed counts .whl assets whose name does not follow the wheel grammar.
	Unparsed int
}

// Organize groups the .whl assets of releases by CUDA/torch key.
func Organize(releases []forge.Release) *Index {
	ix := &Index{groups: make(map[string]*Group)}
	for _, rel := range releases {
		date := rel.ReleaseDate()
		for _, asset := range rel.Assets {
			if !strings.HasSuffix(asset.Name, ".whl") {
				ix.NonWheel++
				continue
			}
			info, ok := wheel.Parse(asset.Name)
			if !ok {
				ix.Unparsed++
				slog.Debug("Skipping asset with unrecognized wheel name",
					logfields.File(asset.Name),
					slog.String("release", rel.TagName))
				continue
			}
			g, exists := ix.groups[info.GroupKey()]
			if !exists {
				g = &Group{
					Key:       info.GroupKey(),
					CUDA:      info.CUDA,
					Torch:     info.Torch,
					platforms: sets.New[string](),
				}
				ix.groups[g.Key] = g
			}
			g.add(Wheel{
				Info:        info,
				DownloadURL: asset.BrowserDownloadURL,
				Size:        asset.Size,
				CreatedAt:   asset.CreatedAt,
				ReleaseTag:  rel.TagName,
				ReleaseDate: date,
			})
		}
	}
	return ix
}

// Groups returns the non-empty groups sorted by key, descending.
func (ix *Index) Groups() []*Group {
	out := make([]*Group, 0, len(ix.groups))
	for _, g := range ix.groups {
		if len(g.Wheels) == 0 {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key > out[j].Key })
	return out
}

// Group looks up a group by key.
func (ix *Index) Group(key string) (*Group, bool) {
	g, ok := ix.groups[key]
	return g, ok
}

// WheelCount returns the number of indexed wheels across all groups.
func (ix *Index) WheelCount() int {
	n := 0
	for _, g := range ix.groups {
		n += len(g.Wheels)
	}
	return n
}

// Skipped returns the number of assets left out of the index.
func (ix *Index) Skipped() int { return ix.NonWheel + ix.Unparsed }

// CUDAVersions returns the distinct dotted CUDA versions, newest first.
func (ix *Index) CUDAVersions() []string {
	return ix.distinct(func(g *Group) []string { return []string{g.CUDADisplay()} })
}

// TorchVersions returns the distinct dotted torch versions, newest first.
func (ix *Index) TorchVersions() []string {
	return ix.distinct(func(g *Group) []string { return []string{g.TorchDisplay()} })
}

// PythonVersions returns the distinct interpreter versions, newest first.
func (ix *Index) PythonVersions() []string {
	return ix.distinct(func(g *Group) []string { return g.PythonVersions() })
}

func (ix *Index) distinct(values func(*Group) []string) []string {
	seen := sets.New[string]()
	var out []string
	for _, g := range ix.Groups() {
		for _, v := range values(g) {
			if seen.AddNew(v) {
				out = append(out, v)
			}
		}
	}
	SortVersions(out)
	slices.Reverse(out)
	return out
}

// SortVersions sorts dotted versions ascending by numeric components.
// Unparsable entries sort after valid ones in string order.
func SortVersions(vs []string) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, errA := vercmp.Parse(vs[i])
		b, errB := vercmp.Parse(vs[j])
		switch {
		case errA == nil && errB == nil:
			return a.Compare(b) < 0
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return vs[i] < vs[j]
	})
}
