// Package wheel parses Flash-Attention 3 wheel filenames into build metadata.
package wheel

import (
	"fmt"
	"regexp"
	"strings"
)

// Distribution is the wheel distribution name the grammar accepts.
const Distribution = "flash_attn_3"

var filenamePattern = regexp.MustCompile(
	`^flash_attn_3-` +
		`(\d+\.\d+\.\d+(?:(?:a|b|rc)\d+)?)` + // base version
		`\.(\d{8})` + // build date
		`\.cu(\d{3})torch(\d{3})cxx11abi((?i:true|false))` +
		`\.([0-9a-f]+)` + // commit hash
		`-cp(\d{2,3})` +
		`-([A-Za-z0-9_]+)` + // abi tag
		`-([A-Za-z0-9_.]+)` + // platform tag
		`\.whl$`)

// Info is the metadata encoded in a wheel filename.
type Info struct {
	Filename      string
	Distribution  string
	BaseVersion   string
	BuildDate     string
	CUDA          string
	Torch         string
	CXX11ABI      bool
	CommitHash    string
	PythonCode    string
	PythonVersion string
	ABITag        string
	Platform      string
}

// Parse extracts metadata from filename. ok is false when the name does not
// follow the wheel grammar.
func Parse(filename string) (Info, bool) {
	m := filenamePattern.FindStringSubmatch(filename)
	if m == nil {
		return Info{}, false
	}
	return Info{
		Filename:      filename,
		Distribution:  Distribution,
		BaseVersion:   m[1],
		BuildDate:     m[2],
		CUDA:          m[3],
		Torch:         m[4],
		CXX11ABI:      strings.EqualFold(m[5], "true"),
		CommitHash:    m[6],
		PythonCode:    m[7],
		PythonVersion: PythonVersion(m[7]),
		ABITag:        m[8],
		Platform:      m[9],
	}, true
}

// GroupKey returns the index group the wheel belongs to.
func (i Info) GroupKey() string {
	return GroupKey(i.CUDA, i.Torch)
}

// GroupKey formats a group key from CUDA and torch codes.
func GroupKey(cuda, torch string) string {
	return fmt.Sprintf("cu%s_torch%s", cuda, torch)
}

// PythonVersion converts an interpreter code to its display form: the first
// digit is the major version, the rest the minor ("310" -> "3.10").
func PythonVersion(code string) string {
	if len(code) < 2 {
		return code
	}
	return code[:1] + "." + code[1:]
}
