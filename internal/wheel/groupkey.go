package wheel

import (
	"regexp"
	"strings"
)

var groupKeyPattern = regexp.MustCompile(`^cu(\d+)_torch(\d+)$`)

// ParseGroupKey splits a group key into its CUDA and torch codes.
func ParseGroupKey(key string) (cuda, torch string, ok bool) {
	m := groupKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// CUDADisplay renders a CUDA code with a dot before the last digit ("129" -> "12.9").
func CUDADisplay(code string) string {
	if len(code) < 2 {
		return code
	}
	return code[:len(code)-1] + "." + code[len(code)-1:]
}

// TorchDisplay renders a torch code with every digit dot-separated ("280" -> "2.8.0").
func TorchDisplay(code string) string {
	return strings.Join(strings.Split(code, ""), ".")
}

// PlatformTags returns the badge tags for a wheel platform tag.
func PlatformTags(platform string) []string {
	var tags []string
	if strings.Contains(platform, "win") {
		tags = append(tags, "windows")
	}
	if strings.Contains(platform, "aarch64") || strings.Contains(platform, "arm64") {
		tags = append(tags, "arm64")
	}
	return tags
}
