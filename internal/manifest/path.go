package manifest

import "strings"

// excludedFragments are path fragments that disqualify a nested manifest:
// dependency caches, build output and CI configuration.
var excludedFragments = []string{
	"node_modules",
	"/dist/",
	"/build/",
	".github/",
}

// ResolvePath finds the manifest in a list of repository paths. A root-level
// package.json wins; otherwise the first nested package.json in tree order
// outside the excluded directories is returned. It returns "" when the tree
// is empty or holds no usable manifest.
func ResolvePath(paths []string) string {
	for _, p := range paths {
		if p == FileName {
			return FileName
		}
	}

	for _, p := range paths {
		if !strings.HasSuffix(p, FileName) {
			continue
		}
		if isExcluded(p) {
			continue
		}
		return p
	}
	return ""
}

func isExcluded(p string) bool {
	for _, frag := range excludedFragments {
		if strings.Contains(p, frag) {
			return true
		}
	}
	return false
}
