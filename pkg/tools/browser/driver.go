package browser

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// driverCacheRoot is where playwright-go keeps its versioned driver
// installs (one subdirectory per driver version).
func driverCacheRoot() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "ms-playwright-go"), nil
}

// InstalledDriverVersions lists the driver versions already present on
// disk, newest first. A missing cache directory simply yields no versions.
func InstalledDriverVersions() []string {
	root, err := driverCacheRoot()
	if err != nil {
		return nil
	}
	return versionsUnder(root)
}

// versionsUnder lists version-named subdirectories of root, newest first.
func versionsUnder(root string) []string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var versions []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || len(name) == 0 || name[0] < '0' || name[0] > '9' {
			continue
		}
		versions = append(versions, name)
	}

	sort.Slice(versions, func(i, j int) bool {
		return compareVersions(versions[i], versions[j]) > 0
	})
	return versions
}

// compareVersions orders dotted numeric versions: positive when a is newer
// than b. Non-numeric segments compare as zero.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}

	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(as) {
			av, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bv, _ = strconv.Atoi(bs[i])
		}
		if av != bv {
			return av - bv
		}
	}
	return 0
}
