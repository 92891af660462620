package tools

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/negokaz/office-server/internal/office"
)

// Office resolves relative paths against its own working directory, so
// document paths must be absolute. Drive and UNC forms are accepted on
// every platform.
var windowsAbsolutePath = regexp.MustCompile(`^([A-Za-z]:[\\/]|\\\\)`)

func isAbsolute(path string) bool {
	return filepath.IsAbs(path) || windowsAbsolutePath.MatchString(path)
}

// checkOpenPath validates the path of a document to open.
func checkOpenPath(path string) error {
	if !isAbsolute(path) {
		return office.InvalidArgument("path %q is not absolute", path)
	}
	if !filepath.IsAbs(path) {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return office.InvalidArgument("file %s does not exist", path)
	}
	if info.IsDir() {
		return office.InvalidArgument("%s is a directory", path)
	}
	return nil
}

// checkSavePath validates a save-as target; an empty path saves in place.
func checkSavePath(path string) error {
	if path == "" {
		return nil
	}
	if !isAbsolute(path) {
		return office.InvalidArgument("path %q is not absolute", path)
	}
	if !filepath.IsAbs(path) {
		return nil
	}
	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return office.InvalidArgument("directory %s does not exist", dir)
	}
	if info, err := os.Stat(path); err == nil && info.Mode().Perm()&0o200 == 0 {
		return office.InvalidArgument("file %s is not writable", path)
	}
	return nil
}
