package signgen

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// fontDirs are the usual installed-font locations across platforms. The
// per-user directories are appended at lookup time.
var fontDirs = []string{
	"/usr/share/fonts",
	"/usr/local/share/fonts",
	"/Library/Fonts",
	"/System/Library/Fonts",
	`C:\Windows\Fonts`,
}

// DefaultFontName is the embedded fallback family.
const DefaultFontName = "Go Regular"

// LoadFontFamily resolves a font request to a parsed TrueType font. An empty
// name or "Go Regular" yields the embedded Go Regular face. A name ending in
// .ttf is read as a file path. Anything else is matched against installed
// fonts; a FontError is returned when nothing matches.
func LoadFontFamily(name string) (*truetype.Font, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "go", "go regular":
		return truetype.Parse(goregular.TTF)
	}
	if strings.EqualFold(filepath.Ext(name), ".ttf") {
		return loadFontFile(name)
	}
	path := findInstalled(name)
	if path == "" {
		return nil, &FontError{Name: name, Reason: "no installed .ttf matches this family"}
	}
	return loadFontFile(path)
}

func loadFontFile(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FontError{Name: path, Reason: err.Error()}
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, &FontError{Name: path, Reason: "parse: " + err.Error()}
	}
	return f, nil
}

var errFontFound = errors.New("font found")

func findInstalled(family string) string {
	want := normalizeFamily(family)
	dirs := fontDirs
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".fonts"), filepath.Join(home, "Library", "Fonts"))
	}
	for _, dir := range dirs {
		var found string
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			ext := filepath.Ext(d.Name())
			if !strings.EqualFold(ext, ".ttf") {
				return nil
			}
			if normalizeFamily(strings.TrimSuffix(d.Name(), ext)) == want {
				found = path
				return errFontFound
			}
			return nil
		})
		if errors.Is(err, errFontFound) {
			return found
		}
	}
	return ""
}

// normalizeFamily folds case and drops separators so "Trebuchet MS" matches
// trebuchet-ms.ttf and TrebuchetMS.ttf alike.
func normalizeFamily(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, s)
}
