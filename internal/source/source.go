package source

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoSources means the selected input mode produced nothing to analyze.
var ErrNoSources = errors.New("no sources found")

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Options selects exactly one input mode: a single image path, a directory
// to walk recursively, or a text file listing image URLs.
type Options struct {
	Image   string
	Dir     string
	URLFile string
}

// Enumerate turns the selected input mode into an ordered list of sources
// (file paths or URLs). An empty result is an error so the caller can bail
// out before any network activity.
func Enumerate(opts Options) ([]string, error) {
	var (
		sources []string
		err     error
	)
	switch {
	case opts.Image != "":
		sources = []string{opts.Image}
	case opts.Dir != "":
		sources, err = fromDir(opts.Dir)
	case opts.URLFile != "":
		sources, err = fromURLFile(opts.URLFile)
	}
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	return sources, nil
}

func fromDir(dir string) ([]string, error) {
	var images []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && isImageFile(path) {
			images = append(images, path)
		}
		return nil
	})
	return images, err
}

func fromURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, sc.Err()
}

func isImageFile(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}
