package storage

import (
	"errors"
	"path"
	"strings"
)

var errInvalidPath = errors.New("storage: invalid object path")

// publicURLs maps storage paths to URLs under a public base and back.
type publicURLs struct {
	base string
}

func newPublicURLs(base string) publicURLs {
	return publicURLs{base: strings.TrimRight(base, "/")}
}

func (p publicURLs) PublicURL(objectPath string) string {
	return p.base + "/" + strings.TrimLeft(objectPath, "/")
}

func (p publicURLs) PathFromURL(url string) (string, bool) {
	prefix := p.base + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	objectPath := strings.TrimPrefix(url, prefix)
	if i := strings.IndexAny(objectPath, "?#"); i >= 0 {
		objectPath = objectPath[:i]
	}
	if cleanPath(objectPath) != nil {
		return "", false
	}
	return objectPath, true
}

// cleanPath rejects empty, absolute and parent-escaping object paths.
func cleanPath(objectPath string) error {
	if objectPath == "" || strings.HasPrefix(objectPath, "/") {
		return errInvalidPath
	}
	if c := path.Clean(objectPath); c != objectPath || c == ".." || strings.HasPrefix(c, "../") {
		return errInvalidPath
	}
	return nil
}
