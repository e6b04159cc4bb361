package storage

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// PathPrefix marks objects this application uploaded. URLs without it point
// at bundled assets and are never removed from storage.
const PathPrefix = "products/"

// ObjectKey builds products/{unixMillis}-{token}.{ext} for an uploaded file.
func ObjectKey(fileName string, now time.Time) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	if ext == "" {
		ext = "jpg"
	}

	token := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]

	return fmt.Sprintf("%s%d-%s.%s", PathPrefix, now.UnixMilli(), token, ext)
}

// ObjectFromURL derives the object name behind a public URL. It reports false
// when the URL does not carry PathPrefix.
func ObjectFromURL(url string) (string, bool) {
	if !strings.Contains(url, PathPrefix) {
		return "", false
	}

	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}

	segment := url[strings.LastIndex(url, "/")+1:]
	if segment == "" {
		return "", false
	}

	return PathPrefix + segment, true
}

// ContentType returns the declared type when there is one, otherwise sniffs
// the head of the file. The reader is rewound afterwards.
func ContentType(declared string, file io.ReadSeeker) (string, error) {
	if declared != "" && declared != "application/octet-stream" {
		return declared, nil
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to detect content type: %w", err)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind file: %w", err)
	}

	return mtype.String(), nil
}
