package packaging

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lowip/swift-create-xcframework/internal/paths"
)

var ErrPackaging = errors.New("packaging failed")

// Timestamp stamped on every archive entry. Fixing it makes the archive a
// function of the bundle's content and layout alone, not of when the build
// ran.
var archiveEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// The files produced for one merged bundle.
type Output struct {
	Archive   string // Path to the compressed bundle.
	Checksum  string // Path to the checksum file.
	Signature string // Path to the detached signature, empty unless signing was requested.
}

// Compresses a merged bundle into a zip archive next to it.
//
// The archive is written to "<bundle>.zip", replacing any previous one.
// Entries are added in lexical walk order with a fixed timestamp, and
// symbolic links are stored as links, so bundles with identical content
// compress to identical archives regardless of file mtimes.
func Compress(bundlePath string) (string, error) {
	archivePath := bundlePath + ".zip"

	if err := os.Remove(archivePath); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %w", ErrPackaging, err)
	}

	out, err := os.OpenFile(archivePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, paths.DefaultFileMode)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPackaging, err)
	}
	defer out.Close()

	writer := zip.NewWriter(out)
	if err := addTree(writer, bundlePath); err != nil {
		writer.Close()
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPackaging, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPackaging, err)
	}

	slog.Info("compressed bundle", "archive", archivePath)
	return archivePath, nil
}

// Adds the bundle directory tree to the archive, rooted at its base name.
func addTree(writer *zip.Writer, root string) error {
	base := filepath.Base(root)

	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPackaging, err)
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPackaging, err)
		}
		name := base
		if rel != "." {
			name = base + "/" + filepath.ToSlash(rel)
		}

		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPackaging, err)
		}

		switch {
		case entry.IsDir():
			return nil

		case info.Mode()&os.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrPackaging, err)
			}
			return addSymlink(writer, name, target, info)

		default:
			return addFile(writer, name, path, info)
		}
	})
}

func addFile(writer *zip.Writer, name, path string, info fs.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPackaging, err)
	}
	header.Name = name
	header.Method = zip.Deflate
	header.Modified = archiveEpoch

	w, err := writer.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPackaging, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPackaging, err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("%w: %w", ErrPackaging, err)
	}
	return nil
}

// Stores a symbolic link as a link entry whose content is its target.
func addSymlink(writer *zip.Writer, name, target string, info fs.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPackaging, err)
	}
	header.Name = name
	header.Method = zip.Store
	header.Modified = archiveEpoch

	w, err := writer.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPackaging, err)
	}
	if _, err := w.Write([]byte(target)); err != nil {
		return fmt.Errorf("%w: %w", ErrPackaging, err)
	}
	return nil
}

// Computes the archive's SHA-256 and writes it to "<archive>.sha256".
//
// The file uses the conventional "<hex>  <filename>" layout so standard
// checksum tools can verify it.
func Checksum(archivePath string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPackaging, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPackaging, err)
	}

	checksumPath := archivePath + ".sha256"
	line := hex.EncodeToString(h.Sum(nil)) + "  " + filepath.Base(archivePath) + "\n"
	if err := os.WriteFile(checksumPath, []byte(line), paths.DefaultFileMode); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPackaging, err)
	}

	return checksumPath, nil
}

// Writes the plain-text pointer file automation consumes.
//
// One produced path per line, in production order: archive, checksum, and
// signature when present.
func WritePointer(path string, outputs []Output) error {
	var lines []string
	for _, output := range outputs {
		lines = append(lines, output.Archive, output.Checksum)
		if output.Signature != "" {
			lines = append(lines, output.Signature)
		}
	}

	contents := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(contents), paths.DefaultFileMode); err != nil {
		return fmt.Errorf("%w: %w", ErrPackaging, err)
	}
	return nil
}
