package packaging

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Lays out a minimal bundle directory with a nested file and a symlink,
// the shapes an umbrella bundle actually contains.
func sampleBundle(t *testing.T) string {
	t.Helper()
	bundle := filepath.Join(t.TempDir(), "CoreKit.xcframework")

	slice := filepath.Join(bundle, "ios-arm64", "CoreKit.framework")
	require.NoError(t, os.MkdirAll(slice, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bundle, "Info.plist"), []byte("<plist/>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(slice, "CoreKit"), []byte("binary"), 0755))
	require.NoError(t, os.Symlink("CoreKit", filepath.Join(slice, "Current")))

	return bundle
}

func TestCompress(t *testing.T) {
	bundle := sampleBundle(t)

	archive, err := Compress(bundle)
	require.NoError(t, err)
	require.Equal(t, bundle+".zip", archive)

	reader, err := zip.OpenReader(archive)
	require.NoError(t, err)
	defer reader.Close()

	names := make(map[string]*zip.File)
	for _, f := range reader.File {
		names[f.Name] = f
	}

	require.Contains(t, names, "CoreKit.xcframework/Info.plist")
	require.Contains(t, names, "CoreKit.xcframework/ios-arm64/CoreKit.framework/CoreKit")

	link, ok := names["CoreKit.xcframework/ios-arm64/CoreKit.framework/Current"]
	require.True(t, ok, "symlink entry missing")
	require.NotZero(t, link.Mode()&os.ModeSymlink, "symlink not stored as a link")

	rc, err := link.Open()
	require.NoError(t, err)
	target, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	require.Equal(t, "CoreKit", string(target))
}

func TestCompressDeterministic(t *testing.T) {
	bundle := sampleBundle(t)

	archive, err := Compress(bundle)
	require.NoError(t, err)
	first, err := os.ReadFile(archive)
	require.NoError(t, err)

	// A rebuilt bundle has fresh mtimes; the archive must not change.
	later := time.Now().Add(48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(bundle, "Info.plist"), later, later))

	_, err = Compress(bundle)
	require.NoError(t, err)
	second, err := os.ReadFile(archive)
	require.NoError(t, err)

	require.Equal(t, first, second, "archive bytes depend on file mtimes")
}

func TestCompressReplacesPreviousArchive(t *testing.T) {
	bundle := sampleBundle(t)
	require.NoError(t, os.WriteFile(bundle+".zip", []byte("stale"), 0644))

	archive, err := Compress(bundle)
	require.NoError(t, err)

	_, err = zip.OpenReader(archive)
	require.NoError(t, err, "archive was not replaced")
}

func TestChecksum(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "CoreKit.xcframework.zip")
	payload := []byte("zip bytes")
	require.NoError(t, os.WriteFile(archive, payload, 0644))

	checksumPath, err := Checksum(archive)
	require.NoError(t, err)
	require.Equal(t, archive+".sha256", checksumPath)

	contents, err := os.ReadFile(checksumPath)
	require.NoError(t, err)

	sum := sha256.Sum256(payload)
	want := hex.EncodeToString(sum[:]) + "  CoreKit.xcframework.zip\n"
	require.Equal(t, want, string(contents))
}

func TestWritePointer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts.txt")

	err := WritePointer(path, []Output{
		{Archive: "/out/A.xcframework.zip", Checksum: "/out/A.xcframework.zip.sha256"},
		{Archive: "/out/B.xcframework.zip", Checksum: "/out/B.xcframework.zip.sha256", Signature: "/out/B.xcframework.zip.sha256.asc"},
	})
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(contents), "\n"), "\n")
	require.Equal(t, []string{
		"/out/A.xcframework.zip",
		"/out/A.xcframework.zip.sha256",
		"/out/B.xcframework.zip",
		"/out/B.xcframework.zip.sha256",
		"/out/B.xcframework.zip.sha256.asc",
	}, lines)
}
