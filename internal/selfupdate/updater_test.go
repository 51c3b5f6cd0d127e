package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseAssetFor(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
		wantErr      bool
	}{
		{"darwin", "amd64", "glosor_Darwin_all.tar.gz", false},
		{"darwin", "arm64", "glosor_Darwin_all.tar.gz", false},
		{"linux", "amd64", "glosor_Linux_x86_64.tar.gz", false},
		{"linux", "arm64", "glosor_Linux_arm64.tar.gz", false},
		{"linux", "386", "glosor_Linux_i386.tar.gz", false},
		{"windows", "amd64", "glosor_Windows_x86_64.zip", false},
		{"windows", "arm64", "glosor_Windows_arm64.zip", false},
		{"freebsd", "amd64", "", true},
		{"linux", "mips", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			got, err := releaseAssetFor(tt.goos, tt.goarch)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChecksumManifest(t *testing.T) {
	manifest := []byte(
		"aaa111  glosor_Darwin_all.tar.gz\n" +
			"not-a-checksum-line\n" +
			"\n" +
			"one two three\n" +
			"bbb222  glosor_Linux_x86_64.tar.gz\n")

	sums := parseChecksumManifest(manifest)
	assert.Equal(t, map[string]string{
		"glosor_Darwin_all.tar.gz":   "aaa111",
		"glosor_Linux_x86_64.tar.gz": "bbb222",
	}, sums)

	assert.Empty(t, parseChecksumManifest(nil))
}

func TestCheckSHA256(t *testing.T) {
	data := []byte("release bytes")
	sum := sha256.Sum256(data)

	assert.NoError(t, checkSHA256(data, hex.EncodeToString(sum[:])))

	err := checkSHA256(data, "deadbeef")
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestBinaryFromArchive(t *testing.T) {
	content := []byte("#!/bin/sh\necho glosor")

	t.Run("tar.gz", func(t *testing.T) {
		got, err := binaryFromArchive(tarGzWith(t, "glosor", content), "glosor_Linux_x86_64.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("zip", func(t *testing.T) {
		got, err := binaryFromArchive(zipWith(t, "glosor.exe", content), "glosor_Windows_x86_64.zip")
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("binary absent", func(t *testing.T) {
		_, err := binaryFromArchive(tarGzWith(t, "README.md", content), "glosor_Linux_x86_64.tar.gz")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestSwapBinary(t *testing.T) {
	target := filepath.Join(t.TempDir(), "glosor")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0755))

	fresh := []byte("fresh-binary")
	require.NoError(t, swapBinary(target, fresh))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, fresh, got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestUpdate(t *testing.T) {
	binary := []byte("new-glosor-binary")

	asset, err := releaseAsset()
	require.NoError(t, err)

	var archive []byte
	if filepath.Ext(asset) == ".zip" {
		archive = zipWith(t, "glosor.exe", binary)
	} else {
		archive = tarGzWith(t, "glosor", binary)
	}
	archiveSum := sha256.Sum256(archive)
	goodManifest := fmt.Sprintf("%s  %s\n", hex.EncodeToString(archiveSum[:]), asset)
	badManifest := fmt.Sprintf("%064d  %s\n", 0, asset)

	t.Run("replaces the binary and reports every stage", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "glosor")
		require.NoError(t, os.WriteFile(target, []byte("old"), 0755))

		server := releaseServer(t, "v2.0.0", asset, archive, goodManifest)
		checker := NewChecker(
			WithBaseURL(server.URL),
			WithDownloadBaseURL(server.URL),
			withExecPath(func() (string, error) { return target, nil }),
		)

		var stages []string
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(p UpdateProgress) {
			stages = append(stages, p.Stage)
		})
		require.NoError(t, err)

		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, binary, got)
		assert.Equal(t, []string{"check", "download", "verify", "extract", "apply", "done"}, stages)
	})

	t.Run("refuses dev builds", func(t *testing.T) {
		err := NewChecker().Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("stops when already latest", func(t *testing.T) {
		server := releaseServer(t, "v1.0.0", asset, archive, goodManifest)
		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))

		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("rejects a bad checksum", func(t *testing.T) {
		server := releaseServer(t, "v2.0.0", asset, archive, badManifest)
		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))

		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("surfaces a failed download", func(t *testing.T) {
		server := releaseServer(t, "v2.0.0", "some-other-asset.tar.gz", archive, goodManifest)
		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))

		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download archive")
	})
}

// releaseServer serves a fake GitHub release: the latest-release API
// endpoint plus the asset and checksum downloads for the given tag.
func releaseServer(t *testing.T, tag, asset string, archive []byte, manifest string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/evalund/glosor/releases/latest":
			fmt.Fprintf(w, `{"tag_name":%q,"html_url":"https://example.com/%s"}`, tag, tag)
		case "/evalund/glosor/releases/download/" + tag + "/" + asset:
			_, _ = w.Write(archive)
		case "/evalund/glosor/releases/download/" + tag + "/checksums.txt":
			_, _ = w.Write([]byte(manifest))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func tarGzWith(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Size: int64(len(content)), Mode: 0755, Typeflag: tar.TypeReg}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func zipWith(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create(name)
	require.NoError(t, err)
	_, err = f.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
