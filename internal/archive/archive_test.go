package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	name string
	body string
	dir  bool
	link string
	mode os.FileMode
}

func writeTarGz(t *testing.T, entries []entry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.tar.gz")
	file, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(file)
	tw := tar.NewWriter(gz)
	for _, e := range entries {
		header := &tar.Header{Name: e.name}
		if e.dir {
			header.Typeflag = tar.TypeDir
			header.Mode = 0o755
		} else if e.link != "" {
			header.Typeflag = tar.TypeSymlink
			header.Linkname = e.link
			header.Mode = 0o777
		} else {
			header.Typeflag = tar.TypeReg
			header.Size = int64(len(e.body))
			header.Mode = int64(e.mode)
			if e.mode == 0 {
				header.Mode = 0o644
			}
		}
		require.NoError(t, tw.WriteHeader(header))
		if !e.dir {
			_, err := tw.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, file.Close())
	return path
}

func writeZip(t *testing.T, entries []entry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.zip")
	file, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(file)
	for _, e := range entries {
		if e.dir {
			_, err := zw.Create(ensureSlash(e.name))
			require.NoError(t, err)
			continue
		}
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, file.Close())
	return path
}

func assertFileContent(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestExtractTarGz_StripsWrapper(t *testing.T) {
	archive := writeTarGz(t, []entry{
		{name: "root/", dir: true},
		{name: "root/bin/", dir: true},
		{name: "root/bin/app", body: "binary"},
		{name: "root/README", body: "docs"},
	})
	dest := t.TempDir()

	require.NoError(t, ExtractTarGz(archive, dest))

	assertFileContent(t, filepath.Join(dest, "bin", "app"), "binary")
	assertFileContent(t, filepath.Join(dest, "README"), "docs")
	_, err := os.Stat(filepath.Join(dest, "root"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractTarGz_MultiRootPassthrough(t *testing.T) {
	archive := writeTarGz(t, []entry{
		{name: "a/", dir: true},
		{name: "a/x", body: "ax"},
		{name: "b/", dir: true},
		{name: "b/y", body: "by"},
	})
	dest := t.TempDir()

	require.NoError(t, ExtractTarGz(archive, dest))

	assertFileContent(t, filepath.Join(dest, "a", "x"), "ax")
	assertFileContent(t, filepath.Join(dest, "b", "y"), "by")
}

func TestExtractTarGz_TopLevelFileAbandonsWrapper(t *testing.T) {
	archive := writeTarGz(t, []entry{
		{name: "root/", dir: true},
		{name: "root/app", body: "app"},
		{name: "LICENSE", body: "mit"},
	})
	dest := t.TempDir()

	require.NoError(t, ExtractTarGz(archive, dest))

	assertFileContent(t, filepath.Join(dest, "root", "app"), "app")
	assertFileContent(t, filepath.Join(dest, "LICENSE"), "mit")
}

func TestExtractTarGz_FileBeforeAnyDirectory(t *testing.T) {
	archive := writeTarGz(t, []entry{
		{name: "standalone", body: "data"},
	})
	dest := t.TempDir()

	require.NoError(t, ExtractTarGz(archive, dest))

	assertFileContent(t, filepath.Join(dest, "standalone"), "data")
}

func TestExtractTarGz_PreservesExecutableBit(t *testing.T) {
	archive := writeTarGz(t, []entry{
		{name: "tool/", dir: true},
		{name: "tool/run.sh", body: "#!/bin/sh\n", mode: 0o755},
	})
	dest := t.TempDir()

	require.NoError(t, ExtractTarGz(archive, dest))

	info, err := os.Stat(filepath.Join(dest, "run.sh"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o100)
}

func TestExtractTarGz_RejectsTraversal(t *testing.T) {
	archive := writeTarGz(t, []entry{
		{name: "../evil", body: "nope"},
	})
	dest := t.TempDir()

	err := ExtractTarGz(archive, dest)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsafePath)
	_, statErr := os.Stat(filepath.Join(filepath.Dir(dest), "evil"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtractTarGz_KeepsInternalSymlink(t *testing.T) {
	archive := writeTarGz(t, []entry{
		{name: "root/", dir: true},
		{name: "root/bin/", dir: true},
		{name: "root/bin/app", body: "binary"},
		{name: "root/bin/current", link: "app"},
	})
	dest := t.TempDir()

	require.NoError(t, ExtractTarGz(archive, dest))

	target, err := os.Readlink(filepath.Join(dest, "bin", "current"))
	require.NoError(t, err)
	assert.Equal(t, "app", target)
}

func TestExtractTarGz_RejectsAbsoluteSymlinkTarget(t *testing.T) {
	outside := t.TempDir()
	archive := writeTarGz(t, []entry{
		{name: "s", link: outside},
	})

	err := ExtractTarGz(archive, t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsafePath)
}

func TestExtractTarGz_RejectsEscapingSymlinkTarget(t *testing.T) {
	archive := writeTarGz(t, []entry{
		{name: "sub/", dir: true},
		{name: "sub/s", link: "../../outside"},
	})

	err := ExtractTarGz(archive, t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsafePath)
}

func TestExtractTarGz_SymlinkCannotRouteWritesOutside(t *testing.T) {
	outside := t.TempDir()
	archive := writeTarGz(t, []entry{
		{name: "s", link: outside},
		{name: "s/evil", body: "payload"},
	})
	dest := t.TempDir()

	err := ExtractTarGz(archive, dest)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsafePath)
	_, statErr := os.Stat(filepath.Join(outside, "evil"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtractTarGz_CorruptArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.tar.gz")
	require.NoError(t, os.WriteFile(path, []byte("definitely not gzip"), 0o644))

	require.Error(t, ExtractTarGz(path, t.TempDir()))
}

func TestExtractTarGz_MissingFile(t *testing.T) {
	require.Error(t, ExtractTarGz(filepath.Join(t.TempDir(), "absent.tar.gz"), t.TempDir()))
}

func TestExtractZip_StripsWrapper(t *testing.T) {
	archive := writeZip(t, []entry{
		{name: "pkg-1.2.3", dir: true},
		{name: "pkg-1.2.3/bin", dir: true},
		{name: "pkg-1.2.3/bin/app", body: "binary"},
		{name: "pkg-1.2.3/README", body: "docs"},
	})
	dest := t.TempDir()

	require.NoError(t, ExtractZip(archive, dest))

	assertFileContent(t, filepath.Join(dest, "bin", "app"), "binary")
	assertFileContent(t, filepath.Join(dest, "README"), "docs")
	_, err := os.Stat(filepath.Join(dest, "pkg-1.2.3"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractZip_StripsWrapperWithoutDirectoryEntries(t *testing.T) {
	// zip.Writer.Create emits no directory entries, only file paths.
	archive := writeZip(t, []entry{
		{name: "root/bin/app", body: "binary"},
		{name: "root/README", body: "docs"},
	})
	dest := t.TempDir()

	require.NoError(t, ExtractZip(archive, dest))

	assertFileContent(t, filepath.Join(dest, "bin", "app"), "binary")
	assertFileContent(t, filepath.Join(dest, "README"), "docs")
	_, err := os.Stat(filepath.Join(dest, "root"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractZip_TopLevelFileBlocksWrapper(t *testing.T) {
	archive := writeZip(t, []entry{
		{name: "root/app", body: "app"},
		{name: "LICENSE", body: "mit"},
	})
	dest := t.TempDir()

	require.NoError(t, ExtractZip(archive, dest))

	assertFileContent(t, filepath.Join(dest, "root", "app"), "app")
	assertFileContent(t, filepath.Join(dest, "LICENSE"), "mit")
}

func TestExtractZip_MultiRootPassthrough(t *testing.T) {
	archive := writeZip(t, []entry{
		{name: "a", dir: true},
		{name: "a/x", body: "ax"},
		{name: "b", dir: true},
		{name: "b/y", body: "by"},
	})
	dest := t.TempDir()

	require.NoError(t, ExtractZip(archive, dest))

	assertFileContent(t, filepath.Join(dest, "a", "x"), "ax")
	assertFileContent(t, filepath.Join(dest, "b", "y"), "by")
}

func TestExtractZip_RejectsTraversal(t *testing.T) {
	archive := writeZip(t, []entry{
		{name: "../evil", body: "nope"},
	})

	err := ExtractZip(archive, t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsafePath)
}

func TestExtractZip_CorruptArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	require.Error(t, ExtractZip(path, t.TempDir()))
}

func TestWrapperScan(t *testing.T) {
	tests := []struct {
		name    string
		entries []entry
		want    string
	}{
		{
			name: "single wrapper",
			entries: []entry{
				{name: "root/", dir: true},
				{name: "root/sub/", dir: true},
				{name: "root/sub/file", body: "x"},
			},
			want: "root/",
		},
		{
			name: "two top-level dirs",
			entries: []entry{
				{name: "a/", dir: true},
				{name: "b/", dir: true},
			},
			want: "",
		},
		{
			name: "file outside candidate",
			entries: []entry{
				{name: "root/", dir: true},
				{name: "stray", body: "x"},
			},
			want: "",
		},
		{
			name:    "file first",
			entries: []entry{{name: "file", body: "x"}},
			want:    "",
		},
		{
			name:    "empty archive",
			entries: nil,
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scan := wrapperScan{}
			for _, e := range tt.entries {
				if scan.observe(e.name, e.dir) {
					break
				}
			}
			assert.Equal(t, tt.want, scan.wrapper())
		})
	}
}

func TestStripWrapper(t *testing.T) {
	rel, ok := stripWrapper("root/bin/app", "root/")
	assert.True(t, ok)
	assert.Equal(t, "bin/app", rel)

	// The wrapper entry itself carries no content.
	_, ok = stripWrapper("root/", "root/")
	assert.False(t, ok)

	rel, ok = stripWrapper("anything", "")
	assert.True(t, ok)
	assert.Equal(t, "anything", rel)
}

func TestSecurePath(t *testing.T) {
	dest := t.TempDir()

	path, err := securePath(dest, "sub/file")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "sub", "file"), path)

	_, err = securePath(dest, "../outside")
	assert.ErrorIs(t, err, ErrUnsafePath)

	_, err = securePath(dest, "/abs/path")
	assert.ErrorIs(t, err, ErrUnsafePath)

	_, err = securePath(dest, "sub/../../outside")
	assert.ErrorIs(t, err, ErrUnsafePath)
}
