package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/dmitrymomot/localekit/pkg/entry"
	"github.com/dmitrymomot/localekit/pkg/flatmap"
)

// File is one accepted translation file.
type File struct {
	Data flatmap.FlatMap
	Location
	Path string
}

// Bundle merges files into a bundle. Files mapping to the same location are
// merged in order, later values winning.
func Bundle(files []File) entry.Bundle {
	b := make(entry.Bundle)
	for _, f := range files {
		b.Merge(f.Locale, f.Namespace, f.Data)
	}
	return b
}

// Import parses a zip archive. Any failure aborts the import.
func Import(data []byte, opts ...Option) ([]File, error) {
	o := newOptions(opts)

	zr, err := openZip(data, o)
	if err != nil {
		return nil, err
	}

	var files []File
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		loc, ok := Resolve(zf.Name)
		if !ok {
			continue
		}

		raw, err := readMember(zf, o.maxFileSize)
		if err != nil {
			return nil, &FileError{Path: zf.Name, Err: err}
		}

		flat, err := flatmap.Decode(raw, o.policy)
		if err != nil {
			return nil, &FileError{Path: zf.Name, Err: err}
		}

		files = append(files, File{Path: zf.Name, Location: loc, Data: flat})
	}

	if len(files) == 0 {
		return nil, ErrNoTranslations
	}
	return files, nil
}

// ImportFS walks fsys and parses every file whose path resolves to a
// location. It follows the same rules as Import.
func ImportFS(fsys fs.FS, opts ...Option) ([]File, error) {
	o := newOptions(opts)

	var files []File
	err := fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		loc, ok := Resolve(filePath)
		if !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %q: %w", filePath, err)
		}
		if info.Size() > o.maxFileSize {
			return &FileError{Path: filePath, Err: tooLarge(o.maxFileSize)}
		}

		raw, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return fmt.Errorf("reading %q: %w", filePath, err)
		}

		flat, err := flatmap.Decode(raw, o.policy)
		if err != nil {
			return &FileError{Path: filePath, Err: err}
		}

		files = append(files, File{Path: filePath, Location: loc, Data: flat})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, ErrNoTranslations
	}
	return files, nil
}

func openZip(data []byte, o *options) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Join(ErrInvalidArchive, err)
	}
	if len(zr.File) > o.maxFiles {
		return nil, fmt.Errorf("%w: %w: %d members, limit %d", ErrInvalidArchive, ErrTooManyFiles, len(zr.File), o.maxFiles)
	}
	return zr, nil
}

// readMember reads at most limit bytes. The declared size is checked first and
// the read is bounded as well, since headers can lie.
func readMember(zf *zip.File, limit int64) ([]byte, error) {
	if zf.UncompressedSize64 > uint64(limit) {
		return nil, tooLarge(limit)
	}

	rc, err := zf.Open()
	if err != nil {
		return nil, errors.Join(ErrInvalidArchive, err)
	}
	defer func() { _ = rc.Close() }()

	raw, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, errors.Join(ErrInvalidArchive, err)
	}
	if int64(len(raw)) > limit {
		return nil, tooLarge(limit)
	}
	return raw, nil
}

func tooLarge(limit int64) error {
	return fmt.Errorf("%w: %w: limit %d bytes", ErrInvalidArchive, ErrFileTooLarge, limit)
}
