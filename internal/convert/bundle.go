package convert

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"portfolio3d/internal/utils"
)

var ErrBadEntry = errors.New("bundle: entry outside output directory")

// BundleEntry is one file in an asset bundle. Offset is relative to the
// start of the data section.
type BundleEntry struct {
	Name   string
	Offset uint32
	Size   uint32
}

// Bundle is the table of contents of an asset bundle:
//
//	u32 len, version | u32 count | count * (u32 len, name, u32 offset, u32 size) | data
type Bundle struct {
	Version string
	Entries []BundleEntry

	r         io.ReadSeeker
	dataStart int64
}

// BundleFile is an input to WriteBundle.
type BundleFile struct {
	Name string
	Data []byte
}

func readBundleString(r io.Reader) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	if size > 1<<16 {
		return "", fmt.Errorf("bundle: string length %d too large", size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeBundleString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// ReadBundle reads the table of contents. Entry data is read lazily via Open.
func ReadBundle(r io.ReadSeeker) (*Bundle, error) {
	version, err := readBundleString(r)
	if err != nil {
		return nil, fmt.Errorf("bundle version: %w", err)
	}
	utils.Debug("Bundle: version %s", version)

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("bundle entry count: %w", err)
	}

	b := &Bundle{Version: version, r: r}
	for i := uint32(0); i < count; i++ {
		name, err := readBundleString(r)
		if err != nil {
			return nil, fmt.Errorf("bundle entry %d: %w", i, err)
		}
		var hdr [2]uint32
		if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
			return nil, fmt.Errorf("bundle entry %s: %w", name, err)
		}
		b.Entries = append(b.Entries, BundleEntry{Name: name, Offset: hdr[0], Size: hdr[1]})
	}

	b.dataStart, err = r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Open returns a reader over the data of e.
func (b *Bundle) Open(e BundleEntry) (io.Reader, error) {
	if _, err := b.r.Seek(b.dataStart+int64(e.Offset), io.SeekStart); err != nil {
		return nil, err
	}
	return io.LimitReader(b.r, int64(e.Size)), nil
}

// ExtractBundle unpacks every entry of the bundle at path into outDir.
func ExtractBundle(path, outDir string) error {
	utils.Debug("Bundle: opening %s", path)
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := ReadBundle(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	for i, e := range b.Entries {
		dest := filepath.Join(outDir, filepath.FromSlash(e.Name))
		if !strings.HasPrefix(dest, filepath.Clean(outDir)+string(os.PathSeparator)) {
			return fmt.Errorf("%q: %w", e.Name, ErrBadEntry)
		}
		if i%10 == 0 || i == len(b.Entries)-1 {
			utils.Debug("Bundle: extracting %d/%d: %s", i+1, len(b.Entries), e.Name)
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		src, err := b.Open(e)
		if err != nil {
			return err
		}
		out, err := os.Create(dest)
		if err != nil {
			return err
		}
		n, err := io.Copy(out, src)
		out.Close()
		if err != nil {
			return err
		}
		if n != int64(e.Size) {
			return fmt.Errorf("%s: truncated entry (%d of %d bytes)", e.Name, n, e.Size)
		}
	}

	utils.Info("Extracted %d files from %s", len(b.Entries), path)
	return nil
}

// WriteBundle packs files in order.
func WriteBundle(w io.Writer, version string, files []BundleFile) error {
	if err := writeBundleString(w, version); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(files))); err != nil {
		return err
	}
	var offset uint32
	for _, f := range files {
		if err := writeBundleString(w, f.Name); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, [2]uint32{offset, uint32(len(f.Data))}); err != nil {
			return err
		}
		offset += uint32(len(f.Data))
	}
	for _, f := range files {
		if _, err := w.Write(f.Data); err != nil {
			return err
		}
	}
	return nil
}
