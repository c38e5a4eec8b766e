package convert

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundleRoundTrip(t *testing.T) {
	files := []BundleFile{
		{Name: "artworks/circle.dds", Data: []byte("circle-bytes")},
		{Name: "sounds/vision_on.wav", Data: []byte("RIFF....")},
		{Name: "empty.txt", Data: nil},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteBundle(&buf, "PKGV0001", files))

	b, err := ReadBundle(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "PKGV0001", b.Version)
	require.Len(t, b.Entries, 3)
	assert.Equal(t, uint32(12), b.Entries[1].Offset)

	for i, e := range b.Entries {
		r, err := b.Open(e)
		require.NoError(t, err)
		got, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, string(files[i].Data), string(got), e.Name)
	}
}

func TestExtractBundle(t *testing.T) {
	dir := t.TempDir()
	pkg := filepath.Join(dir, "scene.pkg")
	var buf bytes.Buffer
	require.NoError(t, WriteBundle(&buf, "PKGV0001", []BundleFile{
		{Name: "artworks/wave.png", Data: []byte{1, 2, 3}},
	}))
	require.NoError(t, os.WriteFile(pkg, buf.Bytes(), 0o644))

	out := filepath.Join(dir, "out")
	require.NoError(t, ExtractBundle(pkg, out))
	got, err := os.ReadFile(filepath.Join(out, "artworks", "wave.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestExtractBundleRejectsEscapes(t *testing.T) {
	dir := t.TempDir()
	pkg := filepath.Join(dir, "evil.pkg")
	var buf bytes.Buffer
	require.NoError(t, WriteBundle(&buf, "PKGV0001", []BundleFile{{Name: "../escape.txt", Data: []byte("x")}}))
	require.NoError(t, os.WriteFile(pkg, buf.Bytes(), 0o644))

	err := ExtractBundle(pkg, filepath.Join(dir, "out"))
	assert.ErrorIs(t, err, ErrBadEntry)
	assert.NoFileExists(t, filepath.Join(dir, "escape.txt"))
}

func TestReadBundleTruncated(t *testing.T) {
	_, err := ReadBundle(bytes.NewReader([]byte{8, 0, 0, 0, 'P', 'K'}))
	assert.Error(t, err)
}

// dds builds a single-mip DDS file around payload.
func dds(fourCC string, w, h uint32, payload []byte) []byte {
	hdr := make([]byte, ddsHeaderSize)
	copy(hdr, "DDS ")
	binary.LittleEndian.PutUint32(hdr[4:], 124)
	binary.LittleEndian.PutUint32(hdr[12:], h)
	binary.LittleEndian.PutUint32(hdr[16:], w)
	binary.LittleEndian.PutUint32(hdr[76:], 32)
	binary.LittleEndian.PutUint32(hdr[80:], 0x4)
	copy(hdr[84:], fourCC)
	return append(hdr, payload...)
}

func TestDecodeDXT1(t *testing.T) {
	// color0 white, color1 black, every texel index 0.
	block := []byte{0xff, 0xff, 0x00, 0x00, 0, 0, 0, 0}
	img, err := DecodeDDS(dds("DXT1", 4, 4, block))
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())

	c := img.RGBAAt(2, 3)
	assert.Greater(t, c.R, uint8(240))
	assert.Greater(t, c.G, uint8(240))
	assert.Greater(t, c.B, uint8(240))
	assert.Equal(t, uint8(255), c.A)
}

func TestDecodeDXT5(t *testing.T) {
	alpha := []byte{0xff, 0x00, 0, 0, 0, 0, 0, 0}
	color := []byte{0x00, 0x00, 0xff, 0xff, 0, 0, 0, 0}
	img, err := DecodeDDS(dds("DXT5", 4, 4, append(alpha, color...)))
	require.NoError(t, err)

	c := img.RGBAAt(0, 0)
	assert.Equal(t, uint8(255), c.A)
	assert.Less(t, c.R, uint8(16))
}

func TestDecodeDDSErrors(t *testing.T) {
	_, err := DecodeDDS([]byte("PNG"))
	assert.ErrorIs(t, err, ErrNotDDS)

	_, err = DecodeDDS(dds("ATI2", 4, 4, make([]byte, 16)))
	assert.ErrorContains(t, err, "unsupported")

	_, err = DecodeDDS(dds("DXT5", 8, 8, make([]byte, 16)))
	assert.ErrorContains(t, err, "too short")

	_, err = DecodeDDS(dds("DXT1", 0, 4, nil))
	assert.Error(t, err)
}

func TestConvertArtworks(t *testing.T) {
	root := t.TempDir()
	block := []byte{0xff, 0xff, 0x00, 0x00, 0, 0, 0, 0}
	require.NoError(t, os.WriteFile(filepath.Join(root, "circle.dds"), dds("DXT1", 4, 4, block), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.dds"), []byte("nope"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("skip"), 0o644))

	out := filepath.Join(t.TempDir(), "png")
	n, err := ConvertArtworks(root, out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.FileExists(t, filepath.Join(out, "circle.png"))
}
