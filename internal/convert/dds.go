package convert

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"portfolio3d/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mauserzjeh/dxt"
)

var ErrNotDDS = errors.New("not a DDS file")

const ddsHeaderSize = 128

// DecodeDDS decodes the top mip level of a DXT1 or DXT5 compressed DDS file.
func DecodeDDS(data []byte) (*image.RGBA, error) {
	if len(data) < ddsHeaderSize || string(data[:4]) != "DDS " {
		return nil, ErrNotDDS
	}
	height := binary.LittleEndian.Uint32(data[12:])
	width := binary.LittleEndian.Uint32(data[16:])
	fourCC := string(data[84:88])
	if width == 0 || height == 0 || width > 16384 || height > 16384 {
		return nil, fmt.Errorf("dds: bad size %dx%d", width, height)
	}

	blocks := ((width + 3) / 4) * ((height + 3) / 4)
	payload := data[ddsHeaderSize:]

	var (
		pix []byte
		err error
	)
	switch fourCC {
	case "DXT1":
		if uint32(len(payload)) < blocks*8 {
			return nil, fmt.Errorf("dds: DXT1 payload too short (%d bytes)", len(payload))
		}
		pix, err = dxt.DecodeDXT1(payload[:blocks*8], uint(width), uint(height))
	case "DXT5":
		if uint32(len(payload)) < blocks*16 {
			return nil, fmt.Errorf("dds: DXT5 payload too short (%d bytes)", len(payload))
		}
		pix, err = dxt.DecodeDXT5(payload[:blocks*16], uint(width), uint(height))
	default:
		return nil, fmt.Errorf("dds: unsupported format %q", fourCC)
	}
	if err != nil {
		return nil, fmt.Errorf("dds: %w", err)
	}
	if len(pix) < int(width*height*4) {
		return nil, fmt.Errorf("dds: decoder returned %d bytes for %dx%d", len(pix), width, height)
	}

	utils.Debug("Decoded %s %dx%d", fourCC, width, height)
	return &image.RGBA{
		Pix:    pix,
		Stride: int(width * 4),
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}, nil
}

// LoadArtworkTexture uploads an artwork file to the GPU. DDS files are
// decoded here; other formats go through raylib's own loaders.
func LoadArtworkTexture(path string) (rl.Texture2D, error) {
	if !strings.EqualFold(filepath.Ext(path), ".dds") {
		tex := rl.LoadTexture(path)
		if tex.ID == 0 {
			return tex, fmt.Errorf("failed to load texture %s", path)
		}
		return tex, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rl.Texture2D{}, err
	}
	img, err := DecodeDDS(data)
	if err != nil {
		return rl.Texture2D{}, fmt.Errorf("%s: %w", path, err)
	}
	rlImg := rl.NewImageFromImage(img)
	defer rl.UnloadImage(rlImg)
	return rl.LoadTextureFromImage(rlImg), nil
}

// ConvertArtworks decodes every .dds under root to a PNG in outDir, a few
// files at a time. It returns how many were converted.
func ConvertArtworks(root, outDir string) (int, error) {
	utils.Info("Converting artworks under %s", root)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return 0, err
	}

	var converted int32
	var wg sync.WaitGroup
	const maxConcurrency = 4
	sem := make(chan struct{}, maxConcurrency)

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !strings.EqualFold(filepath.Ext(path), ".dds") {
			return nil
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(p string) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := convertOne(p, outDir); err != nil {
				utils.Error("Failed to convert %s: %v", p, err)
				return
			}
			atomic.AddInt32(&converted, 1)
		}(path)
		return nil
	})
	wg.Wait()

	utils.Info("Converted %d artworks", converted)
	return int(converted), err
}

func convertOne(path, outDir string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	img, err := DecodeDDS(data)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".png"
	out, err := os.Create(filepath.Join(outDir, name))
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
