package main

import (
	"os"
	"path/filepath"
	"time"

	"portfolio3d/internal/convert"
	"portfolio3d/internal/utils"
	"portfolio3d/internal/vision"
	"portfolio3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const unpackDir = "tmp"

// unpackAssets extracts an asset bundle once and decodes its DDS artworks so
// the gallery can find them by name.
func unpackAssets(pkgPath string) error {
	if _, err := os.Stat(unpackDir); os.IsNotExist(err) {
		utils.Info("Unpacking %s...", pkgPath)
		if err := convert.ExtractBundle(pkgPath, unpackDir); err != nil {
			return err
		}
	}
	if _, err := convert.ConvertArtworks(unpackDir, filepath.Join(unpackDir, "artworks")); err != nil {
		utils.Warn("Artwork conversion incomplete: %v", err)
	}
	if utils.AssetsPath == "" {
		utils.AssetsPath = unpackDir
	}
	return nil
}

// loadPreviews loads the gallery textures that exist on disk, keyed by art
// index. Must run after the window is open.
func loadPreviews() map[int]rl.Texture2D {
	previews := make(map[int]rl.Texture2D)
	for i, art := range artPieces {
		path := utils.FindArtworkFile(art.Shape)
		if path == "" {
			utils.Debug("No artwork texture for %s", art.Shape)
			continue
		}
		tex, err := convert.LoadArtworkTexture(path)
		if err != nil {
			utils.Error("Failed to load artwork for %s from %s: %v", art.Name, path, err)
			continue
		}
		rl.SetTextureFilter(tex, rl.FilterBilinear)
		previews[i] = tex
	}
	return previews
}

func unloadPreviews(previews map[int]rl.Texture2D) {
	for _, tex := range previews {
		rl.UnloadTexture(tex)
	}
}

// applyLayout moves the main world objects to a saved layout.
func applyLayout(w *World, l world.Layout) {
	missing := world.Apply(l, w.Registry, vision.ContextMain)
	for _, p := range missing {
		utils.Warn("Layout places unknown object %q", p.Model)
	}
	utils.Info("Applied layout %s (%d objects)", l.Version, len(l.Objects)-len(missing))
}

func loadLayoutFile(w *World, path string) error {
	l, err := world.LoadLayout(path)
	if err != nil {
		return err
	}
	applyLayout(w, l)
	return nil
}

func exportLayout(w *World, path string) error {
	l := world.Export(w.Registry, vision.ContextMain, time.Now())
	if err := world.SaveLayout(path, l); err != nil {
		return err
	}
	utils.Info("Exported %d objects to %s", len(l.Objects), path)
	return nil
}
