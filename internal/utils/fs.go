package utils

import (
	"os"
	"path/filepath"
	"strings"
)

var AssetsPath string

// DiscoverAssets picks the asset root: the custom path when it exists,
// otherwise the first well-known location found on disk.
func DiscoverAssets(customPath string) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			AssetsPath = customPath
			Info("Using custom assets path: %s", AssetsPath)
			return
		}
		Warn("Custom assets path NOT FOUND: %s", customPath)
		Info("Falling back to automatic discovery...")
	}

	home, _ := os.UserHomeDir()

	possiblePaths := []string{
		"assets",
		filepath.Join(home, ".local/share/portfolio3d/assets"),
		"/usr/share/portfolio3d/assets",
	}

	for _, p := range possiblePaths {
		if _, err := os.Stat(p); err == nil {
			AssetsPath = p
			Info("Discovered assets at: %s", AssetsPath)
			return
		}
	}

	Warn("Could not find an assets folder in any of the expected locations.")
	Warn("Artwork textures, sounds and saved layouts will be unavailable.")
}

func ResolveAssetPath(relPath string) string {
	localPath := filepath.Join("assets", relPath)
	if _, err := os.Stat(localPath); err == nil {
		return localPath
	}

	if AssetsPath != "" {
		p := filepath.Join(AssetsPath, relPath)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return localPath // Fallback to local even if not exists
}

// FindArtworkFile looks up an artwork texture by base name in the
// artworks folders, trying the supported extensions in order.
func FindArtworkFile(name string) string {
	if name == "" {
		return ""
	}

	cleanName := strings.TrimPrefix(name, "artworks/")
	cleanName = strings.TrimSuffix(cleanName, filepath.Ext(cleanName))

	searchDirs := []string{"assets/artworks", "artworks"}
	if AssetsPath != "" {
		searchDirs = append(searchDirs, filepath.Join(AssetsPath, "artworks"))
	}

	for _, dir := range searchDirs {
		for _, ext := range []string{".dds", ".png", ".jpg", ".jpeg"} {
			p := filepath.Join(dir, cleanName+ext)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}
