package world

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"portfolio3d/internal/scene"
	"portfolio3d/internal/utils"
	"portfolio3d/internal/vision"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pierrec/lz4/v4"
)

const LayoutVersion = "1.0"

// lz4 frame magic, little endian.
var lz4Magic = []byte{0x04, 0x22, 0x4d, 0x18}

type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

func toVec3(v rl.Vector3) Vec3 { return Vec3{v.X, v.Y, v.Z} }
func (v Vec3) Vector3() rl.Vector3 { return rl.NewVector3(v.X, v.Y, v.Z) }

// Placement is one exported world object.
type Placement struct {
	Model       string `json:"modelName"`
	Kind        string `json:"kind"`
	Label       string `json:"label,omitempty"`
	Destination string `json:"destination,omitempty"`
	ArtIndex    int    `json:"artIndex,omitempty"`
	Collectible bool   `json:"collectible,omitempty"`
	Position    Vec3   `json:"position"`
	Rotation    Vec3   `json:"rotation"`
	Scale       Vec3   `json:"scale"`
}

type Layout struct {
	Version      string      `json:"version"`
	Created      time.Time   `json:"created"`
	IsProduction bool        `json:"isProduction"`
	Objects      []Placement `json:"objects"`
}

// Export snapshots the registered objects of ctx.
func Export(r *Registry, ctx vision.SceneContext, now time.Time) Layout {
	l := Layout{Version: LayoutVersion, Created: now.UTC(), IsProduction: true}
	for _, n := range r.Objects(ctx) {
		m := r.meta[n]
		l.Objects = append(l.Objects, Placement{
			Model:       n.Name,
			Kind:        m.Kind.String(),
			Label:       m.Label,
			Destination: string(m.Destination),
			ArtIndex:    m.ArtIndex,
			Collectible: m.Collectible,
			Position:    toVec3(n.Position),
			Rotation:    toVec3(n.Rotation),
			Scale:       toVec3(n.Scale),
		})
	}
	return l
}

// Apply moves registered nodes of ctx to the placements naming them and
// returns the placements that matched nothing.
func Apply(l Layout, r *Registry, ctx vision.SceneContext) []Placement {
	byName := make(map[string]*scene.Node)
	for _, n := range r.Objects(ctx) {
		byName[n.Name] = n
	}
	var missing []Placement
	for _, p := range l.Objects {
		n, ok := byName[p.Model]
		if !ok {
			missing = append(missing, p)
			continue
		}
		n.Position = p.Position.Vector3()
		n.Rotation = p.Rotation.Vector3()
		n.Scale = p.Scale.Vector3()
	}
	return missing
}

// WriteLayout encodes l as JSON inside an lz4 frame.
func WriteLayout(w io.Writer, l Layout) error {
	zw := lz4.NewWriter(w)
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to flush layout: %w", err)
	}
	return nil
}

// ReadLayout accepts both lz4-framed and plain JSON layouts.
func ReadLayout(r io.Reader) (Layout, error) {
	br := bufio.NewReader(r)
	var src io.Reader = br
	if head, err := br.Peek(len(lz4Magic)); err == nil && bytes.Equal(head, lz4Magic) {
		src = lz4.NewReader(br)
	}

	var l Layout
	if err := json.NewDecoder(src).Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("failed to decode layout: %w", err)
	}
	if l.Version == "" {
		return Layout{}, fmt.Errorf("layout has no version")
	}
	return l, nil
}

func SaveLayout(path string, l Layout) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteLayout(f, l); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	utils.Info("Exported %d objects to %s", len(l.Objects), path)
	return nil
}

func LoadLayout(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, err
	}
	defer f.Close()
	l, err := ReadLayout(f)
	if err != nil {
		return Layout{}, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}
