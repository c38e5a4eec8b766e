package shader

import (
	"errors"
	"fmt"

	"portfolio3d/internal/utils"
	"portfolio3d/internal/vision"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var ErrCompile = errors.New("shader failed to compile")

// Program is a compiled shader with its uniform locations resolved.
type Program struct {
	Name      string
	Shader    rl.Shader
	Locations map[string]int32
}

func load(name, vs, fs string, names []string) (Program, error) {
	s := rl.LoadShaderFromMemory(vs, fs)
	if !rl.IsShaderValid(s) {
		return Program{}, fmt.Errorf("%s: %w", name, ErrCompile)
	}
	p := Program{Name: name, Shader: s, Locations: ResolveLocations(s, names)}
	for n, loc := range p.Locations {
		if loc == -1 {
			utils.Debug("Shader %s: uniform %s optimised out", name, n)
		}
	}
	return p, nil
}

// Ghost holds the two programs that draw vision ghosts.
type Ghost struct {
	Glow    Program
	Outline Program
}

// LoadGhost compiles the glow and outline programs. It needs a GL context.
func LoadGhost() (*Ghost, error) {
	glow, err := load("vision-glow", ghostVertex, glowFragment, glowNames)
	if err != nil {
		return nil, err
	}
	outline, err := load("vision-outline", ghostVertex, outlineFragment, outlineNames)
	if err != nil {
		rl.UnloadShader(glow.Shader)
		return nil, err
	}
	utils.Info("Ghost shaders ready")
	return &Ghost{Glow: glow, Outline: outline}, nil
}

func (g *Ghost) Unload() {
	rl.UnloadShader(g.Glow.Shader)
	rl.UnloadShader(g.Outline.Shader)
}

// Apply uploads us to the program. It must run between BeginShaderMode and
// the draw calls it affects.
func (p Program) Apply(us []Uniform) {
	for _, u := range us {
		loc, ok := p.Locations[u.Name]
		if !ok || loc == -1 {
			continue
		}
		rl.SetShaderValue(p.Shader, loc, u.Values, u.Type)
	}
}

func (g *Ghost) ApplyGlow(m *vision.GlowMaterial) {
	g.Glow.Apply(GlowUniforms(m))
}

func (g *Ghost) ApplyOutline(m *vision.OutlineMaterial) {
	g.Outline.Apply(OutlineUniforms(m))
}
