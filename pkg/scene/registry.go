package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned by Build for names that are not registered
var ErrUnknownScene = errors.New("scene: unknown built-in scene")

// Builder constructs a scene for the given viewport aspect ratio
type Builder func(aspectRatio float64) *Scene

// Info describes a built-in scene
type Info struct {
	Name        string
	Description string
	build       Builder
}

var builtins = map[string]Info{
	"default": {Name: "default", Description: "Spheres of every material on a ground plane under a sky gradient", build: NewDefaultScene},
	"cornell": {Name: "cornell", Description: "Cornell box with an area light and two rotated boxes", build: NewCornellScene},
	"glass":   {Name: "glass", Description: "Glass and marble spheres on a checker floor", build: NewGlassScene},
	"random":  {Name: "random", Description: "Grid of small random spheres around three large ones", build: NewRandomSpheresScene},
	"mesh":    {Name: "mesh", Description: "Transformed triangle meshes lit by an area light", build: NewMeshScene},
	"volumes": {Name: "volumes", Description: "Smoke-filled glass and global fog over a field of boxes", build: NewVolumesScene},
}

// List returns the built-in scenes sorted by name
func List() []Info {
	infos := make([]Info, 0, len(builtins))
	for _, info := range builtins {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// Build constructs the named built-in scene
func Build(name string, aspectRatio float64) (*Scene, error) {
	info, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	s := info.build(aspectRatio)
	s.Name = name
	return s, nil
}
