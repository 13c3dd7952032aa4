package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/katalvlaran/pathforge/primarray"
	"github.com/katalvlaran/pathforge/primitive"
	"github.com/katalvlaran/pathforge/render"
	"github.com/katalvlaran/pathforge/scene"
	"github.com/katalvlaran/pathforge/stats"
	"github.com/katalvlaran/pathforge/vecmath"
)

// sceneDoc is the on-disk JSON scene description: the minimal concrete
// format needed to drive a full cmd/pathforge render, since scene
// loading itself is an external collaborator the core has no opinion
// about.
type sceneDoc struct {
	Camera struct {
		Eye    [3]float64 `json:"eye"`
		LookAt [3]float64 `json:"look_at"`
		Up     [3]float64 `json:"up"`
		FovY   float64    `json:"fov_y"`
	} `json:"camera"`
	Lights []struct {
		Type      string     `json:"type"`
		Position  [3]float64 `json:"position"`
		Intensity [3]float64 `json:"intensity"`
	} `json:"lights"`
	Spheres []struct {
		Center [3]float64 `json:"center"`
		Radius float64    `json:"radius"`
	} `json:"spheres"`
}

func vec3(a [3]float64) vecmath.Vec3 { return vecmath.Vec3{X: a[0], Y: a[1], Z: a[2]} }

// loadScene reads and parses the JSON scene description at path,
// building a *scene.Scene with a PinholeCamera, zero or more
// PointLights, and a PrimArray of Sphere primitives. Returns
// render.ErrSceneLoad, wrapped with detail, on any failure.
func loadScene(path string, width, height int, st *stats.Counters) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", render.ErrSceneLoad, err)
	}

	var doc sceneDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", render.ErrSceneLoad, err)
	}
	if doc.Camera.FovY <= 0 {
		return nil, fmt.Errorf("%w: camera.fov_y must be positive", render.ErrSceneLoad)
	}

	cam := scene.NewPinholeCamera(vec3(doc.Camera.Eye), vec3(doc.Camera.LookAt), vec3(doc.Camera.Up), doc.Camera.FovY, width, height)

	var lights []scene.Light
	for _, l := range doc.Lights {
		switch l.Type {
		case "", "point":
			lights = append(lights, scene.NewPointLight(vec3(l.Position), vec3(l.Intensity)))
		default:
			return nil, fmt.Errorf("%w: unknown light type %q", render.ErrSceneLoad, l.Type)
		}
	}

	arr := primarray.New(st)
	for _, s := range doc.Spheres {
		if s.Radius <= 0 {
			return nil, fmt.Errorf("%w: sphere radius must be positive, got %g", render.ErrSceneLoad, s.Radius)
		}
		arr.AddPrimitives(primitive.NewSphere(vec3(s.Center), s.Radius, st))
	}
	arr.Finalize()

	return scene.New(cam, lights, arr), nil
}
