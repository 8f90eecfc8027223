package scene

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/asset"
	"github.com/Carmen-Shannon/oxy-orbs/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbs/engine/game_object"
	"github.com/Carmen-Shannon/oxy-orbs/engine/input"
	"github.com/Carmen-Shannon/oxy-orbs/engine/light"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-orbs/engine/rendermode"
)

// Scene owns the nodes, lights and cameras of a world together with the material
// registry and renderer settings they are drawn with. Each frame the scene is
// updated from input, extracted into a renderer.FrameView and rendered.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the camera the scene renders from, the first one added.
	//
	// Returns:
	//   - camera.Camera: the primary camera, nil when the scene has none
	Camera() camera.Camera

	// Cameras returns every camera in the scene.
	//
	// Returns:
	//   - []camera.Camera: the cameras in insertion order
	Cameras() []camera.Camera

	// AddCamera adds a camera. The first camera added becomes the primary camera.
	//
	// Parameters:
	//   - cam: the camera to add
	AddCamera(cam camera.Camera)

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// SetRenderer replaces the scene's renderer.
	//
	// Parameters:
	//   - r: the new renderer
	SetRenderer(r renderer.Renderer)

	// Materials returns the registry materials are shared through.
	//
	// Returns:
	//   - material.Registry: the scene's material registry
	Materials() material.Registry

	// Settings returns the renderer settings holding the default opaque method.
	//
	// Returns:
	//   - rendermode.Settings: the scene's renderer settings
	Settings() rendermode.Settings

	// Assets returns the asset server the scene loads from, or nil.
	Assets() asset.Server

	// Add adds a GameObject to the scene and assigns it an ID. A light attached
	// to the object is tracked with it.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the assigned object ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a GameObject by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a GameObject by ID.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Count returns the number of objects in the scene.
	//
	// Returns:
	//   - int: count of GameObjects
	Count() int

	// Objects returns every object ordered by ID.
	Objects() []game_object.GameObject

	// Clear removes all objects and free-standing lights from the scene.
	// Cameras and materials are kept.
	Clear()

	// AddLight adds a free-standing light to the scene.
	//
	// Parameters:
	//   - l: the Light to add
	AddLight(l light.Light)

	// Lights returns the free-standing lights followed by the lights attached to objects.
	//
	// Returns:
	//   - []light.Light: every light in the scene
	Lights() []light.Light

	// SetAmbient sets the ambient light colour in linear RGB.
	SetAmbient(c common.Vec3)

	// SetClearColor sets the background colour.
	SetClearColor(c common.Color)

	// CullingDisabled returns whether frustum culling is explicitly disabled for this scene.
	//
	// Returns:
	//   - bool: true if culling is disabled
	CullingDisabled() bool

	// SetCullingDisabled enables or disables frustum culling during extraction.
	//
	// Parameters:
	//   - disabled: true to disable culling, false to enable it
	SetCullingDisabled(disabled bool)

	// Update advances the camera controllers, moves attached lights to their
	// parents and recomputes the camera matrices.
	//
	// Parameters:
	//   - kb: the keyboard, already synced for this frame
	//   - mouse: the mouse, already synced for this frame
	//   - deltaTime: elapsed time since the last frame in seconds
	Update(kb input.Keyboard, mouse input.Mouse, deltaTime float32)

	// Extract builds the renderer input for the primary camera.
	//
	// Parameters:
	//   - width: the target width in pixels
	//   - height: the target height in pixels
	//
	// Returns:
	//   - renderer.FrameView: the visible draws, the lights and the camera state
	//   - error: an error if the scene has no camera
	Extract(width, height int) (renderer.FrameView, error)

	// Render extracts the scene and submits it to the renderer.
	//
	// Parameters:
	//   - width: the target width in pixels
	//   - height: the target height in pixels
	//
	// Returns:
	//   - error: an error if extraction or rendering fails
	Render(width, height int) error
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.Mutex

	name   string
	active bool

	cameras  []camera.Camera
	renderer renderer.Renderer
	assets   asset.Server

	materials material.Registry
	settings  rendermode.Settings

	objects map[uint64]game_object.GameObject
	lights  []light.Light
	nextID  uint64

	ambient         common.Vec3
	clearColor      common.Color
	cullingDisabled bool
}

var _ Scene = &scene{}

// NewScene creates a new Scene with the provided options.
// Without options the scene is active, has its own material registry and starts
// with the Deferred opaque method.
//
// Parameters:
//   - name: the scene's identifier
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:         &sync.Mutex{},
		name:       name,
		active:     true,
		materials:  material.NewRegistry(),
		settings:   rendermode.NewSettings(rendermode.Deferred),
		objects:    make(map[uint64]game_object.GameObject),
		nextID:     1,
		ambient:    common.Vec3{0.02, 0.02, 0.02},
		clearColor: common.RGB(0, 0, 0),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cameras) == 0 {
		return nil
	}
	return s.cameras[0]
}

func (s *scene) Cameras() []camera.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]camera.Camera, len(s.cameras))
	copy(out, s.cameras)
	return out
}

func (s *scene) AddCamera(cam camera.Camera) {
	if cam == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cameras = append(s.cameras, cam)
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderer = r
}

func (s *scene) Materials() material.Registry {
	return s.materials
}

func (s *scene) Settings() rendermode.Settings {
	return s.settings
}

func (s *scene) Assets() asset.Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assets
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(obj)
}

// add registers obj. Caller must hold the mutex.
func (s *scene) add(obj game_object.GameObject) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	} else if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	s.objects[obj.ID()] = obj
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, id)
}

func (s *scene) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedObjects()
}

// sortedObjects returns the objects ordered by ID. Caller must hold the mutex.
func (s *scene) sortedObjects() []game_object.GameObject {
	out := make([]game_object.GameObject, 0, len(s.objects))
	for _, obj := range s.objects {
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = make(map[uint64]game_object.GameObject)
	s.lights = nil
}

func (s *scene) AddLight(l light.Light) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) Lights() []light.Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allLights()
}

// allLights collects free-standing and attached lights. Caller must hold the mutex.
func (s *scene) allLights() []light.Light {
	out := make([]light.Light, 0, len(s.lights)+len(s.objects))
	out = append(out, s.lights...)
	for _, obj := range s.sortedObjects() {
		if l := obj.Light(); l != nil {
			out = append(out, l)
		}
	}
	return out
}

func (s *scene) SetAmbient(c common.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambient = c
}

func (s *scene) SetClearColor(c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearColor = c
}

func (s *scene) CullingDisabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cullingDisabled
}

func (s *scene) SetCullingDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cullingDisabled = disabled
}

func (s *scene) Update(kb input.Keyboard, mouse input.Mouse, deltaTime float32) {
	s.mu.Lock()
	cams := make([]camera.Camera, len(s.cameras))
	copy(cams, s.cameras)
	objects := s.sortedObjects()
	s.mu.Unlock()

	for _, cam := range cams {
		if ctrl := cam.Controller(); ctrl != nil {
			ctrl.Update(kb, mouse, deltaTime)
		}
	}

	for _, obj := range objects {
		if l := obj.Light(); l != nil {
			l.SetPosition(obj.LightWorldPosition())
		}
	}

	for _, cam := range cams {
		cam.Update()
	}
}

func (s *scene) Extract(width, height int) (renderer.FrameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cameras) == 0 {
		return renderer.FrameView{}, fmt.Errorf("scene %s: no camera", s.name)
	}
	cam := s.cameras[0]

	view := renderer.FrameView{
		View:       camera.NewGPUView(cam, uint32(max(width, 0)), uint32(max(height, 0))),
		Prepasses:  cam.Prepasses(),
		HDR:        cam.HDR(),
		Fxaa:       cam.Fxaa(),
		Method:     s.settings.Method(),
		ClearColor: s.clearColor,
		Ambient:    s.ambient,
	}

	for _, l := range s.allLights() {
		if l.Enabled() {
			view.Lights = append(view.Lights, l)
		}
	}

	vp := cam.ViewProjectionMatrix()
	frustum := common.ExtractFrustum(vp[:])

	for _, obj := range s.sortedObjects() {
		if !obj.Enabled() || obj.Model() == nil {
			continue
		}
		mat, ok := s.materials.Get(obj.Material())
		if !ok {
			continue
		}
		if !s.cullingDisabled && !frustum.ContainsSphere(obj.Position(), boundingRadius(obj)) {
			continue
		}
		view.Draws = append(view.Draws, renderer.DrawItem{
			ObjectID:       obj.ID(),
			Model:          obj.Model(),
			Material:       mat,
			MaterialHandle: obj.Material(),
			World:          obj.WorldMatrix(),
		})
	}
	return view, nil
}

// boundingRadius scales the model's bounding sphere by the largest axis scale.
func boundingRadius(obj game_object.GameObject) float32 {
	sc := obj.Scale()
	m := max(abs(sc[0]), abs(sc[1]), abs(sc[2]))
	return obj.Model().BoundingRadius() * m
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func (s *scene) Render(width, height int) error {
	r := s.Renderer()
	if r == nil {
		return fmt.Errorf("scene %s: no renderer", s.Name())
	}
	view, err := s.Extract(width, height)
	if err != nil {
		return err
	}
	return r.Render(view)
}
