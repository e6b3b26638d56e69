// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Light    LightConfig    `yaml:"light"`
	Render   RenderConfig   `yaml:"render"`
	Scene    SceneConfig    `yaml:"scene"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// Camera modes.
const (
	CameraTrack = "track" // fixed eye looking at Target
	CameraOrbit = "orbit" // mouse-driven orbit around Target
)

// CameraConfig holds the view and projection settings.
type CameraConfig struct {
	Mode       string     `yaml:"mode"`
	Eye        [3]float32 `yaml:"eye"`
	Up         [3]float32 `yaml:"up"`
	FOVDegrees float32    `yaml:"fov_degrees"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	Target     string     `yaml:"target"` // object name; empty looks at the origin
}

// LightConfig holds the directional light. Sun, when set, replaces Direction.
type LightConfig struct {
	Direction [3]float32 `yaml:"direction"` // towards the light
	Color     [3]float32 `yaml:"color"`
	Sun       *SunConfig `yaml:"sun,omitempty"`
}

// SunConfig places the light by angles in degrees.
type SunConfig struct {
	Longitude float32 `yaml:"longitude"` // around Y, from +Z towards +X
	Latitude  float32 `yaml:"latitude"`  // above the horizon
}

// RenderConfig holds per-frame draw state.
type RenderConfig struct {
	ClearColor [4]float32 `yaml:"clear_color"`
	Background [4]float32 `yaml:"background"`
	DepthTest  string     `yaml:"depth_test"`
	DepthWrite bool       `yaml:"depth_write"`
	Cull       string     `yaml:"cull"`
}

// SceneConfig lists what to load.
type SceneConfig struct {
	AssetRoots []string       `yaml:"asset_roots"`
	Shaders    ShaderConfig   `yaml:"shaders"`
	Objects    []ObjectConfig `yaml:"objects"`
}

// ShaderConfig names the shader sources. Empty paths select the built-in
// Lambert program.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

// ObjectConfig describes one scene object.
type ObjectConfig struct {
	Name string `yaml:"name"`
	// Model is a file path (.obj, .gltf, .glb) resolved against the asset
	// roots, or builtin:cube / builtin:plane.
	Model      string `yaml:"model"`
	Object     int    `yaml:"object"`      // object or mesh index inside the file
	ObjectName string `yaml:"object_name"` // OBJ object name; overrides Object
	// SmoothNormals averages normals across vertices at the same position.
	SmoothNormals bool             `yaml:"smooth_normals"`
	Scale         [3]float32       `yaml:"scale"` // zero means 1
	Translate     [3]float32       `yaml:"translate"`
	Materials     []MaterialConfig `yaml:"materials"`
	Orbit         *OrbitConfig     `yaml:"orbit,omitempty"`
}

// MaterialConfig is one material slot.
type MaterialConfig struct {
	Name   string     `yaml:"name"`
	Albedo [3]float32 `yaml:"albedo"`
}

// OrbitConfig animates an object around the origin.
type OrbitConfig struct {
	Radius float32 `yaml:"radius"` // multiple of the object's Z scale
	Speed  float32 `yaml:"speed"`  // radians per second
}

// SnapshotConfig controls headless rendering output.
type SnapshotConfig struct {
	Dir         string `yaml:"dir"`
	Prefix      string `yaml:"prefix"`
	Format      string `yaml:"format"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Frames      int    `yaml:"frames"`
	Supersample int    `yaml:"supersample"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config reproducing the chess board demo.
func Default() *Config {
	piece := [3]float32{0.1, 0.1, 0.1}
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1920,
			Height:     1080,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			Mode:       CameraTrack,
			Eye:        [3]float32{0, 1, -1},
			Up:         [3]float32{0, 1, 0},
			FOVDegrees: 60,
			Near:       0.1,
			Far:        1024,
			Target:     "rook",
		},
		Light: LightConfig{
			Direction: [3]float32{1.4, 0.4, -0.7},
			Color:     [3]float32{1, 1, 1},
		},
		Render: RenderConfig{
			ClearColor: [4]float32{0.6, 0.8, 0.2, 1},
			Background: [4]float32{0, 0, 0, 1},
			DepthTest:  "if_less",
			DepthWrite: true,
			Cull:       "none",
		},
		Scene: SceneConfig{
			AssetRoots: []string{"assets"},
			Objects: []ObjectConfig{
				{
					Name:      "board",
					Model:     "models/board.obj",
					Scale:     piece,
					Translate: [3]float32{0, -0.5, 0},
					Materials: []MaterialConfig{{Name: "board", Albedo: [3]float32{0.8, 0.8, 0.8}}},
				},
				{
					Name:      "king",
					Model:     "models/king.obj",
					Scale:     piece,
					Materials: []MaterialConfig{{Name: "king", Albedo: [3]float32{0.3, 0.1, 1.0}}},
				},
				{
					Name:      "knight",
					Model:     "models/knight.obj",
					Scale:     piece,
					Materials: []MaterialConfig{{Name: "knight", Albedo: [3]float32{0.7, 0.6, 0.1}}},
					Orbit:     &OrbitConfig{Radius: 2, Speed: 0.25},
				},
				{
					Name:      "rook",
					Model:     "models/rook.obj",
					Scale:     piece,
					Materials: []MaterialConfig{{Name: "rook", Albedo: [3]float32{0.7, 0.3, 0.1}}},
					Orbit:     &OrbitConfig{Radius: 3, Speed: 0.5},
				},
			},
		},
		Snapshot: SnapshotConfig{
			Dir:         "snapshots",
			Prefix:      "frame",
			Format:      "png",
			Width:       1920,
			Height:      1080,
			Frames:      1,
			Supersample: 1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
