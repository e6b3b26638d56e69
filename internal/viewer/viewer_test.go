package viewer

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/boardview/internal/assets"
	"github.com/Faultbox/boardview/internal/config"
	"github.com/Faultbox/boardview/internal/engine/gfx"
	"github.com/Faultbox/boardview/internal/engine/gfx/gfxtest"
	"github.com/Faultbox/boardview/internal/engine/gfx/soft"
	"github.com/Faultbox/boardview/internal/engine/model"
	"github.com/Faultbox/boardview/pkg/math"
)

const triangleOBJ = `o tri
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

const twoObjectOBJ = `o base
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
f 1 2 3
o lid
f 2 4 3
f 1 2 4
`

func builtinScene() config.SceneConfig {
	return config.SceneConfig{
		Objects: []config.ObjectConfig{
			{
				Name:      "floor",
				Model:     BuiltinPlane,
				Scale:     [3]float32{4, 1, 4},
				Translate: [3]float32{0, -0.5, 0},
				Materials: []config.MaterialConfig{{Name: "floor", Albedo: [3]float32{0.8, 0.8, 0.8}}},
			},
			{
				Name:  "box",
				Model: BuiltinCube,
				Scale: [3]float32{0.5, 0.5, 0.5},
				Materials: []config.MaterialConfig{
					{Name: "red", Albedo: [3]float32{1, 0, 0}},
					{Name: "rest", Albedo: [3]float32{0, 0, 1}},
				},
				Orbit: &config.OrbitConfig{Radius: 2, Speed: 1},
			},
		},
	}
}

func TestLoadScene(t *testing.T) {
	dev := gfxtest.New()
	prog, err := LoadProgram(dev, assets.NewManager(), config.ShaderConfig{})
	if err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	sc, err := LoadScene(dev, assets.NewManager(), builtinScene(), prog)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	prog.Release()

	if sc.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", sc.Len())
	}
	if prog.Refs() != 3 {
		t.Errorf("Refs() = %d, want 3 (one per material)", prog.Refs())
	}

	floor := sc.Find("floor")
	if got := floor.Transform.Scale(); got != math.V3(4, 1, 4) {
		t.Errorf("floor scale = %v, want (4,1,4)", got)
	}
	if got := floor.Transform.Position(); got != math.V3(0, -0.5, 0) {
		t.Errorf("floor position = %v, want (0,-0.5,0)", got)
	}

	box := sc.Find("box")
	ranges := box.Mesh.DrawRanges()
	if len(ranges) != 2 {
		t.Fatalf("box ranges = %d, want 2", len(ranges))
	}
	if ranges[0].Count != 6 || ranges[1].First != 6 || ranges[1].Count != 30 {
		t.Errorf("box ranges = %+v, want {0,6} {6,30}", ranges)
	}

	sc.Close()
	if prog.Refs() != 0 {
		t.Errorf("Refs() after Close = %d, want 0", prog.Refs())
	}
	if len(dev.DeletedPrograms) != 1 {
		t.Errorf("deleted programs = %d, want 1", len(dev.DeletedPrograms))
	}
}

func TestLoadSceneDefaultMaterial(t *testing.T) {
	dev := gfxtest.New()
	prog, _ := LoadProgram(dev, assets.NewManager(), config.ShaderConfig{})
	defer prog.Release()

	cfg := config.SceneConfig{Objects: []config.ObjectConfig{{Name: "c", Model: BuiltinCube}}}
	sc, err := LoadScene(dev, assets.NewManager(), cfg, prog)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	defer sc.Close()

	mats := sc.Find("c").Mesh.Materials()
	if len(mats) != 1 || mats[0].Albedo != gfx.ColorWhite {
		t.Errorf("Materials() = %+v, want one white material", mats)
	}
	if got := sc.Find("c").Transform.Scale(); got != math.Fill(1) {
		t.Errorf("omitted scale = %v, want 1", got)
	}
}

func TestLoadSceneFromFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "models"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "models", "tri.obj"), []byte(triangleOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	dev := gfxtest.New()
	prog, _ := LoadProgram(dev, assets.NewManager(), config.ShaderConfig{})
	defer prog.Release()

	cfg := config.SceneConfig{Objects: []config.ObjectConfig{{Name: "tri", Model: "models/tri.obj"}}}
	sc, err := LoadScene(dev, assets.NewManager(dir), cfg, prog)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	defer sc.Close()

	if got := sc.Find("tri").Mesh.IndexCount(); got != 3 {
		t.Errorf("IndexCount() = %d, want 3", got)
	}
}

func TestLoadSceneObjectByName(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pair.obj"), []byte(twoObjectOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	dev := gfxtest.New()
	prog, _ := LoadProgram(dev, assets.NewManager(), config.ShaderConfig{})
	defer prog.Release()

	cfg := config.SceneConfig{Objects: []config.ObjectConfig{{Name: "lid", Model: "pair.obj", ObjectName: "lid"}}}
	sc, err := LoadScene(dev, assets.NewManager(dir), cfg, prog)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	defer sc.Close()

	if got := sc.Find("lid").Mesh.IndexCount(); got != 6 {
		t.Errorf("IndexCount() = %d, want 6", got)
	}

	cfg.Objects[0].ObjectName = "handle"
	if _, err := LoadScene(dev, assets.NewManager(dir), cfg, prog); !errors.Is(err, model.ErrInvalidGeometry) {
		t.Errorf("LoadScene(handle) error = %v, want ErrInvalidGeometry", err)
	}
}

func TestLoadSceneSmoothNormals(t *testing.T) {
	dev := gfxtest.New()
	prog, _ := LoadProgram(dev, assets.NewManager(), config.ShaderConfig{})
	defer prog.Release()

	cfg := config.SceneConfig{Objects: []config.ObjectConfig{{Name: "c", Model: BuiltinCube, SmoothNormals: true}}}
	sc, err := LoadScene(dev, assets.NewManager(), cfg, prog)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	defer sc.Close()

	// Every cube corner is shared by three faces, so each normal points
	// along a diagonal.
	const diag = 0.57735026
	mesh := dev.Meshes[sc.Find("c").Mesh.Buffers()]
	for i, v := range mesh.Vertices {
		n := v.Normal
		for _, c := range []float32{n.X, n.Y, n.Z} {
			if c < 0 {
				c = -c
			}
			if c < diag-1e-5 || c > diag+1e-5 {
				t.Fatalf("Vertices[%d].Normal = %v, want a unit diagonal", i, n)
			}
		}
	}
}

func TestLoadSceneErrors(t *testing.T) {
	tests := []struct {
		name string
		obj  config.ObjectConfig
		want error
	}{
		{"unknown extension", config.ObjectConfig{Name: "x", Model: "x.fbx"}, ErrUnknownModel},
		{"missing file", config.ObjectConfig{Name: "x", Model: "missing.obj"}, assets.ErrNotFound},
		{"missing gltf", config.ObjectConfig{Name: "x", Model: "missing.glb"}, assets.ErrNotFound},
		{"too many materials", config.ObjectConfig{
			Name:      "x",
			Model:     BuiltinPlane,
			Materials: []config.MaterialConfig{{Name: "a"}, {Name: "b"}},
		}, model.ErrTooManyMaterials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := gfxtest.New()
			prog, _ := LoadProgram(dev, assets.NewManager(), config.ShaderConfig{})
			defer prog.Release()

			cfg := config.SceneConfig{Objects: []config.ObjectConfig{
				{Name: "ok", Model: BuiltinCube},
				tt.obj,
			}}
			_, err := LoadScene(dev, assets.NewManager(t.TempDir()), cfg, prog)
			if !errors.Is(err, tt.want) {
				t.Errorf("LoadScene() error = %v, want %v", err, tt.want)
			}
			// Every mesh uploaded before the failure is freed again.
			uploads := 0
			for _, op := range dev.Ops {
				if op == "upload" {
					uploads++
				}
			}
			if len(dev.DeletedMeshes) != uploads {
				t.Errorf("deleted %d of %d uploaded meshes", len(dev.DeletedMeshes), uploads)
			}
		})
	}
}

func TestOrbiter(t *testing.T) {
	dev := gfxtest.New()
	prog, _ := LoadProgram(dev, assets.NewManager(), config.ShaderConfig{})
	defer prog.Release()
	sc, err := LoadScene(dev, assets.NewManager(), builtinScene(), prog)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	defer sc.Close()

	orbiters := Orbiters(sc, builtinScene())
	if len(orbiters) != 1 || orbiters[0].Object.Name != "box" {
		t.Fatalf("Orbiters() = %v, want box only", orbiters)
	}

	o := orbiters[0]
	// First tick places at angle 0: radius 2 * scale.z 0.5 on +Z.
	o.Tick(0.5)
	if got := o.Object.Transform.Position(); !got.ApproxEqual(math.V3(0, 0, 1), 1e-6) {
		t.Errorf("position after first tick = %v, want (0,0,1)", got)
	}
	if o.Angle != 0.5 {
		t.Errorf("Angle = %v, want 0.5", o.Angle)
	}

	o.Angle = 3.14159265 / 2
	o.Tick(0)
	if got := o.Object.Transform.Position(); !got.ApproxEqual(math.V3(1, 0, 0), 1e-5) {
		t.Errorf("position at quarter turn = %v, want (1,0,0)", got)
	}
}

func TestBuildFrame(t *testing.T) {
	cfg := config.Default()
	cam := NewCamera(cfg.Camera)

	frame, err := BuildFrame(cfg, cam, math.V3(0, 0, 1), 1920, 1080)
	if err != nil {
		t.Fatalf("BuildFrame: %v", err)
	}
	if frame.State != gfx.DefaultDrawState() {
		t.Errorf("State = %+v, want default", frame.State)
	}
	wantLight, _ := math.V3(1.4, 0.4, -0.7).Normalize()
	if !frame.LightDir.ApproxEqual(wantLight, 1e-6) {
		t.Errorf("LightDir = %v, want %v", frame.LightDir, wantLight)
	}

	want, _ := math.PerspectiveMatrix(1920, 1080, 3.14159265/3, 1024, 0.1)
	if !frame.Projection.ApproxEqual(want, 1e-5) {
		t.Errorf("Projection = %v, want %v", frame.Projection, want)
	}

	// Looking at the eye itself is degenerate.
	if _, err := BuildFrame(cfg, cam, Vec(cfg.Camera.Eye), 1920, 1080); !errors.Is(err, math.ErrZeroVector) {
		t.Errorf("BuildFrame(target=eye) error = %v, want ErrZeroVector", err)
	}
	if _, err := BuildFrame(cfg, cam, math.Vec3{}, 0, 1080); !errors.Is(err, math.ErrZeroViewport) {
		t.Errorf("BuildFrame(width=0) error = %v, want ErrZeroViewport", err)
	}
}

func TestBuildFrameLight(t *testing.T) {
	tests := []struct {
		name  string
		light config.LightConfig
		want  math.Vec3
	}{
		{"direction is normalized", config.LightConfig{Direction: [3]float32{0, 0, 2}}, math.V3(0, 0, 1)},
		{"sun at the zenith", config.LightConfig{
			Direction: [3]float32{1, 0, 0},
			Sun:       &config.SunConfig{Longitude: 40, Latitude: 90},
		}, math.V3(0, 1, 0)},
		{"sun on the horizon east", config.LightConfig{Sun: &config.SunConfig{Longitude: 90}}, math.V3(1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.light.Color = [3]float32{1, 0.5, 0}
			cfg.Light = tt.light
			frame, err := BuildFrame(cfg, NewCamera(cfg.Camera), math.Vec3{}, 64, 36)
			if err != nil {
				t.Fatalf("BuildFrame: %v", err)
			}
			if !frame.LightDir.ApproxEqual(tt.want, 1e-5) {
				t.Errorf("LightDir = %v, want %v", frame.LightDir, tt.want)
			}
			if frame.LightColor != gfx.RGB(1, 0.5, 0) {
				t.Errorf("LightColor = %v", frame.LightColor)
			}
		})
	}

	cfg := config.Default()
	cfg.Light.Direction = [3]float32{}
	if _, err := BuildFrame(cfg, NewCamera(cfg.Camera), math.Vec3{}, 64, 36); !errors.Is(err, math.ErrZeroVector) {
		t.Errorf("BuildFrame(zero light) error = %v, want ErrZeroVector", err)
	}
}

func TestRenderFrame(t *testing.T) {
	dev := gfxtest.New()
	prog, _ := LoadProgram(dev, assets.NewManager(), config.ShaderConfig{})
	defer prog.Release()
	sc, err := LoadScene(dev, assets.NewManager(), builtinScene(), prog)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	defer sc.Close()

	cfg := config.Default()
	frame, err := BuildFrame(cfg, NewCamera(cfg.Camera), math.Vec3{}, 64, 36)
	if err != nil {
		t.Fatalf("BuildFrame: %v", err)
	}
	clear := RGBA(cfg.Render.ClearColor)
	stats, err := RenderFrame(dev, frame, clear, sc)
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	if stats.Clears != 1 || stats.Objects != 2 || stats.DrawCalls != 3 {
		t.Errorf("Stats() = %+v, want 1 clear, 2 objects, 3 draws", stats)
	}
	if len(dev.Clears) != 1 || dev.Clears[0] != clear {
		t.Errorf("Clears = %v, want [%v]", dev.Clears, clear)
	}
	if dev.Presents != 1 {
		t.Errorf("Presents = %d, want 1", dev.Presents)
	}
}

func TestRenderFrameSoftware(t *testing.T) {
	dev, err := soft.New(64, 36)
	if err != nil {
		t.Fatalf("soft.New: %v", err)
	}
	prog, _ := LoadProgram(dev, assets.NewManager(), config.ShaderConfig{})
	defer prog.Release()

	cfg := config.SceneConfig{Objects: []config.ObjectConfig{{
		Name:      "box",
		Model:     BuiltinCube,
		Scale:     [3]float32{0.5, 0.5, 0.5},
		Materials: []config.MaterialConfig{{Albedo: [3]float32{1, 1, 1}}},
	}}}
	sc, err := LoadScene(dev, assets.NewManager(), cfg, prog)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	defer sc.Close()

	full := config.Default()
	frame, err := BuildFrame(full, NewCamera(full.Camera), math.Vec3{}, 64, 36)
	if err != nil {
		t.Fatalf("BuildFrame: %v", err)
	}
	if _, err := RenderFrame(dev, frame, RGBA(full.Render.ClearColor), sc); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	img := dev.LastFrame()
	corner := img.NRGBAAt(0, 0)
	if corner.R != 153 || corner.G != 204 || corner.B != 51 {
		t.Errorf("corner = %v, want clear color (153,204,51)", corner)
	}
	center := img.NRGBAAt(32, 18)
	if center == corner {
		t.Error("center pixel is clear color, want cube")
	}
}

func TestSnapshot(t *testing.T) {
	cfg := config.Default()
	cfg.Scene = builtinScene()
	cfg.Camera.Target = "box"
	cfg.Snapshot = config.SnapshotConfig{
		Dir:         t.TempDir(),
		Prefix:      "test",
		Format:      "png",
		Width:       32,
		Height:      18,
		Frames:      3,
		Supersample: 2,
	}

	path, err := Snapshot(cfg, assets.NewManager())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 18 {
		t.Errorf("snapshot size = %dx%d, want 32x18", b.Dx(), b.Dy())
	}
}
