// viewmodel - Terminal 3D Model Viewer
// View OBJ and GLB files in your terminal with full 3D rendering.
//
// Controls:
//
//	W/A/S/D      - Move forward/left/back/right
//	Space        - Move up
//	Z/Ctrl+Space - Move down
//	Arrow keys   - Turn in place
//	Mouse drag   - Free-look (smoothed yaw/pitch nudge)
//	M            - Cycle shading mode (Phong -> depth -> wireframe)
//	C            - Toggle backface culling
//	Esc, ctrl+c  - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/raster3d/pkg/math3d"
	"github.com/taigrr/raster3d/pkg/models"
	"github.com/taigrr/raster3d/pkg/render"
)

var (
	workers         = flag.Int("workers", 0, "Worker pool size (0 = runtime.NumCPU)")
	targetFPS       = flag.Int("fps", 60, "Target FPS")
	bgColor         = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	backfaceCulling = flag.Bool("cull", true, "Enable backface culling")
	startMode       = flag.String("mode", "phong", "Initial shading mode: phong, depth, or wireframe")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "viewmodel - Terminal 3D Model Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: viewmodel [options] <model.obj|model.glb>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/A/S/D      - Move forward/left/back/right\n")
		fmt.Fprintf(os.Stderr, "  Space        - Move up\n")
		fmt.Fprintf(os.Stderr, "  Z/Ctrl+Space - Move down\n")
		fmt.Fprintf(os.Stderr, "  Arrow keys   - Turn in place\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag   - Free-look\n")
		fmt.Fprintf(os.Stderr, "  M            - Cycle shading mode\n")
		fmt.Fprintf(os.Stderr, "  C            - Toggle backface culling\n")
		fmt.Fprintf(os.Stderr, "  Esc          - Quit\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseMode(s string) render.Mode {
	switch strings.ToLower(s) {
	case "depth", "zcoloring", "z":
		return render.ZColoring
	case "wireframe", "wire":
		return render.Wireframe
	default:
		return render.PhongShading
	}
}

func loadMesh(path string) (*models.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return models.LoadGLTF(path)
	case ".obj":
		return models.LoadOBJ(path)
	default:
		return nil, fmt.Errorf("load mesh: unsupported format %q (use .obj or .glb)", filepath.Ext(path))
	}
}

// centerAndScale fits a mesh's largest dimension to a span of 2 units,
// centered at the origin, so arbitrarily-sized source meshes land in a
// consistent view frustum.
func centerAndScale(mesh *models.Mesh) {
	mesh.CalculateBounds()
	center := mesh.Center()
	size := mesh.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim == 0 {
		return
	}
	scale := 2.0 / maxDim
	transform := math3d.ScaleUniform(scale).Mul(math3d.Translate(center.Negate()))
	mesh.Transform(transform)
}

// lookSpring smooths one axis (yaw or pitch) of mouse-drag free-look: raw
// per-event mouse deltas go in, a critically-damped spring comes out,
// avoiding the jitter of applying the raw delta straight to the camera.
type lookSpring struct {
	spring harmonica.Spring
	target float64
	value  float64
	vel    float64
}

func newLookSpring(fps int) lookSpring {
	return lookSpring{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)}
}

func (s *lookSpring) Nudge(delta float64) { s.target += delta }

// Step advances the spring one tick and returns the incremental change in
// value since the previous Step, the amount to actually apply to the camera
// this tick.
func (s *lookSpring) Step() float64 {
	prev := s.value
	s.value, s.vel = s.spring.Update(s.value, s.vel, s.target)
	return s.value - prev
}

func run(modelPath string) error {
	var bgR, bgG, bgB uint8 = 30, 30, 40
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)

	mesh, err := loadMesh(modelPath)
	if err != nil {
		return err
	}
	centerAndScale(mesh)

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	surf := render.NewSurface(width, height)
	pipeline := render.NewPipeline(surf, *workers)
	defer pipeline.Close()
	pipeline.SetBackfaceCulling(*backfaceCulling)
	pipeline.SetMode(parseMode(*startMode))
	pipeline.SetBackground(render.RGB(bgR, bgG, bgB))

	camera := render.NewCamera()
	camera.SetAspectRatio(float64(surf.Width()) / float64(surf.Height()))
	camera.SetClipPlanes(-0.1, -100)
	camera.SetPosition(math3d.V3(0, 0, 3))
	camera.LookAt(math3d.Zero3())
	camera.Speed = 0.08
	camera.RSpeed = 0.04

	scene := render.Scene{
		Mesh:     mesh,
		Pose:     render.NewModelPose(),
		Material: models.Material{Ka: math3d.V3(0.15, 0.15, 0.15), Kd: math3d.V3(0.7, 0.7, 0.7), Ks: math3d.V3(0.5, 0.5, 0.5)},
		Lights: []render.Light{
			{WPos: math3d.V3(4, 4, 4), Intensity: math3d.V3(6, 6, 6)},
			{WPos: math3d.V3(-4, 2, -4), Intensity: math3d.V3(3, 3, 3)},
		},
		Ambient: math3d.V3(0.05, 0.05, 0.05),
	}

	yaw := newLookSpring(*targetFPS)
	pitch := newLookSpring(*targetFPS)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	var mouseDown bool
	var lastMouseX, lastMouseY int

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				surf = render.NewSurface(width, height)
				pipeline.Close()
				pipeline = render.NewPipeline(surf, *workers)
				pipeline.SetBackfaceCulling(*backfaceCulling)
				pipeline.SetBackground(render.RGB(bgR, bgG, bgB))
				camera.SetAspectRatio(float64(surf.Width()) / float64(surf.Height()))

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("w"):
					camera.SetAction(render.ActionMoveForward, true)
				case ev.MatchString("s"):
					camera.SetAction(render.ActionMoveBack, true)
				case ev.MatchString("a"):
					camera.SetAction(render.ActionMoveLeft, true)
				case ev.MatchString("d"):
					camera.SetAction(render.ActionMoveRight, true)
				case ev.MatchString("space"):
					camera.SetAction(render.ActionMoveUp, true)
				case ev.MatchString("ctrl+space"), ev.MatchString("z"):
					camera.SetAction(render.ActionMoveDown, true)
				case ev.MatchString("up"):
					camera.SetAction(render.ActionTurnUp, true)
				case ev.MatchString("down"):
					camera.SetAction(render.ActionTurnDown, true)
				case ev.MatchString("left"):
					camera.SetAction(render.ActionTurnLeft, true)
				case ev.MatchString("right"):
					camera.SetAction(render.ActionTurnRight, true)
				case ev.MatchString("m"):
					pipeline.SetMode(nextMode(pipeline))
				case ev.MatchString("c"):
					*backfaceCulling = !*backfaceCulling
					pipeline.SetBackfaceCulling(*backfaceCulling)
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"):
					camera.SetAction(render.ActionMoveForward, false)
				case ev.MatchString("s"):
					camera.SetAction(render.ActionMoveBack, false)
				case ev.MatchString("a"):
					camera.SetAction(render.ActionMoveLeft, false)
				case ev.MatchString("d"):
					camera.SetAction(render.ActionMoveRight, false)
				case ev.MatchString("space"):
					camera.SetAction(render.ActionMoveUp, false)
				case ev.MatchString("ctrl+space"), ev.MatchString("z"):
					camera.SetAction(render.ActionMoveDown, false)
				case ev.MatchString("up"):
					camera.SetAction(render.ActionTurnUp, false)
				case ev.MatchString("down"):
					camera.SetAction(render.ActionTurnDown, false)
				case ev.MatchString("left"):
					camera.SetAction(render.ActionTurnLeft, false)
				case ev.MatchString("right"):
					camera.SetAction(render.ActionTurnRight, false)
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					yaw.Nudge(float64(-dx) * 0.02)
					pitch.Nudge(float64(-dy) * 0.02)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(*targetFPS)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		frameStart := time.Now()

		pipeline.UpdatePose(&camera.Pose)
		if dYaw := yaw.Step(); dYaw != 0 {
			camera.G = camera.G.RotateAround(math3d.V3(0, 1, 0), dYaw)
			camera.Up = camera.Up.RotateAround(math3d.V3(0, 1, 0), dYaw)
		}
		if dPitch := pitch.Step(); dPitch != 0 {
			axis := camera.G.Cross(camera.Up)
			camera.G = camera.G.RotateAround(axis, dPitch)
			camera.Up = camera.Up.RotateAround(axis, dPitch)
		}

		pipeline.Draw(camera, scene)
		surf.Present(term, uv.Rectangle{Max: uv.Point{X: width, Y: height}})
		term.Display()

		if elapsed := time.Since(frameStart); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

func nextMode(p *render.Pipeline) render.Mode {
	switch p.Mode() {
	case render.PhongShading:
		return render.ZColoring
	case render.ZColoring:
		return render.Wireframe
	default:
		return render.PhongShading
	}
}
