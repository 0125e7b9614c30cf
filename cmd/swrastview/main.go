// swrastview - Terminal 3D Model Viewer
// View OBJ and glTF/GLB files in your terminal with full 3D rendering.
//
// Controls:
//
//	Mouse drag  - Rotate model (yaw/pitch)
//	Scroll      - Zoom in/out
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right
//	Space       - Apply random impulse
//	R           - Reset rotation
//	X           - Toggle wireframe axes overlay
//	?           - Toggle HUD overlay (FPS, filename, poly count)
//	+/-         - Adjust zoom
//	Esc         - Quit
package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/CygnusX-26/swrast/pkg/math3d"
	"github.com/CygnusX-26/swrast/pkg/raster"
	"github.com/CygnusX-26/swrast/pkg/render"
	"github.com/CygnusX-26/swrast/pkg/scene"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: swrastview <model.obj|model.gltf|model.glb>")
		os.Exit(1)
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

const targetFPS = 60

// RotationAxis tracks position and velocity for one rotation axis with
// harmonica spring decay back to rest.
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64
}

func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState holds the model's free-spinning orientation.
type RotationState struct {
	Pitch, Yaw, Roll RotationAxis
	fps              int
}

func NewRotationState(fps int) *RotationState {
	return &RotationState{Pitch: NewRotationAxis(fps), Yaw: NewRotationAxis(fps), Roll: NewRotationAxis(fps), fps: fps}
}

func (r *RotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
	r.Roll.Update()
}

func (r *RotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.fps)
	r.Yaw = NewRotationAxis(r.fps)
	r.Roll = NewRotationAxis(r.fps)
}

// HUD renders an FPS/filename/poly-count overlay via raw ANSI cursor moves.
type HUD struct {
	filename  string
	polyCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	visible   bool
}

func NewHUD(filename string, polyCount int) *HUD {
	return &HUD{filename: filename, polyCount: polyCount, fpsTime: time.Now(), visible: true}
}

func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

func (h *HUD) Render(width, height int) {
	const (
		reset   = "\x1b[0m"
		bold    = "\x1b[1m"
		bgBlack = "\x1b[40m"
		fgWhite = "\x1b[97m"
		fgGreen = "\x1b[92m"
		fgCyan  = "\x1b[96m"
		clear   = "\x1b[2K"
	)
	moveTo := func(row, col int) string { return fmt.Sprintf("\x1b[%d;%dH", row, col) }

	fmt.Print(moveTo(1, 1) + clear)
	if !h.visible {
		return
	}
	fmt.Print(fmt.Sprintf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset))
	titleCol := max((width-len(h.filename)-2)/2, 1)
	fmt.Print(moveTo(1, titleCol) + fmt.Sprintf("%s%s%s %s %s", bold, bgBlack, fgWhite, h.filename, reset))
	polyCol := max(width-14, 1)
	fmt.Print(moveTo(1, polyCol) + fmt.Sprintf("%s%s%s %d tris %s", bgBlack, fgCyan, bold, h.polyCount, reset))
}

func loadMesh(path string) (*scene.Mesh, error) {
	switch filepath.Ext(path) {
	case ".gltf", ".glb":
		return scene.LoadGLTF(path)
	default:
		return scene.LoadOBJ(path)
	}
}

func run(modelPath string) error {
	mesh, err := loadMesh(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	term := uv.DefaultTerminal()
	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)
	fmt.Fprint(os.Stdout, "\x1b[?1003h\x1b[?1006h")

	termRenderer := render.NewTerminalRenderer(term, cols, rows)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)
	pixels := make([]byte, fbWidth*fbHeight*4)
	db := raster.NewDepthBuffer(fbWidth, fbHeight)

	world := scene.NewWorld()
	world.Camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))
	world.Camera.SetFOV(math.Pi / 3)
	world.Camera.SetClipPlanes(0.1, 100)
	cameraZ := 5.0
	world.Camera.SetPosition(math3d.V3(0, 0, cameraZ))
	world.Camera.LookAt(math3d.V3(0, 0, 0))

	// Center the model at the origin and scale it so its largest
	// bounding-box dimension spans 2 units.
	mesh.CalculateBounds()
	center := mesh.Center()
	size := mesh.Size()
	if maxDim := math.Max(size.X, math.Max(size.Y, size.Z)); maxDim > 0 {
		scale := 2.0 / maxDim
		for i, p := range mesh.Positions {
			mesh.Positions[i] = p.Sub(center).Scale(scale)
		}
		mesh.CalculateBounds()
	}
	obj := scene.Object{Name: filepath.Base(modelPath), Mesh: mesh}
	world.Objects = []scene.Object{obj}

	hud := NewHUD(filepath.Base(modelPath), mesh.TriangleCount())
	wireframeOn := false

	rotation := NewRotationState(targetFPS)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	inputTorque := struct{ pitch, yaw, roll float64 }{}
	const torqueStrength = 3.0
	var mouseDown bool
	var lastMouseX, lastMouseY int

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				cols, rows = ev.Width, ev.Height
				term.Erase()
				term.Resize(cols, rows)
				termRenderer = render.NewTerminalRenderer(term, cols, rows)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				fb = render.NewFramebuffer(fbWidth, fbHeight)
				pixels = make([]byte, fbWidth*fbHeight*4)
				db = raster.NewDepthBuffer(fbWidth, fbHeight)
				world.Camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("q"):
					inputTorque.roll = -torqueStrength
				case ev.MatchString("e"):
					inputTorque.roll = torqueStrength
				case ev.MatchString("r"):
					rotation.Reset()
					cameraZ = 5.0
					world.Camera.SetPosition(math3d.V3(0, 0, cameraZ))
				case ev.MatchString("w", "up"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("space"):
					rotation.ApplyImpulse((rand.Float64()-0.5)*1.5, (rand.Float64()-0.5)*1.5, (rand.Float64()-0.5)*1.5)
				case ev.MatchString("+", "="):
					cameraZ = math.Max(1, cameraZ-0.5)
					world.Camera.SetPosition(math3d.V3(0, 0, cameraZ))
				case ev.MatchString("-", "_"):
					cameraZ = math.Min(20, cameraZ+0.5)
					world.Camera.SetPosition(math3d.V3(0, 0, cameraZ))
				case ev.MatchString("x"):
					wireframeOn = !wireframeOn
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					hud.visible = !hud.visible
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				case ev.MatchString("q"), ev.MatchString("e"):
					inputTorque.roll = 0
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
					rotation.ApplyImpulse(float64(dy)*0.03, float64(dx)*0.03, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					cameraZ = math.Max(1, cameraZ-0.5)
				case uv.MouseWheelDown:
					cameraZ = math.Min(20, cameraZ+0.5)
				}
				world.Camera.SetPosition(math3d.V3(0, 0, cameraZ))
			}
		}
	}()

	targetDuration := time.Second / time.Duration(targetFPS)
	lastFrame := time.Now()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l\x1b[?1006l")
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

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		rotation.ApplyImpulse(inputTorque.pitch*dt, inputTorque.yaw*dt, inputTorque.roll*dt)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9
		rotation.Update()

		rotMat := math3d.RotateX(rotation.Pitch.Position).
			Mul(math3d.RotateY(rotation.Yaw.Position)).
			Mul(math3d.RotateZ(rotation.Roll.Position))
		rotatedMesh := mesh.Clone()
		for i, p := range rotatedMesh.Positions {
			rotatedMesh.Positions[i] = rotMat.MulVec3(p)
		}
		for i, n := range rotatedMesh.Normals {
			rotatedMesh.Normals[i] = rotMat.MulVec3Dir(n)
		}
		world.Objects[0].Mesh = rotatedMesh

		clear(pixels)
		if err := raster.Draw(world, db, pixels, fbWidth, fbHeight); err != nil {
			cleanup()
			return fmt.Errorf("draw frame: %w", err)
		}
		fb.LoadRGBA(pixels)

		if wireframeOn {
			wf := render.NewWireframe(&world.Camera, fb)
			wf.DrawAxes(1.2)
		}

		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(cols, rows)

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
