package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"thinlens-renderer/internal/camera"
	"thinlens-renderer/internal/envmap"
	"thinlens-renderer/internal/mathutil"
	"thinlens-renderer/internal/render"
	"thinlens-renderer/internal/scene"
)

const maxPasses = 256

// Game refines the image one pass per frame and restarts whenever the view
// or lens changes.
type Game struct {
	scene       *scene.Scene
	prog        *render.Progressive
	pix         []byte
	width       int
	height      int
	fov         float64
	yaw, pitch  float64
	distance    float64
	focal       float64
	aperture    float64
	dirty       bool
	showOverlay bool
}

func NewGame(sc *scene.Scene, env *envmap.Map, width, height, workers int) *Game {
	v := sc.View
	offset := v.Eye.Sub(v.Target)
	g := &Game{
		scene:       sc,
		width:       width,
		height:      height,
		fov:         v.FOV,
		distance:    offset.Len(),
		yaw:         math.Atan2(offset[0], offset[2]),
		pitch:       math.Asin(offset[1] / offset.Len()),
		focal:       v.FocalDistance,
		aperture:    v.Aperture,
		pix:         make([]byte, width*height*4),
		showOverlay: true,
	}
	if g.focal == 0 {
		g.focal = g.distance
	}
	g.prog = render.NewProgressive(g.camera(), sc, render.Options{
		Width:   width,
		Height:  height,
		Workers: workers,
		Env:     env,
	})
	return g
}

func (g *Game) camera() camera.Camera {
	v := g.scene.View
	eye := v.Target.Add(mathutil.Vec3{
		math.Sin(g.yaw) * math.Cos(g.pitch),
		math.Sin(g.pitch),
		math.Cos(g.yaw) * math.Cos(g.pitch),
	}.Scale(g.distance))
	cam := camera.New(mathutil.LookAt(eye, v.Target, v.Up), g.width, g.height)
	if g.fov > 0 {
		cam = cam.FOV(g.fov)
	}
	return cam.DOF(g.focal, g.aperture)
}

func (g *Game) handleInput() {
	const turn = 0.03
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.yaw -= turn
		g.dirty = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.yaw += turn
		g.dirty = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) && g.pitch < 1.4 {
		g.pitch += turn
		g.dirty = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) && g.pitch > -0.1 {
		g.pitch -= turn
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.focal *= 1.1
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.focal /= 1.1
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.aperture += 0.02
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		g.aperture = math.Max(0, g.aperture-0.02)
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showOverlay = !g.showOverlay
	}
}

func (g *Game) Update() error {
	g.handleInput()
	if g.dirty {
		g.prog.Reset(g.camera())
		g.dirty = false
	}
	if g.prog.Passes() < maxPasses {
		if err := g.prog.Step(context.Background()); err != nil {
			return err
		}
		g.prog.Film().WriteRGBA(g.pix, 1)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.pix)
	if g.showOverlay {
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"spp %d  fov %.0f  focus %.2f  aperture %.2f\narrows orbit, F/G focus, A/Z aperture, H hide",
			g.prog.Passes(), g.fov, g.focal, g.aperture))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func main() {
	sceneName := flag.String("scene", "focus", fmt.Sprintf("Built-in scene %v", scene.Names()))
	envPath := flag.String("env", "", "Equirectangular environment map")
	width := flag.Int("width", 320, "Render width")
	height := flag.Int("height", 180, "Render height")
	scale := flag.Int("scale", 3, "Window scale factor")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	flag.Parse()

	sc, err := scene.ByName(*sceneName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var env *envmap.Map
	if *envPath != "" {
		if env, err = envmap.Load(*envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading environment map: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Previewing scene %q at %dx%d\n", sc.Name, *width, *height)
	ebiten.SetWindowSize(*width**scale, *height**scale)
	ebiten.SetWindowTitle("Thin-lens preview")
	if err := ebiten.RunGame(NewGame(sc, env, *width, *height, *workers)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
