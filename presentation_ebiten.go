//go:build !headless

// presentation_ebiten.go - Ebiten video backend and keyboard input for vsmile

package main

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/draw"
)

const (
	pictureWidth  = 320
	pictureHeight = 240
)

// bgr555ToRGBA expands the PPU's BGR-555 word (5 bits per channel,
// top bit unused) into a fully opaque 32-bit RGBA color.
func bgr555ToRGBA(word uint16) color.RGBA {
	b := uint8(word & 0x1f)
	g := uint8((word >> 5) & 0x1f)
	r := uint8((word >> 10) & 0x1f)
	return color.RGBA{
		R: r<<3 | r>>2,
		G: g<<3 | g>>2,
		B: b<<3 | b>>2,
		A: 0xff,
	}
}

// ebitenPresentation drives the console's per-frame picture/audio
// through an ebiten window, and samples keyboard state into a
// joyInput each tick. Scaling from the console's native 320x240 is
// done with x/image/draw rather than ebiten's own image scaling so
// the upscale filter is chosen explicitly (nearest-neighbour, to keep
// the PPU's hard sprite/tile edges instead of blurring them).
type ebitenPresentation struct {
	console *vsmile
	audio   *audioRing

	mu      sync.Mutex
	native  *image.RGBA
	scaled  *ebiten.Image
	scale   int
	onClose func()

	script  *scriptHost
	lastOn  bool
	lastOff bool
}

func newEbitenPresentation(console *vsmile, audio *audioRing, script *scriptHost, scale int) *ebitenPresentation {
	if scale < 1 {
		scale = 1
	}
	return &ebitenPresentation{
		console: console,
		audio:   audio,
		script:  script,
		native:  image.NewRGBA(image.Rect(0, 0, pictureWidth, pictureHeight)),
		scaled:  ebiten.NewImage(pictureWidth*scale, pictureHeight*scale),
		scale:   scale,
	}
}

func (e *ebitenPresentation) uploadPicture() {
	pic := e.console.GetPicture()
	for i, word := range pic {
		e.native.SetRGBA(i%pictureWidth, i/pictureWidth, bgr555ToRGBA(word))
	}
	draw.NearestNeighbor.Scale(e.scaled, e.scaled.Bounds(), e.native, e.native.Bounds(), draw.Over, nil)
}

// Update runs once per ebiten tick: advances the console one frame,
// samples keyboard state into a joyInput, and uploads the resulting
// picture to the scaled display image.
func (e *ebitenPresentation) Update() error {
	if ebiten.IsWindowBeingClosed() {
		if e.onClose != nil {
			e.onClose()
		}
		return ebiten.Termination
	}

	e.console.UpdateJoystick(sampleKeyboardJoystick())

	onPressed := ebiten.IsKeyPressed(ebiten.KeyF1)
	offPressed := ebiten.IsKeyPressed(ebiten.KeyF2)
	e.console.UpdateOnButton(onPressed)
	e.console.UpdateOffButton(offPressed)
	e.console.UpdateRestartButton(inpututil.IsKeyJustPressed(ebiten.KeyF3))

	if e.script != nil {
		if onPressed != e.lastOn {
			e.script.OnButton("on", onPressed)
		}
		if offPressed != e.lastOff {
			e.script.OnButton("off", offPressed)
		}
	}
	e.lastOn, e.lastOff = onPressed, offPressed

	e.console.RunFrame()

	audioWords := e.console.GetAudio()
	if e.audio != nil {
		e.audio.push(audioWords)
	}
	if e.script != nil {
		e.script.OnFrame(pictureWidth*pictureHeight, len(audioWords))
	}

	e.mu.Lock()
	e.uploadPicture()
	e.mu.Unlock()

	return nil
}

func (e *ebitenPresentation) Draw(screen *ebiten.Image) {
	e.mu.Lock()
	defer e.mu.Unlock()
	screen.DrawImage(e.scaled, nil)
}

func (e *ebitenPresentation) Layout(_, _ int) (int, int) {
	return pictureWidth * e.scale, pictureHeight * e.scale
}

// sampleKeyboardJoystick maps a fixed keyboard layout onto the V.Smile
// wired controller's directional pad and eight buttons: arrow keys for
// the pad, Enter/Backspace/Space/Tab for the four center buttons, and
// Z/X/C/V for the four color buttons.
func sampleKeyboardJoystick() joyInput {
	var in joyInput
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		in.x = -5
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		in.x = 5
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		in.y = -5
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		in.y = 5
	}
	in.enter = ebiten.IsKeyPressed(ebiten.KeyEnter)
	in.back = ebiten.IsKeyPressed(ebiten.KeyBackspace)
	in.help = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.abc = ebiten.IsKeyPressed(ebiten.KeyTab)
	in.green = ebiten.IsKeyPressed(ebiten.KeyZ)
	in.blue = ebiten.IsKeyPressed(ebiten.KeyX)
	in.yellow = ebiten.IsKeyPressed(ebiten.KeyC)
	in.red = ebiten.IsKeyPressed(ebiten.KeyV)
	return in
}

// runPresentation blocks until the window is closed or ebiten reports
// a fatal error.
func runPresentation(console *vsmile, audio *audioRing, script *scriptHost, scale int, title string, onClose func()) error {
	p := newEbitenPresentation(console, audio, script, scale)
	p.onClose = onClose
	ebiten.SetWindowSize(pictureWidth*scale, pictureHeight*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	if err := ebiten.RunGame(p); err != nil {
		return fmt.Errorf("presentation: %w", err)
	}
	return nil
}
