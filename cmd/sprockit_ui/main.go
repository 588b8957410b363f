package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/cbegin/sprockit-go"
	"github.com/cbegin/sprockit-go/internal/params"
	"github.com/cbegin/sprockit-go/internal/patch"
)

const (
	windowW    = 980
	windowH    = 640
	minWindowW = 820
	minWindowH = 560

	textScale = 2
	charW     = 7 * textScale
	lineH     = 14 * textScale

	knobRowH = 44
	scopeN   = 2048
	velocity = 100
)

var (
	bgColor         = color.RGBA{192, 192, 192, 255}
	panelColor      = color.RGBA{192, 192, 192, 255}
	borderColor     = color.RGBA{128, 128, 128, 255}
	bevelLight      = color.RGBA{255, 255, 255, 255}
	bevelDarker     = color.RGBA{64, 64, 64, 255}
	sunkenBgColor   = color.RGBA{24, 24, 32, 255}
	sliderFillColor = color.RGBA{0, 0, 128, 255}
	externalColor   = color.RGBA{200, 110, 0, 255}
	activeColor     = color.RGBA{0, 128, 0, 255}
)

type uiLayout struct {
	knobs   image.Rectangle
	scope   image.Rectangle
	buttons [numButtons]image.Rectangle
	status  image.Rectangle
}

const (
	btnShape = iota
	btnDest
	btnDrone
	btnSave
	numButtons
)

var buttonLabels = [numButtons]string{"LFO Shape", "LFO Dest", "Drone", "Save"}

type game struct {
	player   *sprockit.Player
	synth    *sprockit.Synth
	scope    *scope
	saveAs   string
	held     map[ebiten.Key]uint8
	octave   int
	dragKnob int

	status    string
	statusErr bool
	textCache map[string]*ebiten.Image
	viewW     int
	viewH     int
	scopeImg  *ebiten.Image
	wavePeak  float64
}

func newGame(backend, patchName, effects, saveAs string) (*game, error) {
	p, err := patch.Load(patchName)
	if err != nil {
		return nil, err
	}
	sc := newScope()
	pl, err := sprockit.NewPlayer(
		sprockit.WithBackend(backend),
		sprockit.WithEffects(effects),
		sprockit.WithSampleTap(sc.Tap),
		sprockit.WithSynthOptions(sprockit.WithPatch(p)),
	)
	if err != nil {
		return nil, err
	}
	if err := pl.Start(); err != nil {
		return nil, err
	}
	g := &game{
		player:    pl,
		synth:     pl.Synth(),
		scope:     sc,
		saveAs:    saveAs,
		held:      make(map[ebiten.Key]uint8),
		octave:    defaultOctave,
		dragKnob:  -1,
		textCache: make(map[string]*ebiten.Image, 256),
		viewW:     windowW,
		viewH:     windowH,
		wavePeak:  0.1,
	}
	g.setStatus(fmt.Sprintf("patch %q loaded", p.Name))
	return g, nil
}

func (g *game) Update() error {
	g.handleKeys()
	g.handleMouse()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)
	l := g.layoutRects()
	snap := g.synth.Snapshot()

	g.drawPanel(screen, l.knobs)
	g.drawKnobs(screen, l.knobs, snap)
	g.drawDarkPanel(screen, l.scope)
	g.drawScope(screen, l.scope)
	for i, r := range l.buttons {
		g.drawButton(screen, r, g.buttonLabel(i, snap), g.buttonActive(i, snap))
	}
	g.drawSunkenPanel(screen, l.status)
	g.drawStatus(screen, l.status, snap)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	outsideW = max(outsideW, minWindowW)
	outsideH = max(outsideH, minWindowH)
	g.viewW = outsideW
	g.viewH = outsideH
	return outsideW, outsideH
}

func (g *game) Close() {
	for _, n := range g.held {
		g.synth.NoteOff(n)
	}
	_ = g.player.Stop()
}

func (g *game) layoutRects() uiLayout {
	const pad = 10
	var l uiLayout
	knobsH := params.NumKnobs*knobRowH + 2*pad
	l.knobs = image.Rect(pad, pad, g.viewW/2, pad+knobsH)
	l.scope = image.Rect(g.viewW/2+pad, pad, g.viewW-pad, pad+knobsH)
	btnY := l.knobs.Max.Y + pad
	btnW := (g.viewW - pad*(numButtons+1)) / numButtons
	for i := range l.buttons {
		x := pad + i*(btnW+pad)
		l.buttons[i] = image.Rect(x, btnY, x+btnW, btnY+lineH+16)
	}
	statusY := l.buttons[0].Max.Y + pad
	l.status = image.Rect(pad, statusY, g.viewW-pad, g.viewH-pad)
	return l
}

func (g *game) knobTrack(rect image.Rectangle, i int) image.Rectangle {
	y := rect.Min.Y + 10 + i*knobRowH + lineH
	return image.Rect(rect.Min.X+12, y, rect.Max.X-12, y+8)
}

func (g *game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) && g.octave > minOctave {
		g.octave--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) && g.octave < maxOctave {
		g.octave++
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		g.synth.Press(sprockit.ButtonLFOShape)
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		g.synth.Press(sprockit.ButtonLFODest)
	}
	if inpututil.IsKeyJustPressed(ebiten.Key3) {
		g.synth.Press(sprockit.ButtonDrone)
	}
	for _, k := range pianoKeys {
		if inpututil.IsKeyJustPressed(k) {
			if n, ok := noteFor(k, g.octave); ok {
				g.held[k] = n
				g.synth.NoteOn(n, velocity)
			}
		}
		if inpututil.IsKeyJustReleased(k) {
			if n, ok := g.held[k]; ok {
				delete(g.held, k)
				g.synth.NoteOff(n)
			}
		}
	}
}

func (g *game) handleMouse() {
	l := g.layoutRects()
	mx, my := ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		for i := 0; i < params.NumKnobs; i++ {
			track := g.knobTrack(l.knobs, i)
			if pointInRect(mx, my, track.Inset(-6)) {
				g.dragKnob = i
				break
			}
		}
		for i, r := range l.buttons {
			if pointInRect(mx, my, r) {
				g.clickButton(i)
			}
		}
	}
	if g.dragKnob >= 0 {
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			g.setKnobFromMouse(g.dragKnob, mx, g.knobTrack(l.knobs, g.dragKnob))
		} else {
			g.dragKnob = -1
		}
	}

	_, wy := ebiten.Wheel()
	if wy != 0 {
		for i := 0; i < params.NumKnobs; i++ {
			row := g.knobTrack(l.knobs, i)
			row.Min.Y -= lineH
			if pointInRect(mx, my, row.Inset(-6)) {
				v := int(g.synth.Knob(i))
				if wy > 0 {
					v += 4
				} else {
					v -= 4
				}
				g.synth.SetKnob(i, uint8(clamp(v, 0, 255)))
			}
		}
	}
}

func (g *game) setKnobFromMouse(i, mx int, track image.Rectangle) {
	w := track.Dx()
	if w <= 0 {
		return
	}
	v := clamp((mx-track.Min.X)*255/w, 0, 255)
	g.synth.SetKnob(i, uint8(v))
}

func (g *game) clickButton(i int) {
	switch i {
	case btnShape:
		g.synth.Press(sprockit.ButtonLFOShape)
	case btnDest:
		g.synth.Press(sprockit.ButtonLFODest)
	case btnDrone:
		g.synth.Press(sprockit.ButtonDrone)
	case btnSave:
		p := g.synth.Patch()
		p.Name = g.saveAs
		if err := p.Save(); err != nil {
			g.setError(err.Error())
			return
		}
		g.setStatus(fmt.Sprintf("saved patch %q", p.Name))
	}
}

func (g *game) buttonLabel(i int, snap sprockit.Snapshot) string {
	switch i {
	case btnShape:
		return fmt.Sprintf("LFO %d", snap.Values[params.LFOWaveshape])
	case btnDest:
		return "LFO>" + params.LFOTarget(snap.Values[params.LFODest]).String()
	}
	return buttonLabels[i]
}

func (g *game) buttonActive(i int, snap sprockit.Snapshot) bool {
	return i == btnDrone && snap.Drone
}

func (g *game) drawKnobs(screen *ebiten.Image, rect image.Rectangle, snap sprockit.Snapshot) {
	for i := 0; i < params.NumKnobs; i++ {
		p := params.Param(i)
		track := g.knobTrack(rect, i)
		label := fmt.Sprintf("%d %s %d", i+1, p, snap.Values[p])
		g.drawText(screen, label, track.Min.X, track.Min.Y-lineH)
		g.drawSlider(screen, track, g.synth.Knob(i), snap.Sources[p] == params.External)
	}
}

func (g *game) drawSlider(screen *ebiten.Image, track image.Rectangle, v uint8, external bool) {
	x, y := float64(track.Min.X), float64(track.Min.Y)
	w := track.Dx()
	ebitenutil.DrawRect(screen, x, y, float64(w), 8, bevelDarker)
	ebitenutil.DrawRect(screen, x, y, float64(w-1), 1, borderColor)
	fill := sliderFillColor
	if external {
		fill = externalColor
	}
	fillW := int(v) * w / 255
	if fillW > 2 {
		ebitenutil.DrawRect(screen, x+1, y+1, float64(fillW-1), 6, fill)
	}
	knobX := min(max(track.Min.X+fillW-5, track.Min.X-5), track.Max.X-5)
	knob := image.Rect(knobX, track.Min.Y-4, knobX+10, track.Min.Y+12)
	ebitenutil.DrawRect(screen, float64(knob.Min.X), float64(knob.Min.Y), float64(knob.Dx()), float64(knob.Dy()), panelColor)
	drawBorder(screen, knob)
}

func (g *game) drawScope(screen *ebiten.Image, rect image.Rectangle) {
	inner := rect.Inset(8)
	width, height := inner.Dx(), inner.Dy()
	if width < 2 || height < 4 {
		return
	}
	if g.scopeImg == nil || g.scopeImg.Bounds().Dx() != width || g.scopeImg.Bounds().Dy() != height {
		g.scopeImg = ebiten.NewImage(width, height)
	}
	g.scopeImg.Fill(color.RGBA{14, 16, 22, 255})
	g.drawWaveform(g.scopeImg, g.scope.Latest(scopeN), width, height)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(inner.Min.X), float64(inner.Min.Y))
	screen.DrawImage(g.scopeImg, op)
}

func (g *game) drawWaveform(dst *ebiten.Image, samples []float32, width, height int) {
	midY := height / 2
	ebitenutil.DrawRect(dst, 0, float64(midY), float64(width), 1, color.RGBA{40, 44, 58, 100})

	// Fast attack, slow release auto gain.
	peak := float32(0)
	for _, s := range samples {
		peak = max(peak, s, -s)
	}
	target := max(float64(peak), 0.01)
	if target > g.wavePeak {
		g.wavePeak = g.wavePeak*0.3 + target*0.7
	} else {
		g.wavePeak = g.wavePeak*0.995 + target*0.005
	}
	gain := float64(midY-2) / max(g.wavePeak, 0.01)

	trigger := findZeroCrossing(samples, len(samples)/2)
	visible := max(len(samples)-trigger, 2)
	waveColor := color.RGBA{80, 200, 255, 220}
	prevY := midY - int(float64(samples[trigger])*gain)
	for px := 1; px < width; px++ {
		si := min(trigger+px*visible/width/4, len(samples)-1)
		y := midY - int(float64(samples[si])*gain)
		ebitenutil.DrawLine(dst, float64(px-1), float64(prevY), float64(px), float64(y), waveColor)
		prevY = y
	}
}

func (g *game) drawStatus(screen *ebiten.Image, rect image.Rectangle, snap sprockit.Snapshot) {
	x, y := rect.Min.X+8, rect.Min.Y+6
	msg := "Status: " + g.status
	if g.statusErr {
		msg = "Status: ERROR - " + g.status
	}
	g.drawText(screen, msg, x, y)
	g.drawText(screen, fmt.Sprintf("octave %d  held %d  vca %d  cutoff %d  %s / %s",
		g.octave, snap.Held, snap.VCA, snap.Cutoff, snap.AmpStage, snap.FilterStage), x, y+lineH)
	g.drawText(screen, "keys A..; play  Z/X octave  1 2 3 buttons", x, y+2*lineH)
}

func (g *game) setError(msg string) {
	g.status = msg
	g.statusErr = true
}

func (g *game) setStatus(msg string) {
	g.status = msg
	g.statusErr = false
}

func (g *game) drawPanel(screen *ebiten.Image, rect image.Rectangle) {
	ebitenutil.DrawRect(screen, float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()), panelColor)
	drawBorder(screen, rect)
}

func (g *game) drawSunkenPanel(screen *ebiten.Image, rect image.Rectangle) {
	ebitenutil.DrawRect(screen, float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()), sunkenBgColor)
	drawSunkenBorder(screen, rect)
}

func (g *game) drawDarkPanel(screen *ebiten.Image, rect image.Rectangle) {
	ebitenutil.DrawRect(screen, float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()), color.RGBA{0, 0, 0, 255})
	drawSunkenBorder(screen, rect)
}

func (g *game) drawButton(screen *ebiten.Image, rect image.Rectangle, label string, active bool) {
	fill := color.Color(panelColor)
	if active {
		fill = activeColor
	}
	ebitenutil.DrawRect(screen, float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()), fill)
	drawBorder(screen, rect)
	labelW := len([]rune(label)) * charW
	g.drawText(screen, label, rect.Min.X+(rect.Dx()-labelW)/2, rect.Min.Y+(rect.Dy()-lineH)/2)
}

// drawBorder draws a raised bevel.
func drawBorder(screen *ebiten.Image, rect image.Rectangle) {
	x, y := float64(rect.Min.X), float64(rect.Min.Y)
	w, h := float64(rect.Dx()), float64(rect.Dy())
	ebitenutil.DrawRect(screen, x, y, w-1, 1, bevelLight)
	ebitenutil.DrawRect(screen, x, y+1, 1, h-2, bevelLight)
	ebitenutil.DrawRect(screen, x, y+h-1, w, 1, bevelDarker)
	ebitenutil.DrawRect(screen, x+w-1, y, 1, h, bevelDarker)
}

// drawSunkenBorder draws a sunken bevel.
func drawSunkenBorder(screen *ebiten.Image, rect image.Rectangle) {
	x, y := float64(rect.Min.X), float64(rect.Min.Y)
	w, h := float64(rect.Dx()), float64(rect.Dy())
	ebitenutil.DrawRect(screen, x, y, w-1, 1, borderColor)
	ebitenutil.DrawRect(screen, x, y+1, 1, h-2, borderColor)
	ebitenutil.DrawRect(screen, x, y+h-1, w, 1, bevelLight)
	ebitenutil.DrawRect(screen, x+w-1, y, 1, h, bevelLight)
}

func (g *game) drawText(screen *ebiten.Image, msg string, x, y int) {
	if msg == "" {
		return
	}
	img := g.textCache[msg]
	if img == nil {
		img = ebiten.NewImage(max(1, len([]rune(msg))*7), 14)
		ebitenutil.DebugPrintAt(img, msg, 0, 0)
		if len(g.textCache) > 3000 {
			g.textCache = make(map[string]*ebiten.Image, 256)
		}
		g.textCache[msg] = img
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(float64(x+2), float64(y+2))
	op.ColorScale.Scale(0, 0, 0, 1)
	screen.DrawImage(img, op)
	op = &ebiten.DrawImageOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(img, op)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

func main() {
	backend := flag.String("backend", "ebiten", "audio backend: ebiten or oto")
	patchName := flag.String("patch", "default", "patch to load")
	effects := flag.String("effects", "", "effects chain, e.g. \"delay 250,0.4,0.3\"")
	saveAs := flag.String("save-as", "ui", "patch name the Save button writes")
	flag.Parse()

	g, err := newGame(*backend, *patchName, *effects, *saveAs)
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(minWindowW, minWindowH, -1, -1)
	ebiten.SetWindowTitle("sprockit")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
