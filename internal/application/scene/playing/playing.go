// Package playing provides the interactive sandbox scene.
package playing

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/younwookim/kinecore/internal/application/replay"
	"github.com/younwookim/kinecore/internal/application/scene"
	"github.com/younwookim/kinecore/internal/application/state"
	"github.com/younwookim/kinecore/internal/application/system"
	"github.com/younwookim/kinecore/internal/domain/entity"
	"github.com/younwookim/kinecore/internal/infrastructure/config"
	"github.com/younwookim/kinecore/internal/infrastructure/sandbox"
)

// Colors for rendering
var (
	colorBG        = color.RGBA{26, 28, 44, 255}
	colorWall      = color.RGBA{80, 80, 100, 255}
	colorPlatform  = color.RGBA{140, 110, 70, 255}
	colorWater     = color.RGBA{40, 90, 200, 110}
	colorHot       = color.RGBA{220, 70, 40, 110}
	colorCold      = color.RGBA{150, 220, 255, 110}
	colorClimb     = color.RGBA{90, 170, 80, 110}
	colorPlant     = color.RGBA{60, 160, 60, 255}
	colorRock      = color.RGBA{130, 120, 110, 255}
	colorTeleport  = color.RGBA{200, 100, 220, 160}
	colorUpgrade   = color.RGBA{255, 215, 0, 255}
	colorPlayer    = color.RGBA{100, 200, 100, 255}
	colorDashing   = color.RGBA{255, 255, 255, 255}
	colorCrouching = color.RGBA{80, 160, 80, 255}
	colorView      = color.RGBA{255, 255, 255, 160}
	colorOverlay   = color.RGBA{0, 0, 0, 128}
)

// viewLength is the drawn look direction length in world units
const viewLength = 1.5

// Options configures a Playing scene
type Options struct {
	Logger *zap.Logger

	// Character names the tuning file, for recordings
	Character string
	TickRate  int

	// RecordPath enables input recording when set
	RecordPath string
	// Replay drives the character from a recording instead of the live input
	Replay *replay.Replayer
	// Reloads delivers hot-reloaded character tuning
	Reloads <-chan config.Reload

	ScreenW int
	ScreenH int
}

// Playing hosts one sandbox runner and draws it
type Playing struct {
	stageCfg *config.StageConfig
	charCfg  *config.CharacterConfig
	input    system.InputSource
	opts     Options
	logger   *zap.Logger

	runner *sandbox.Runner
	state  state.SimState
	resume state.SimState

	recorder *recorder
}

// recorder pairs the replay recorder with the path it saves to
type recorder struct {
	*replay.Recorder
	path string
}

// New creates a new Playing scene.
// If opts.RecordPath is not empty, the live input is recorded.
func New(stageCfg *config.StageConfig, charCfg *config.CharacterConfig, input system.InputSource, opts Options) (*Playing, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if charCfg == nil {
		charCfg = config.Default()
	}

	p := &Playing{
		stageCfg: stageCfg,
		charCfg:  charCfg,
		input:    input,
		opts:     opts,
		logger:   opts.Logger,
		state:    state.StateRunning,
	}
	if opts.Replay != nil {
		p.state = state.StateReplaying
	}
	p.resume = p.state

	if err := p.start(); err != nil {
		return nil, err
	}
	return p, nil
}

// start builds a fresh runner, restarting any recording
func (p *Playing) start() error {
	src := p.input
	switch {
	case p.opts.Replay != nil:
		src = p.opts.Replay
	case p.opts.RecordPath != "":
		rec := replay.NewRecorder(p.stageCfg.ID, p.opts.Character, p.opts.TickRate)
		p.recorder = &recorder{Recorder: rec, path: p.opts.RecordPath}
		src = rec.Tap(p.input)
		p.logger.Info("recording enabled", zap.String("path", p.opts.RecordPath))
	}

	runner, err := sandbox.NewRunner(p.stageCfg, p.charCfg, src, p.logger)
	if err != nil {
		return err
	}
	p.runner = runner
	return nil
}

// Runner returns the hosted simulation
func (p *Playing) Runner() *sandbox.Runner {
	return p.runner
}

// State returns the simulation state
func (p *Playing) State() state.SimState {
	return p.state
}

// Update proceeds the simulation (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	p.applyReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return nil, scene.ErrQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		p.saveRecording()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && p.opts.Replay == nil {
		p.restart()
		return nil, nil
	}

	switch p.state {
	case state.StateRunning, state.StateReplaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.resume = p.state
			p.state = state.StatePaused
			return nil, nil
		}
		p.step(dt)
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = p.resume
		} else if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			// Single step while paused
			p.step(dt)
		}
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) step(dt float64) {
	p.runner.Step(dt)

	if p.opts.Replay != nil && p.opts.Replay.Done() {
		s := p.runner.Snapshot()
		p.logger.Info("replay finished",
			zap.Int("frame", s.Frame),
			zap.Float64s("position", s.Position[:]),
			zap.String("state", s.State),
		)
		p.state = state.StateFinished
	}
}

// applyReloads swaps in any hot-reloaded tuning without blocking
func (p *Playing) applyReloads() {
	for {
		select {
		case r, ok := <-p.opts.Reloads:
			if !ok {
				p.opts.Reloads = nil
				return
			}
			if r.Err != nil {
				// The watcher already logged it; keep the current tuning
				continue
			}
			if err := p.runner.Controller().ApplyConfig(r.Config); err != nil {
				p.logger.Warn("rejected reloaded config", zap.Error(err))
				continue
			}
			p.charCfg = r.Config
		default:
			return
		}
	}
}

func (p *Playing) restart() {
	p.saveRecording()
	if err := p.start(); err != nil {
		// The same configs built the first runner
		p.logger.Error("failed to restart", zap.Error(err))
		return
	}
	p.state = state.StateRunning
	p.resume = p.state
	p.logger.Info("sandbox restarted")
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || p.recorder.FrameCount() == 0 {
		return
	}

	filename := p.recorder.path
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		p.logger.Error("failed to save recording", zap.String("path", filename), zap.Error(err))
	} else {
		p.logger.Info("recording saved", zap.String("path", filename), zap.Int("frames", p.recorder.FrameCount()))
	}
}

// Draw renders the stage, the character and the HUD
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	camX, camY := p.camera()
	p.drawBodies(screen, camX, camY)
	p.drawCharacter(screen, camX, camY)
	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, "PAUSED\n\nESC: resume | N: step")
	case state.StateFinished:
		p.drawOverlay(screen, "REPLAY FINISHED\n\nQ: quit")
	}
}

// camera centers on the character, clamped to the stage bounds
func (p *Playing) camera() (float64, float64) {
	screenW, screenH := p.screenSize()
	stageW, stageH := p.runner.World().Size()
	x, y, w, h := p.runner.Motor().Rect()

	camX := clamp(x+w/2-float64(screenW)/2, 0, max(0, stageW-float64(screenW)))
	camY := clamp(y+h/2-float64(screenH)/2, 0, max(0, stageH-float64(screenH)))
	return camX, camY
}

func (p *Playing) drawBodies(screen *ebiten.Image, camX, camY float64) {
	for _, b := range p.runner.World().Bodies() {
		if b.Removed() {
			continue
		}
		c := bodyColor(b)
		if c == nil {
			continue
		}
		obj := b.Object
		vector.FillRect(screen, float32(obj.X-camX), float32(obj.Y-camY), float32(obj.W), float32(obj.H), c, false)
	}
}

func bodyColor(b *sandbox.Body) color.Color {
	switch b.Type {
	case sandbox.BodyWall:
		return colorWall
	case sandbox.BodyPlatform:
		return colorPlatform
	case sandbox.BodyBreakable:
		if b.Tag == sandbox.PlantTag {
			return colorPlant
		}
		return colorRock
	case sandbox.BodyTrigger:
		if tr := b.Trigger(); tr != nil && tr.Kind == config.TriggerTeleport {
			return colorTeleport
		}
		return colorUpgrade
	case sandbox.BodyZone:
		switch b.Tag {
		case entity.TagWater:
			return colorWater
		case entity.TagHot:
			return colorHot
		case entity.TagCold:
			return colorCold
		case entity.TagClimb:
			return colorClimb
		}
	}
	return nil
}

func (p *Playing) drawCharacter(screen *ebiten.Image, camX, camY float64) {
	ch := p.runner.Controller().Character()
	x, y, w, h := p.runner.Motor().Rect()

	c := colorPlayer
	switch {
	case ch.Dashing():
		c = colorDashing
	case ch.Crouch.IsCrouching:
		c = colorCrouching
	}
	vector.FillRect(screen, float32(x-camX), float32(y-camY), float32(w), float32(h), c, false)

	// Look direction from the head, folded onto the facing side
	world := p.runner.World()
	hx, hy := world.ToPixels(ch.HeadPosition())
	dir := ch.ViewDirection()
	heading := p.runner.Motor().Heading()
	ts := world.TileSize()
	ex := hx + (dir.X()+dir.Z()*heading)*viewLength*ts
	ey := hy - dir.Y()*viewLength*ts
	vector.StrokeLine(screen, float32(hx-camX), float32(hy-camY), float32(ex-camX), float32(ey-camY), 1, colorView, false)
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	s := p.runner.Snapshot()
	ch := p.runner.Controller().Character()

	status := fmt.Sprintf("%s | frame %d | %s\npos %.2f, %.2f  vel %.2f, %.2f  pitch %.0f\nupgrades %s",
		p.state, s.Frame, s.State,
		s.Position.X(), s.Position.Y(), s.Velocity.X(), s.Velocity.Y(), ch.Pitch,
		ch.Upgrades,
	)
	if p.recorder != nil {
		status += fmt.Sprintf("\nREC %d frames (F5 save)", p.recorder.FrameCount())
	}
	ebitenutil.DebugPrint(screen, status)

	_, screenH := p.screenSize()
	controls := "A/D: Move | W/S: Climb | Space: Jump | Shift: Sprint | C: Crouch | X: Dash | E: Use | Mouse: Look | ESC: Pause | R: Restart"
	ebitenutil.DebugPrintAt(screen, controls, 4, screenH-16)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, text string) {
	screenW, screenH := p.screenSize()
	vector.FillRect(screen, 0, 0, float32(screenW), float32(screenH), colorOverlay, false)
	ebitenutil.DebugPrintAt(screen, text, screenW/2-60, screenH/2-20)
}

func (p *Playing) screenSize() (int, int) {
	w, h := p.opts.ScreenW, p.opts.ScreenH
	if w <= 0 || h <= 0 {
		sw, sh := p.runner.World().Size()
		return int(sw), int(sh)
	}
	return w, h
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	p.logger.Info("sandbox started",
		zap.String("stage", p.stageCfg.ID),
		zap.Stringer("state", p.state),
	)
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// Layout returns the sandbox screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenSize()
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
