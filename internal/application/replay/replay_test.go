package replay

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/kinecore/internal/application/system"
	"github.com/younwookim/kinecore/internal/infrastructure/config"
	"github.com/younwookim/kinecore/internal/infrastructure/sandbox"
)

func TestFrameInput_JSONIsFlat(t *testing.T) {
	input := FrameInput{
		F: 10,
		InputState: system.InputState{
			Move: mgl64.Vec2{1, 0},
			Jump: true,
		},
	}

	data, err := json.Marshal(input)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "f")
	assert.Contains(t, raw, "move")
	assert.Equal(t, true, raw["jump"])
	assert.NotContains(t, raw, "dash", "false buttons are omitted")

	var decoded FrameInput
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, input, decoded)
}

func TestReplayer_Next(t *testing.T) {
	data := ReplayData{
		Version: FormatVersion,
		Stage:   "test",
		Frames: []FrameInput{
			{F: 0, InputState: system.InputState{Move: mgl64.Vec2{-1, 0}}},
			{F: 1, InputState: system.InputState{Move: mgl64.Vec2{1, 0}, Jump: true}},
			{F: 2},
		},
	}

	replayer := NewReplayer(data)

	// Frame 0
	input, ok := replayer.Next()
	require.True(t, ok)
	assert.Equal(t, -1.0, input.Move.X())

	// Frame 1
	input, ok = replayer.Next()
	require.True(t, ok)
	assert.Equal(t, 1.0, input.Move.X())
	assert.True(t, input.Jump)

	// Frame 2
	input, ok = replayer.Next()
	require.True(t, ok)
	assert.Equal(t, system.InputState{}, input)
	assert.True(t, replayer.Done())

	// End of frames
	_, ok = replayer.Next()
	assert.False(t, ok)
}

func TestReplayer_SnapshotPastEnd(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData(1, system.InputState{Sprint: true}))

	assert.True(t, replayer.Snapshot().Sprint)
	assert.Equal(t, system.InputState{}, replayer.Snapshot())
	assert.Equal(t, 1, replayer.CurrentFrame(), "frame counter stops at the end")
}

func TestReplayer_CurrentFrame(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData(5, system.InputState{}))

	assert.Equal(t, 0, replayer.CurrentFrame())

	replayer.Next()
	assert.Equal(t, 1, replayer.CurrentFrame())

	replayer.Next()
	replayer.Next()
	assert.Equal(t, 3, replayer.CurrentFrame())
	assert.Equal(t, 5, replayer.TotalFrames())
}

func TestReplayer_Reset(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData(3, system.InputState{Crouch: true}))

	// Advance to end
	replayer.Next()
	replayer.Next()
	replayer.Next()
	_, ok := replayer.Next()
	assert.False(t, ok)

	// Reset
	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())
	assert.False(t, replayer.Done())

	// Should be able to read again
	input, ok := replayer.Next()
	assert.True(t, ok)
	assert.True(t, input.Crouch)
}

func TestCreateTestReplayData(t *testing.T) {
	data := CreateTestReplayData(60, system.InputState{Dash: true})

	assert.Equal(t, FormatVersion, data.Version)
	assert.Equal(t, "test", data.Stage)
	assert.Equal(t, 60, data.TickRate)
	assert.Len(t, data.Frames, 60)

	for i, frame := range data.Frames {
		assert.Equal(t, i, frame.F, "Frame number mismatch at index %d", i)
		assert.True(t, frame.Dash)
	}
}

func TestRecorder_StopAndIsRecording(t *testing.T) {
	r := NewRecorder("demo", "character", 60)

	assert.True(t, r.IsRecording())
	r.RecordFrame(system.InputState{Jump: true})
	assert.Equal(t, 1, r.FrameCount())

	r.Stop()
	assert.False(t, r.IsRecording())

	// Should not record when stopped
	r.RecordFrame(system.InputState{Jump: true})
	assert.Equal(t, 1, r.FrameCount())
}

func TestRecorder_Tap(t *testing.T) {
	r := NewRecorder("demo", "character", 60)
	n := 0
	src := r.Tap(system.InputFunc(func() system.InputState {
		n++
		return system.InputState{Move: mgl64.Vec2{float64(n), 0}}
	}))

	src.Snapshot()
	got := src.Snapshot()

	assert.Equal(t, 2.0, got.Move.X())
	data := r.GetData()
	require.Len(t, data.Frames, 2)
	assert.Equal(t, 1, data.Frames[1].F)
	assert.Equal(t, got, data.Frames[1].InputState)
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	r := NewRecorder("demo", "character", 60)

	assert.ErrorIs(t, r.Save(path), ErrNoFrames)

	r.RecordFrame(system.InputState{Move: mgl64.Vec2{0.25, -1}, Interact: true})
	require.NoError(t, r.Save(path))

	data, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", data.Stage)
	assert.Equal(t, "character", data.Character)
	assert.Equal(t, r.GetData().Frames, data.Frames)
}

func TestLoadReplay_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadReplay(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "failed to open file")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = LoadReplay(bad)
	assert.ErrorContains(t, err, "failed to decode replay")

	negative := filepath.Join(dir, "negative.json")
	require.NoError(t, os.WriteFile(negative, []byte(`{"tickRate": -1}`), 0o644))
	_, err = LoadReplay(negative)
	assert.ErrorContains(t, err, "negative tick rate")
}

func TestGenerateFilename(t *testing.T) {
	assert.Regexp(t, `^replay_\d{8}_\d{6}\.json$`, GenerateFilename())
}

// A recorded run replayed through a fresh sandbox ends in the same state
func TestReplay_ReproducesRun(t *testing.T) {
	stage, err := config.NewLoader("../../../cmd/sandbox/configs").LoadStage("demo")
	require.NoError(t, err)

	script := func(frame int) system.InputState {
		switch {
		case frame < 30:
			return system.InputState{Move: mgl64.Vec2{1, 0}}
		case frame == 30:
			return system.InputState{Move: mgl64.Vec2{1, 0}, Jump: true}
		case frame < 60:
			return system.InputState{Move: mgl64.Vec2{0.5, 0}, Jump: true}
		case frame < 80:
			return system.InputState{Move: mgl64.Vec2{-1, 0}, Sprint: true}
		default:
			return system.InputState{Look: mgl64.Vec2{0, -1}, PointerLook: true}
		}
	}

	frame := 0
	rec := NewRecorder(stage.ID, "default", 60)
	live := rec.Tap(system.InputFunc(func() system.InputState {
		in := script(frame)
		frame++
		return in
	}))

	original, err := sandbox.NewRunner(stage, nil, live, nil)
	require.NoError(t, err)
	for i := 0; i < 120; i++ {
		original.Step(1.0 / 60)
	}

	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, rec.Save(path))
	data, err := LoadReplay(path)
	require.NoError(t, err)

	replayer := NewReplayer(*data)
	replayed, err := sandbox.NewRunner(stage, nil, replayer, nil)
	require.NoError(t, err)
	for !replayer.Done() {
		replayed.Step(1.0 / 60)
	}

	assert.Equal(t, original.Snapshot(), replayed.Snapshot())
	assert.Equal(t, original.Controller().Character().Pitch, replayed.Controller().Character().Pitch)
}
