package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/younwookim/kinecore/internal/application/replay"
	"github.com/younwookim/kinecore/internal/application/system"
	"github.com/younwookim/kinecore/internal/infrastructure/config"
	"github.com/younwookim/kinecore/internal/infrastructure/sandbox"
)

var errNoFrames = errors.New("-frames must be positive without -replay")

// runHeadless simulates without a window and writes the final snapshot.
// Without a replay the character stands idle.
func runHeadless(w io.Writer, stage *config.StageConfig, cfg *config.CharacterConfig, replayer *replay.Replayer, frames, tickRate int, logger *zap.Logger) error {
	var src system.InputSource = system.InputFunc(func() system.InputState { return system.InputState{} })
	if replayer != nil {
		src = replayer
		if frames <= 0 {
			frames = replayer.TotalFrames()
		}
	}
	if frames <= 0 {
		return errNoFrames
	}

	runner, err := sandbox.NewRunner(stage, cfg, src, logger)
	if err != nil {
		return err
	}

	dt := 1.0 / float64(tickRate)
	for i := 0; i < frames; i++ {
		runner.Step(dt)
	}
	logger.Debug("headless run finished", zap.Int("frames", frames), zap.String("stage", stage.ID))

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(runner.Snapshot()); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}
