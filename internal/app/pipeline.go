package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/overlay"
	"github.com/ayusman/mudra/internal/store"
)

// loopState is the per-frame state owned by the pipeline goroutine and
// passed explicitly through each step.
type loopState struct {
	dispatch    action.State
	stableCount int
	stableFor   int
	lastTrigger time.Time
}

func newLoopState() loopState {
	return loopState{
		dispatch:    action.NewState(),
		stableCount: action.CountNone,
	}
}

// observe folds one frame's detection into the loop state and returns
// the updated state with the HUD status for the frame. A nil hand means
// no detection this frame: it resets the stability window and fires
// nothing.
//
// An action fires only when the same count has been observed for the
// configured number of consecutive frames and the cooldown since the
// last fired action has passed. The dispatcher's own edge policy then
// suppresses repeats of an unchanged stable count.
func (a *App) observe(ctx context.Context, st loopState, hand *detector.HandLandmarks, now time.Time) (loopState, overlay.Status) {
	status := overlay.Status{Cooldown: a.cooldownRemaining(st, now)}

	if hand == nil {
		st.stableFor = 0
		st.stableCount = action.CountNone
		return st, status
	}

	count, fingers, err := a.counter.Count(hand)
	if err != nil {
		// Malformed landmarks: skip the frame, state untouched.
		log.Printf("Skipping frame: %v", err)
		return st, status
	}

	status.HandVisible = true
	status.Count = count
	status.Fingers = fingers
	status.Handedness = hand.Handedness

	if count == st.stableCount {
		st.stableFor++
	} else {
		st.stableCount = count
		st.stableFor = 1
	}

	if st.stableFor < a.cfg.StableFrames {
		return st, status
	}

	if st.stableFor == a.cfg.StableFrames {
		a.notifyCount(count)
	}

	if now.Sub(st.lastTrigger) < a.cfg.Cooldown() {
		return st, status
	}

	a.mu.RLock()
	dispatcher := a.dispatcher
	a.mu.RUnlock()

	next, res, err := dispatcher.Dispatch(ctx, count, st.dispatch)
	st.dispatch = next
	if err != nil {
		log.Printf("Action failed for count %d: %v", count, err)
	}
	if res.Fired {
		if err == nil {
			st.lastTrigger = now
			log.Printf("Action fired for count %d: %s %s", count, res.Action.Kind, res.Action.Target)
		}
		a.recordTrigger(res, err)
	}

	status.Cooldown = a.cooldownRemaining(st, now)
	return st, status
}

// cooldownRemaining returns how much of the cooldown window is left.
func (a *App) cooldownRemaining(st loopState, now time.Time) time.Duration {
	remaining := a.cfg.Cooldown() - now.Sub(st.lastTrigger)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (a *App) notifyCount(count int) {
	a.mu.RLock()
	cb := a.onCount
	a.mu.RUnlock()

	if cb != nil {
		cb(count)
	}
}

// recordTrigger writes a fired action to the history store.
// Store failures are logged and never interrupt the loop.
func (a *App) recordTrigger(res action.Result, actErr error) {
	if a.store == nil || !a.cfg.HistoryEnabled() {
		return
	}

	trigger := &store.Trigger{
		ID:          uuid.NewString(),
		FingerCount: res.Count,
		ActionKind:  string(res.Action.Kind),
		Target:      res.Action.Target,
		Success:     actErr == nil,
	}
	if actErr != nil {
		trigger.Error = actErr.Error()
	}

	if err := a.store.Triggers().Record(trigger); err != nil {
		log.Printf("Failed to record trigger: %v", err)
	}
}

// runPipeline is the frame loop. It manages the idle/active frame rate
// from motion detection, runs hand detection while active, and renders
// the HUD.
//
// Steps per frame:
// 1. Read a frame (mirrored by the camera when configured)
// 2. Motion detection drives idle (5 fps) vs active (15 fps) mode
// 3. In active mode, detect hands and classify the first one
// 4. Stability and cooldown gate the dispatch
// 5. Draw landmarks and the status bar, show the preview window
func (a *App) runPipeline() {
	ctx := context.Background()

	a.mu.RLock()
	stopCh := a.stopCh
	done := a.done
	a.mu.RUnlock()

	var exitErr error
	defer func() {
		if exitErr != nil {
			done <- exitErr
		}
		close(done)
	}()

	var hud *overlay.HUD
	if !a.cfg.Headless {
		hud = overlay.NewHUD("Mudra")
		defer hud.Close()
	}

	st := newLoopState()
	activeMode := false
	lastMotionTime := time.Now()
	readFailures := 0

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				readFailures++
				log.Printf("Error reading frame: %v", err)
				if readFailures >= maxReadFailures {
					exitErr = fmt.Errorf("capture device failed: %w", err)
					return
				}
				continue
			}
			readFailures = 0

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.Camera().SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			var hand *detector.HandLandmarks
			if activeMode {
				hands, err := a.Detector().Detect(frame)
				if err != nil {
					log.Printf("Error detecting hands: %v", err)
				} else if len(hands) > 0 {
					hand = &hands[0]
				}
			}

			var status overlay.Status
			st, status = a.observe(ctx, st, hand, time.Now())

			if hud != nil {
				if status.HandVisible {
					overlay.DrawLandmarks(frame, hand)
				}
				key := hud.Show(frame, status)
				if overlay.IsQuitKey(key) {
					frame.Close()
					a.requestQuit()
					return
				}
			}

			frame.Close()
		}
	}
}

func (a *App) requestQuit() {
	a.mu.RLock()
	cb := a.onQuit
	a.mu.RUnlock()

	if cb != nil {
		cb()
	}
}
