package detector

import (
	"errors"
	"testing"
)

func TestHandLandmarks_Complete(t *testing.T) {
	t.Run("full hand is complete", func(t *testing.T) {
		hand := OpenPalmLandmarks()
		if !hand.Complete() {
			t.Error("expected a 21-point hand to be complete")
		}
	})

	t.Run("partial hand is incomplete", func(t *testing.T) {
		hand := MalformedLandmarks()
		if hand.Complete() {
			t.Errorf("expected %d-point hand to be incomplete", len(hand.Points))
		}
	})

	t.Run("nil hand is incomplete", func(t *testing.T) {
		var hand *HandLandmarks
		if hand.Complete() {
			t.Error("expected nil hand to be incomplete")
		}
	})
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected no hands, got %d", len(hands))
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{OpenPalmLandmarks()})

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("expected 1 hand, got %d", len(hands))
		}
		if hands[0].Handedness != "Right" {
			t.Errorf("expected Right hand, got %s", hands[0].Handedness)
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()
		wantErr := errors.New("camera unplugged")
		mock.SetError(wantErr)

		_, err := mock.Detect(nil)

		if !errors.Is(err, wantErr) {
			t.Errorf("expected configured error, got %v", err)
		}
	})
}

func TestHandWithFingers_Geometry(t *testing.T) {
	t.Run("extended finger tip above pip", func(t *testing.T) {
		hand := HandWithFingers([5]bool{false, true, false, false, false})

		if hand.Points[IndexTip].Y >= hand.Points[IndexPIP].Y {
			t.Error("expected extended index tip above its PIP joint")
		}
		if hand.Points[MiddleTip].Y <= hand.Points[MiddlePIP].Y {
			t.Error("expected curled middle tip below its PIP joint")
		}
	})

	t.Run("extended thumb tip left of ip", func(t *testing.T) {
		hand := HandWithFingers([5]bool{true, false, false, false, false})

		if hand.Points[ThumbTip].X >= hand.Points[ThumbIP].X {
			t.Error("expected extended thumb tip left of its IP joint")
		}
	})

	t.Run("count order raises index first thumb last", func(t *testing.T) {
		one := HandWithCount(1)
		if one.Points[IndexTip].Y >= one.Points[IndexPIP].Y {
			t.Error("expected index raised for count 1")
		}
		if one.Points[ThumbTip].X < one.Points[ThumbIP].X {
			t.Error("expected thumb curled for count 1")
		}

		five := HandWithCount(5)
		if five.Points[ThumbTip].X >= five.Points[ThumbIP].X {
			t.Error("expected thumb raised for count 5")
		}
	})
}
