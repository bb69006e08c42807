package models

import "fmt"

type SignalAction string

const (
	SignalActionBuy  SignalAction = "BUY"
	SignalActionSell SignalAction = "SELL"
	SignalActionHold SignalAction = "HOLD"
)

func (a SignalAction) Validate() error {
	switch a {
	case SignalActionBuy, SignalActionSell, SignalActionHold:
		return nil
	default:
		return fmt.Errorf("SignalAction.Validate: unknown action: %v", a)
	}
}

// Signal is the per-bar output of a SignalSource. Confidence is bounded to
// [0, 1]; a HOLD emitted before warmup carries confidence 0.
type Signal struct {
	Action     SignalAction `json:"action"`
	Confidence float64      `json:"confidence"`
}

func (s Signal) Validate() error {
	if err := s.Action.Validate(); err != nil {
		return err
	}

	if s.Confidence < 0 || s.Confidence > 1 {
		return fmt.Errorf("Signal.Validate: confidence %v outside [0, 1]", s.Confidence)
	}

	return nil
}

func NewHoldSignal() Signal {
	return Signal{
		Action:     SignalActionHold,
		Confidence: 0,
	}
}

func NewSignal(action SignalAction, confidence float64) Signal {
	if confidence < 0 {
		confidence = 0
	}

	if confidence > 1 {
		confidence = 1
	}

	return Signal{
		Action:     action,
		Confidence: confidence,
	}
}
