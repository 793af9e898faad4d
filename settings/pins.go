package settings

import "github.com/RustamC/wotan/rrgraph"

// allocAndSetPinProbabilities assigns driverProb to every non-global driver
// pin and receiverProb to every non-global receiver pin of the fill block
// type; every other pin slot (OPEN, global) gets probability 0.
func (s *Settings) allocAndSetPinProbabilities(store *rrgraph.Store, driverProb, receiverProb float64) {
	if len(store.BlockTypes()) == 0 {
		s.PinProbabilities = nil
		return
	}
	bt := store.BlockType(store.FillType())
	probs := make([]float64, len(bt.Pins))
	for i, pin := range bt.Pins {
		switch {
		case pin.Global:
			probs[i] = 0
		case pin.Type == rrgraph.PinDriver:
			probs[i] = driverProb
		case pin.Type == rrgraph.PinReceiver:
			probs[i] = receiverProb
		default:
			probs[i] = 0
		}
	}
	s.PinProbabilities = probs
}
