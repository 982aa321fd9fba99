package translate

// Options are the two runtime switches of the translator. Implementations are
// read on every event, so changes take effect on the next keystroke.
type Options interface {
	ApplicationKeypad() bool
	SwapCapsAndControl() bool
}

// StaticOptions is a fixed Options value.
type StaticOptions struct {
	Keypad bool
	Swap   bool
}

func (o StaticOptions) ApplicationKeypad() bool  { return o.Keypad }
func (o StaticOptions) SwapCapsAndControl() bool { return o.Swap }
