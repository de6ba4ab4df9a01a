package layout

// Shifter slides an offset along a fixed length. The result is always a pure
// percentage in [0%, 100%] of the length captured at construction.
type Shifter struct {
	length   float64
	pos      float64
	original Length
}

// NewShifter captures the track length and the current offset in pixels.
// A zero length makes every shift return the original offset.
func NewShifter(length, pos float64, original Length) *Shifter {
	return &Shifter{length: length, pos: pos, original: original}
}

// Original returns the offset captured at construction.
func (s *Shifter) Original() Length { return s.original }

// At returns the offset after sliding by shift pixels.
func (s *Shifter) At(shift float64) Length {
	if s.length <= 0 {
		return s.original
	}
	return Pct(100 * clamp(s.pos+shift, 0, s.length) / s.length)
}
