package filter

// Antilog bends a linear 8-bit control into the 9-bit pot range so cutoff
// sweeps sound even. It is piecewise linear and strictly increasing.
func Antilog(v uint8) uint16 {
	x := uint16(v)
	switch v >> 5 {
	case 0, 1:
		return x * 4
	case 2:
		return 252 + (x-63)*2
	case 3:
		return 316 + (x-95)*2
	default:
		return 511 - (255 - x)
	}
}
