package systems

// hslToRGB converts hue, saturation and lightness in [0,1] to RGB.
func hslToRGB(h, s, l float32) (r, g, b float32) {
	if s == 0 {
		return l, l, l
	}
	var hi float32
	if l <= 0.5 {
		hi = l * (1 + s)
	} else {
		hi = l + s - l*s
	}
	lo := 2*l - hi
	return hueToChannel(lo, hi, h+1.0/3), hueToChannel(lo, hi, h), hueToChannel(lo, hi, h-1.0/3)
}

func hueToChannel(lo, hi, t float32) float32 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return lo + (hi-lo)*6*t
	case t < 0.5:
		return hi
	case t < 2.0/3:
		return lo + (hi-lo)*6*(2.0/3-t)
	}
	return lo
}

// frac returns x mod 1 in [0,1).
func frac(x float32) float32 {
	f := x - float32(int64(x))
	if f < 0 {
		f++
	}
	if f >= 1 {
		f = 0
	}
	return f
}
