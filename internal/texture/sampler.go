package texture

// Sample performs bilinear filtering of the open fraction with clamped
// coordinates; (0,0) is the top-left pixel centre.
func (m *Mask) Sample(u, v float64) float64 {
	w, h := m.Width, m.Height
	u = clamp01(u)
	v = clamp01(v)

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1 := min(x0+1, w-1)
	y1 := min(y0+1, h-1)
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	o := m.Open
	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	return o[y0*w+x0]*w00 + o[y0*w+x1]*w10 + o[y1*w+x0]*w01 + o[y1*w+x1]*w11
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
