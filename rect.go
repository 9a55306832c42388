package teximage

// Rect is an axis-aligned rectangle in floating point coordinates.
type Rect struct {
	X, Y, W, H float64
}

// TexRect converts a rectangle in pixel coordinates of the image into
// normalized texture coordinates in [0,1]. An empty image yields the zero
// rectangle.
func (img *Image) TexRect(r Rect) Rect {
	w, h := img.Width(), img.Height()
	if w == 0 || h == 0 {
		return Rect{}
	}
	return Rect{
		X: r.X / float64(w),
		Y: r.Y / float64(h),
		W: r.W / float64(w),
		H: r.H / float64(h),
	}
}
