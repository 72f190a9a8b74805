package entity

// Region is a bounding region of a detected object within an image.
type Region struct {
	X      int `json:"x"`      // left edge in pixels
	Y      int `json:"y"`      // top edge in pixels
	Width  int `json:"width"`  // region width in pixels
	Height int `json:"height"` // region height in pixels
}

// Center returns the pixel coordinates of the region center.
func (r Region) Center() (x, y int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Area returns the region area in pixels.
func (r Region) Area() int {
	return r.Width * r.Height
}

// Detection is one object found by the detection backend.
// Immutable after the detector produces it.
type Detection struct {
	Image      string  `json:"image"`      // source image path
	Region     Region  `json:"region"`     // bounding region within the image
	Category   string  `json:"category"`   // detector-assigned category label
	Confidence float64 `json:"confidence"` // detector confidence in [0, 1]
	Crop       []byte  `json:"-"`          // encoded crop of the region, handed to the VLM
}
