// Package pin resolves the marker image for a proximity classification at the
// current viewport width.
package pin

// Classification is the proximity state a marker represents.
type Classification int

const (
	UserLocation Classification = iota
	WithinRadius
	OutsideRadius
)

func (c Classification) String() string {
	switch c {
	case UserLocation:
		return "user"
	case WithinRadius:
		return "within"
	default:
		return "outside"
	}
}

// Image assets served next to the map page.
const (
	UserLocationURL  = "pin (1).png"
	WithinRadiusURL  = "pin.png"
	OutsideRadiusURL = "pin (2).png"
)

// Breakpoints in CSS pixels.
const (
	SmallMaxWidth  = 640
	MediumMaxWidth = 1024
)

// Icon describes a square marker image anchored at its bottom center.
type Icon struct {
	URL    string `json:"url"`
	SizePx int    `json:"size_px"`
}

// Anchor is the pixel offset of the point that touches the coordinate.
func (i Icon) Anchor() (x, y int) {
	return i.SizePx / 2, i.SizePx
}

// LabelAnchor is where a marker's popup attaches, relative to the anchor.
func (i Icon) LabelAnchor() (x, y int) {
	return 0, -i.SizePx
}

// SizeFor returns the icon edge length for a viewport width.
func SizeFor(viewportWidthPx int) int {
	switch {
	case viewportWidthPx <= SmallMaxWidth:
		return 25
	case viewportWidthPx <= MediumMaxWidth:
		return 28
	default:
		return 32
	}
}

// Resolve maps a classification and viewport width to an icon.
func Resolve(c Classification, viewportWidthPx int) Icon {
	url := OutsideRadiusURL
	switch c {
	case UserLocation:
		url = UserLocationURL
	case WithinRadius:
		url = WithinRadiusURL
	}
	return Icon{URL: url, SizePx: SizeFor(viewportWidthPx)}
}

func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
