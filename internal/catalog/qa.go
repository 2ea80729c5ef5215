package catalog

// The surface-reflectance collection carries a bit-packed QA band; bits 10
// and 11 flag opaque cloud and cirrus respectively. The mask is applied
// server-side band-by-band, complementing the scene-level cloud-cover
// prefilter.
const (
	qaBandName = "QA60"

	cloudBit  = 10
	cirrusBit = 11
)

// maskBits returns the QA bit positions the catalog must treat as opaque.
func maskBits() []int {
	return []int{cloudBit, cirrusBit}
}

// PixelClear reports whether a QA bit-field value describes a usable pixel:
// neither the cloud bit nor the cirrus bit may be set.
func PixelClear(qa uint16) bool {
	return qa&(1<<cloudBit) == 0 && qa&(1<<cirrusBit) == 0
}
