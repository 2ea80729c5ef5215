package catalog

// CompositeRef is a handle to a server-side composite. The local process
// never holds pixel data; the composite exists only inside the catalog
// until the rendered thumbnail bytes arrive.
type CompositeRef struct {
	ID         string
	ImageCount int
}

// Surface-reflectance collection and the visible-spectrum bands used for
// the composite (red, green, blue equivalents).
const (
	defaultCollection = "sentinel2-sr"

	// Surface-reflectance values are stored as ints scaled by 10000;
	// dividing normalizes to reflectance units in [0, 1].
	reflectanceScale = 10000
)

var visibleBands = []string{"B4", "B3", "B2"}

// sessionRequest is the auth handshake payload. The project identity is
// bound to the session for billing on all subsequent queries.
type sessionRequest struct {
	Project string `json:"project"`
}

type sessionResponse struct {
	SessionToken string `json:"session_token"`
}

// compositeRequest describes a filtered, masked, median-reduced composite
// for the catalog to build.
type compositeRequest struct {
	Collection       string    `json:"collection"`
	Region           []float64 `json:"region"` // [min_lon, min_lat, max_lon, max_lat]
	StartDate        string    `json:"start_date"`
	EndDate          string    `json:"end_date"` // exclusive
	MaxCloudCover    float64   `json:"max_cloud_cover"`
	Bands            []string  `json:"bands"`
	Reducer          string    `json:"reducer"`
	QABand           string    `json:"qa_band"`
	QAMaskBits       []int     `json:"qa_mask_bits"`
	ReflectanceScale float64   `json:"reflectance_scale"`
}

type compositeResponse struct {
	CompositeID string `json:"composite_id"`
	ImageCount  int    `json:"image_count"`
}

// thumbnailRequest asks the catalog to render the composite as a PNG.
type thumbnailRequest struct {
	Region     []float64 `json:"region"`
	Dimensions int       `json:"dimensions"`
	Min        float64   `json:"min"`
	Max        float64   `json:"max"`
	Format     string    `json:"format"`
}

type thumbnailResponse struct {
	URL string `json:"url"`
}
