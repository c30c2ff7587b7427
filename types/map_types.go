package types

// Viewport is the geographic window of a single map request. North is
// always greater than south; a viewport with west > east crosses the
// antimeridian and is treated as the union of [west,180] and [-180,east].
type Viewport struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// WorldViewport is the default when bounds are absent or malformed.
var WorldViewport = Viewport{North: 90, South: -90, East: 180, West: -180}

func (v Viewport) WrapsAntimeridian() bool {
	return v.West > v.East
}

// Contains reports whether the point falls inside the viewport.
func (v Viewport) Contains(lat, lng float64) bool {
	if lat < v.South || lat > v.North {
		return false
	}
	if !v.WrapsAntimeridian() {
		return lng >= v.West && lng <= v.East
	}
	return lng >= v.West || lng <= v.East
}

// MapRequestContext carries hints about why the map request was made.
// Plain user panning and an AI assistant jumping to a location get
// different clustering treatment.
type MapRequestContext struct {
	Source        string `json:"source"` // ai | manual | initial
	Intent        string `json:"intent"` // explore | specific_location | filtered_search
	ExpectedCount int    `json:"expectedCount,omitempty"`
	LocationName  string `json:"locationName,omitempty"`
	LocationType  string `json:"locationType,omitempty"` // subdivision | city | county | custom
}

// Polygon is an ordered sequence of [lng, lat] rings.
type Polygon [][][]float64

// Cluster is one aggregated map marker. The four variants share only the
// placement point and count; tier-specific fields live on the concrete
// types so a grid cluster can never carry a static centroid by accident.
type Cluster interface {
	// ClusterKind returns the clusterType wire value.
	ClusterKind() string
	// Size returns the number of listings the marker aggregates.
	Size() int
}

type RegionCluster struct {
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Count       int      `json:"count"`
	RegionName  string   `json:"regionName"`
	CountyCount int      `json:"countyCount"`
	CityCount   int      `json:"cityCount"`
	AvgPrice    int      `json:"avgPrice"`
	MinPrice    float64  `json:"minPrice"`
	MaxPrice    float64  `json:"maxPrice"`
	MlsSources  []string `json:"mlsSources"`
	IsCluster   bool     `json:"isCluster"`
	ClusterType string   `json:"clusterType"`
	Polygon     Polygon  `json:"polygon,omitempty"`
}

func (c RegionCluster) ClusterKind() string { return "region" }
func (c RegionCluster) Size() int           { return c.Count }

type CountyCluster struct {
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Count       int      `json:"count"`
	CountyName  string   `json:"countyName"`
	CityCount   int      `json:"cityCount"`
	AvgPrice    int      `json:"avgPrice"`
	MinPrice    float64  `json:"minPrice"`
	MaxPrice    float64  `json:"maxPrice"`
	MlsSources  []string `json:"mlsSources"`
	IsCluster   bool     `json:"isCluster"`
	ClusterType string   `json:"clusterType"`
	Polygon     Polygon  `json:"polygon,omitempty"`
}

func (c CountyCluster) ClusterKind() string { return "county" }
func (c CountyCluster) Size() int           { return c.Count }

type CityCluster struct {
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Count       int      `json:"count"`
	CityName    string   `json:"cityName"`
	AvgPrice    int      `json:"avgPrice"`
	MinPrice    float64  `json:"minPrice"`
	MaxPrice    float64  `json:"maxPrice"`
	MlsSources  []string `json:"mlsSources"`
	IsCluster   bool     `json:"isCluster"`
	ClusterType string   `json:"clusterType"`
	Polygon     Polygon  `json:"polygon,omitempty"`
}

func (c CityCluster) ClusterKind() string { return "city" }
func (c CityCluster) Size() int           { return c.Count }

// GridCluster is an ad-hoc cell of raw listing coordinates. Latitude and
// longitude are the true centroid of the member listings, never the cell
// anchor, so markers look naturally distributed.
type GridCluster struct {
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	Count            int      `json:"count"`
	AvgPrice         int      `json:"avgPrice"`
	MinPrice         float64  `json:"minPrice"`
	MaxPrice         float64  `json:"maxPrice"`
	PropertyTypes    []string `json:"propertyTypes"`
	MlsSources       []string `json:"mlsSources"`
	SampleListingIds []string `json:"sampleListingIds"`
	IsCluster        bool     `json:"isCluster"`
	ClusterType      string   `json:"clusterType"`
}

func (c GridCluster) ClusterKind() string { return "grid" }
func (c GridCluster) Size() int           { return c.Count }

// ListingSummary is the minimal projection the map tier is allowed to
// request. Anything heavier belongs to the listing detail endpoints.
type ListingSummary struct {
	ListingID             string  `json:"listingId" gorm:"column:listing_id"`
	ListingKey            string  `json:"listingKey" gorm:"column:listing_key"`
	Slug                  string  `json:"slug" gorm:"column:slug"`
	SlugAddress           string  `json:"slugAddress" gorm:"column:slug_address"`
	Latitude              float64 `json:"latitude" gorm:"column:latitude"`
	Longitude             float64 `json:"longitude" gorm:"column:longitude"`
	ListPrice             float64 `json:"listPrice" gorm:"column:list_price"`
	BedroomsTotal         int     `json:"bedroomsTotal" gorm:"column:bedrooms_total"`
	BedsTotal             int     `json:"bedsTotal" gorm:"column:beds_total"`
	BathroomsTotalDecimal float64 `json:"bathroomsTotalDecimal" gorm:"column:bathrooms_total_decimal"`
	LivingArea            float64 `json:"livingArea" gorm:"column:living_area"`
	Address               string  `json:"address" gorm:"column:address"`
	UnparsedAddress       string  `json:"unparsedAddress" gorm:"column:unparsed_address"`
	City                  string  `json:"city" gorm:"column:city"`
	PropertyType          string  `json:"propertyType" gorm:"column:property_type"`
	PropertySubType       string  `json:"propertySubType" gorm:"column:property_sub_type"`
	MlsSource             string  `json:"mlsSource" gorm:"column:mls_source"`
	PoolYn                bool    `json:"poolYn" gorm:"column:pool_yn"`
	SpaYn                 bool    `json:"spaYn" gorm:"column:spa_yn"`
	PrimaryPhotoURL       string  `json:"primaryPhotoUrl" gorm:"column:primary_photo_url"`
}

// MapResult is the transport-agnostic output of the decision pipeline.
// The buffered and streamed serializers both consume this value so the
// two wire formats can never diverge in business logic.
type MapResult struct {
	Type             string // "clusters" | "listings"
	Zoom             int
	GridSize         float64
	ClusteringMethod string
	Clusters         []Cluster
	Listings         []ListingSummary
	TotalCount       int
	ListingsIncluded bool
	Context          MapRequestContext
}
