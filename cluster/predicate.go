package cluster

import (
	"strconv"
	"strings"

	"github.com/socal-mls/map-api/types"
	"gorm.io/gorm"
)

// Filters is the flat, fully optional constraint set of a map request.
// The zero value of every field means "no constraint"; absence never
// narrows results.
type Filters struct {
	ListingType     string // sale | rental | multifamily | land
	PropertyType    string
	PropertySubType string
	MinPrice        float64
	MaxPrice        float64
	Beds            int
	Baths           float64
	MinSqft         float64
	MaxSqft         float64
	MinLotSize      float64
	MaxLotSize      float64
	MinYear         int
	MaxYear         int
	MinGarages      int
	PoolYn          bool
	SpaYn           bool
	ViewYn          bool
	GarageYn        bool
	GatedCommunity  bool
	SeniorCommunity bool
	AssociationYN   bool
	HOA             string // "none" or a monthly fee ceiling
	City            string
	Subdivision     string
	LandType        string
	MlsSources      []string
}

const maxPriceOpen = 99999999

type clause struct {
	expr string
	args []interface{}
}

// Predicate is the single filter value passed unchanged into every
// downstream query, so cluster counts and listing fetches always agree.
// OR-style constraints accumulate in one list: each contributor appends,
// never assigns, so independent filters cannot overwrite each other.
type Predicate struct {
	wheres []clause
	ors    []clause
}

// Where adds an AND constraint.
func (p *Predicate) Where(expr string, args ...interface{}) {
	p.wheres = append(p.wheres, clause{expr: expr, args: args})
}

// Or appends one alternative to the shared OR list.
func (p *Predicate) Or(expr string, args ...interface{}) {
	p.ors = append(p.ors, clause{expr: expr, args: args})
}

// ORClauses exposes the accumulated OR expressions.
func (p *Predicate) ORClauses() []string {
	out := make([]string, len(p.ors))
	for i, c := range p.ors {
		out[i] = c.expr
	}
	return out
}

// Scope applies the predicate to a query. The OR list becomes a single
// parenthesized disjunction ANDed with the rest.
func (p *Predicate) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, c := range p.wheres {
			db = db.Where(c.expr, c.args...)
		}
		if len(p.ors) > 0 {
			exprs := make([]string, len(p.ors))
			var args []interface{}
			for i, c := range p.ors {
				exprs[i] = c.expr
				args = append(args, c.args...)
			}
			db = db.Where("("+strings.Join(exprs, " OR ")+")", args...)
		}
		return db
	}
}

// ViewportScope constrains a query to the viewport. An
// antimeridian-crossing window (west > east) splits the longitude test
// into a disjunction instead of inheriting a broken min/max range.
func ViewportScope(v types.Viewport) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("latitude >= ? AND latitude <= ?", v.South, v.North)
		if v.WrapsAntimeridian() {
			return db.Where("(longitude >= ? OR longitude <= ?)", v.West, v.East)
		}
		return db.Where("longitude >= ? AND longitude <= ?", v.West, v.East)
	}
}

func propertyTypeCode(listingType string) string {
	switch listingType {
	case "rental":
		return "B"
	case "multifamily":
		return "C"
	case "land":
		return "D"
	default:
		return "A"
	}
}

// BuildPredicate translates raw filters into the request predicate. Pure;
// no I/O.
func BuildPredicate(f Filters) *Predicate {
	p := &Predicate{}
	p.Where("standard_status = ?", "Active")
	if f.PropertyType != "" {
		p.Where("property_type = ?", f.PropertyType)
	} else {
		p.Where("property_type = ?", propertyTypeCode(f.ListingType))
	}
	p.Where("list_price IS NOT NULL AND list_price > 0")

	if f.MinPrice > 0 {
		p.Where("list_price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 && f.MaxPrice < maxPriceOpen {
		p.Where("list_price <= ?", f.MaxPrice)
	}
	if f.Beds > 0 {
		// Bed counts live in two source-schema fields; both must stay in
		// the OR list together with any other OR contributor.
		p.Or("bedrooms_total >= ?", f.Beds)
		p.Or("beds_total >= ?", f.Beds)
	}
	if f.Baths > 0 {
		p.Where("bathrooms_total_decimal >= ?", f.Baths)
	}
	if f.MinSqft > 0 {
		p.Where("living_area >= ?", f.MinSqft)
	}
	if f.MaxSqft > 0 {
		p.Where("living_area <= ?", f.MaxSqft)
	}
	if f.MinLotSize > 0 {
		p.Where("lot_size_sqft >= ?", f.MinLotSize)
	}
	if f.MaxLotSize > 0 {
		p.Where("lot_size_sqft <= ?", f.MaxLotSize)
	}
	if f.MinYear > 0 {
		p.Where("year_built >= ?", f.MinYear)
	}
	if f.MaxYear > 0 {
		p.Where("year_built <= ?", f.MaxYear)
	}
	if f.MinGarages > 0 {
		p.Where("garage_spaces >= ?", f.MinGarages)
	}
	if f.GarageYn {
		// Garages are flagged two different ways in the source schema.
		p.Or("garage_yn = TRUE")
		p.Or("garage_spaces >= 1")
	}
	if f.PoolYn {
		p.Where("pool_yn = TRUE")
	}
	if f.SpaYn {
		p.Where("spa_yn = TRUE")
	}
	if f.ViewYn {
		p.Where("view_yn = TRUE")
	}
	if f.GatedCommunity {
		p.Where("gated_community_yn = TRUE")
	}
	if f.SeniorCommunity {
		p.Where("senior_community_yn = TRUE")
	}
	if f.AssociationYN {
		p.Where("association_yn = TRUE")
	}
	switch {
	case f.HOA == "none":
		p.Where("association_yn = FALSE")
	case f.HOA != "":
		if ceiling, err := strconv.ParseFloat(f.HOA, 64); err == nil {
			p.Where("association_fee <= ?", ceiling)
		}
	}
	if f.City != "" && f.City != "all" {
		p.Where("city ILIKE ?", "%"+f.City+"%")
	}
	if f.Subdivision != "" {
		p.Where("subdivision_name ILIKE ?", "%"+f.Subdivision+"%")
	}
	if f.PropertySubType != "" && f.PropertySubType != "all" {
		p.Where("property_sub_type ILIKE ?", "%"+f.PropertySubType+"%")
	}
	if f.LandType != "" {
		p.Where("land_type = ?", f.LandType)
	}
	if len(f.MlsSources) > 0 {
		p.Where("mls_source IN ?", f.MlsSources)
	}
	return p
}
