package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func whereExprs(p *Predicate) []string {
	out := make([]string, len(p.wheres))
	for i, c := range p.wheres {
		out[i] = c.expr
	}
	return out
}

func TestBuildPredicateDefaults(t *testing.T) {
	p := BuildPredicate(Filters{})

	exprs := whereExprs(p)
	assert.Contains(t, exprs, "standard_status = ?")
	assert.Contains(t, exprs, "property_type = ?")
	assert.Contains(t, exprs, "list_price IS NOT NULL AND list_price > 0")
	// Absence of a filter must never narrow results.
	assert.Len(t, exprs, 3)
	assert.Empty(t, p.ORClauses())
}

func TestBuildPredicateListingTypeCodes(t *testing.T) {
	cases := map[string]string{
		"sale":        "A",
		"rental":      "B",
		"multifamily": "C",
		"land":        "D",
		"":            "A",
	}
	for listingType, code := range cases {
		p := BuildPredicate(Filters{ListingType: listingType})
		require.NotEmpty(t, p.wheres)
		assert.Equal(t, code, p.wheres[1].args[0], "listingType %q", listingType)
	}
}

func TestBuildPredicateExplicitPropertyTypeWins(t *testing.T) {
	p := BuildPredicate(Filters{ListingType: "rental", PropertyType: "C"})
	assert.Equal(t, "C", p.wheres[1].args[0])
}

func TestORClausesAccumulate(t *testing.T) {
	// Beds and garage each contribute OR alternatives; the second
	// contributor must extend the list, never replace it.
	p := BuildPredicate(Filters{Beds: 3, GarageYn: true})

	ors := p.ORClauses()
	require.Len(t, ors, 4)
	assert.Equal(t, "bedrooms_total >= ?", ors[0])
	assert.Equal(t, "beds_total >= ?", ors[1])
	assert.Equal(t, "garage_yn = TRUE", ors[2])
	assert.Equal(t, "garage_spaces >= 1", ors[3])
}

func TestBuildPredicateHOAPolicies(t *testing.T) {
	none := BuildPredicate(Filters{HOA: "none"})
	assert.Contains(t, whereExprs(none), "association_yn = FALSE")

	ceiling := BuildPredicate(Filters{HOA: "350"})
	assert.Contains(t, whereExprs(ceiling), "association_fee <= ?")

	garbage := BuildPredicate(Filters{HOA: "whatever"})
	assert.NotContains(t, whereExprs(garbage), "association_fee <= ?")
	assert.NotContains(t, whereExprs(garbage), "association_yn = FALSE")
}

func TestBuildPredicateOpenPriceRange(t *testing.T) {
	p := BuildPredicate(Filters{MaxPrice: 99999999})
	assert.NotContains(t, whereExprs(p), "list_price <= ?", "sentinel max is an open range")

	q := BuildPredicate(Filters{MinPrice: 500000, MaxPrice: 800000})
	assert.Contains(t, whereExprs(q), "list_price >= ?")
	assert.Contains(t, whereExprs(q), "list_price <= ?")
}

func TestBuildPredicateCityAllIsNoConstraint(t *testing.T) {
	p := BuildPredicate(Filters{City: "all"})
	assert.NotContains(t, whereExprs(p), "city ILIKE ?")

	q := BuildPredicate(Filters{City: "Palm Desert"})
	assert.Contains(t, whereExprs(q), "city ILIKE ?")
}

func TestBuildPredicateMlsSources(t *testing.T) {
	p := BuildPredicate(Filters{MlsSources: []string{"GPS", "CRMLS"}})
	assert.Contains(t, whereExprs(p), "mls_source IN ?")
}
