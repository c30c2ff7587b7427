package boundaries

import "github.com/socal-mls/map-api/types"

// The polygon tables below are simplified from the official California
// boundary GeoJSON. Precision is marker-placement grade, not parcel grade.

func box(lat, lng, half float64) types.Polygon {
	return types.Polygon{{
		{lng - half, lat - half},
		{lng + half, lat - half},
		{lng + half, lat + half},
		{lng - half, lat + half},
		{lng - half, lat - half},
	}}
}

var regionBoundaries = []*Boundary{
	{
		Name: "Northern California",
		Polygon: types.Polygon{{
			{-124.5, 39.5}, {-119.9, 39.5}, {-119.9, 42.0}, {-124.5, 42.0}, {-124.5, 39.5},
		}},
	},
	{
		Name: "Central California",
		Polygon: types.Polygon{{
			{-123.5, 35.8}, {-117.8, 35.8}, {-117.8, 39.5}, {-123.5, 39.5}, {-123.5, 35.8},
		}},
	},
	{
		Name: "Southern California",
		Polygon: types.Polygon{{
			{-121.0, 32.5}, {-114.1, 32.5}, {-114.1, 35.8}, {-121.0, 35.8}, {-121.0, 32.5},
		}},
	},
}

var countyBoundaries = []*Boundary{
	{Name: "Los Angeles", Region: "Los Angeles Metro", Centroid: &Point{Lat: 34.05, Lng: -118.25}, Polygon: box(34.2, -118.3, 0.6)},
	{Name: "Orange", Region: "Orange County", Centroid: &Point{Lat: 33.70, Lng: -117.77}, Polygon: box(33.68, -117.78, 0.35)},
	{Name: "San Diego", Region: "San Diego Metro", Centroid: &Point{Lat: 33.02, Lng: -116.77}, Polygon: box(33.0, -116.8, 0.55)},
	{Name: "Riverside", Region: "Inland Empire", Centroid: &Point{Lat: 33.74, Lng: -116.00}, Polygon: box(33.75, -116.0, 0.8)},
	{Name: "San Bernardino", Region: "Inland Empire", Centroid: &Point{Lat: 34.84, Lng: -116.18}, Polygon: box(34.85, -116.2, 1.0)},
	{Name: "Ventura", Region: "Los Angeles Metro", Polygon: box(34.45, -119.08, 0.4)},
	{Name: "Imperial", Region: "Inland Empire", Polygon: box(33.04, -115.36, 0.5)},
	{Name: "Santa Barbara", Region: "Central Coast", Polygon: box(34.67, -120.02, 0.4)},
	{Name: "Kern", Region: "Central Valley", Polygon: box(35.35, -118.73, 0.7)},
	{Name: "Fresno", Region: "Central Valley", Polygon: box(36.76, -119.65, 0.7)},
	{Name: "Sacramento", Region: "Sacramento Valley", Polygon: box(38.45, -121.34, 0.4)},
	{Name: "San Francisco", Region: "Bay Area", Centroid: &Point{Lat: 37.76, Lng: -122.44}, Polygon: box(37.76, -122.44, 0.1)},
	{Name: "Alameda", Region: "Bay Area", Polygon: box(37.65, -121.92, 0.35)},
	{Name: "Shasta", Region: "Northern California", Polygon: box(40.76, -122.04, 0.6)},
	{Name: "Humboldt", Region: "Northern California", Polygon: box(40.70, -123.92, 0.6)},
}

var cityBoundaries = []*Boundary{
	{Name: "Los Angeles", Centroid: &Point{Lat: 34.0522, Lng: -118.2437}, Polygon: box(34.0522, -118.2437, 0.2)},
	{Name: "Long Beach", Centroid: &Point{Lat: 33.7701, Lng: -118.1937}, Polygon: box(33.7701, -118.1937, 0.08)},
	{Name: "Irvine", Centroid: &Point{Lat: 33.6846, Lng: -117.8265}, Polygon: box(33.6846, -117.8265, 0.08)},
	{Name: "Anaheim", Centroid: &Point{Lat: 33.8366, Lng: -117.9143}, Polygon: box(33.8366, -117.9143, 0.07)},
	{Name: "Santa Ana", Centroid: &Point{Lat: 33.7455, Lng: -117.8677}, Polygon: box(33.7455, -117.8677, 0.06)},
	{Name: "Newport Beach", Centroid: &Point{Lat: 33.6189, Lng: -117.9298}, Polygon: box(33.6189, -117.9298, 0.06)},
	{Name: "Riverside", Centroid: &Point{Lat: 33.9533, Lng: -117.3962}, Polygon: box(33.9533, -117.3962, 0.08)},
	{Name: "Palm Springs", Centroid: &Point{Lat: 33.8303, Lng: -116.5453}, Polygon: box(33.8303, -116.5453, 0.08)},
	{Name: "Palm Desert", Centroid: &Point{Lat: 33.7222, Lng: -116.3745}, Polygon: box(33.7222, -116.3745, 0.06)},
	{Name: "Rancho Mirage", Centroid: &Point{Lat: 33.7397, Lng: -116.4125}, Polygon: box(33.7397, -116.4125, 0.05)},
	{Name: "La Quinta", Centroid: &Point{Lat: 33.6634, Lng: -116.3100}, Polygon: box(33.6634, -116.3100, 0.06)},
	{Name: "Indio", Centroid: &Point{Lat: 33.7206, Lng: -116.2156}, Polygon: box(33.7206, -116.2156, 0.06)},
	{Name: "San Diego", Centroid: &Point{Lat: 32.7157, Lng: -117.1611}, Polygon: box(32.7157, -117.1611, 0.15)},
	{Name: "Carlsbad", Centroid: &Point{Lat: 33.1581, Lng: -117.3506}, Polygon: box(33.1581, -117.3506, 0.06)},
	{Name: "Oceanside", Centroid: &Point{Lat: 33.1959, Lng: -117.3795}, Polygon: box(33.1959, -117.3795, 0.06)},
}
