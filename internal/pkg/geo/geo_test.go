package geo

import (
	"math"
	"testing"
)

func TestDistance_ZeroAtSamePoint(t *testing.T) {
	cases := []struct {
		lat, lon float64
	}{
		{0, 0},
		{-6.2088, 106.8456},
		{51.5074, -0.1278},
	}
	for _, c := range cases {
		if d := Distance(c.lat, c.lon, c.lat, c.lon); d != 0 {
			t.Errorf("Distance(%v,%v -> same point) = %v, want 0", c.lat, c.lon, d)
		}
	}
}

func TestDistance_Symmetric(t *testing.T) {
	lat1, lon1 := -6.2088, 106.8456
	lat2, lon2 := -6.1751, 106.8650

	d1 := Distance(lat1, lon1, lat2, lon2)
	d2 := Distance(lat2, lon2, lat1, lon1)

	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("Distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestDistance_KnownValue(t *testing.T) {
	// One degree of latitude along a meridian is ~111.19 km.
	d := Distance(0, 0, 1, 0)
	if math.Abs(d-111195) > 100 {
		t.Errorf("Distance(1 degree latitude) = %v, want ~111195", d)
	}
}

func TestValidate_InsideAndOutside(t *testing.T) {
	center := Center{Latitude: 0, Longitude: 0, RadiusMeters: 100}

	inside := Validate(0, 0.0005, center) // ~55m east
	if !inside.OK {
		t.Errorf("point ~55m from center should pass, distance=%v", inside.DistanceMeters)
	}

	outside := Validate(0, 0.002, center) // ~222m east
	if outside.OK {
		t.Errorf("point ~222m from center should fail, distance=%v", outside.DistanceMeters)
	}
	if outside.DistanceMeters <= 100 {
		t.Errorf("failure result must carry the computed distance, got %v", outside.DistanceMeters)
	}
}

func TestValidate_ExactCenterPasses(t *testing.T) {
	center := Center{Latitude: -6.2088, Longitude: 106.8456, RadiusMeters: 100}
	res := Validate(-6.2088, 106.8456, center)
	if !res.OK || res.DistanceMeters != 0 {
		t.Errorf("exact center should pass with zero distance, got %+v", res)
	}
}

func TestValidate_DefaultRadius(t *testing.T) {
	center := Center{Latitude: 0, Longitude: 0}

	res := Validate(0, 0.0005, center)
	if res.RadiusMeters != DefaultRadiusMeters {
		t.Errorf("RadiusMeters = %v, want default %v", res.RadiusMeters, DefaultRadiusMeters)
	}
	if !res.OK {
		t.Errorf("~55m point should pass under the default 100m radius")
	}
}
