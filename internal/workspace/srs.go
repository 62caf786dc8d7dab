package workspace

import (
	"github.com/rotisserie/eris"
)

// SpatialReference describes a coordinate system by well-known ID.
type SpatialReference struct {
	WKID int
	Name string
	WKT  string
}

// Geocoded points arrive as lon/lat (4326); the county's map products use the
// State Plane Colorado North zone in US feet (3743).
var spatialReferences = map[int]SpatialReference{
	4326: {
		WKID: 4326,
		Name: "GCS_WGS_1984",
		WKT: `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],` +
			`PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`,
	},
	3743: {
		WKID: 3743,
		Name: "NAD_1983_HARN_StatePlane_Colorado_North_FIPS_0501_Feet",
		WKT: `PROJCS["NAD_1983_HARN_StatePlane_Colorado_North_FIPS_0501_Feet",` +
			`GEOGCS["GCS_North_American_1983_HARN",DATUM["D_North_American_1983_HARN",` +
			`SPHEROID["GRS_1980",6378137.0,298.257222101]],PRIMEM["Greenwich",0.0],` +
			`UNIT["Degree",0.0174532925199433]],PROJECTION["Lambert_Conformal_Conic"],` +
			`PARAMETER["False_Easting",3000000.000316083],PARAMETER["False_Northing",999999.999996],` +
			`PARAMETER["Central_Meridian",-105.5],PARAMETER["Standard_Parallel_1",39.71666666666667],` +
			`PARAMETER["Standard_Parallel_2",40.78333333333333],` +
			`PARAMETER["Latitude_Of_Origin",39.33333333333334],UNIT["Foot_US",0.3048006096012192]]`,
	},
}

// LookupSpatialReference returns the registered spatial reference for a
// well-known ID.
func LookupSpatialReference(wkid int) (SpatialReference, error) {
	sr, ok := spatialReferences[wkid]
	if !ok {
		return SpatialReference{}, eris.Errorf("workspace: unknown spatial reference wkid %d", wkid)
	}
	return sr, nil
}
