package domain

import "time"

// Statistics представляет сводку по загруженному набору данных
type Statistics struct {
	TotalFeatures int            `json:"total_features"`
	ByCategory    map[string]int `json:"by_category"`
	Coverage      CoverageStats  `json:"coverage"`
	DataSource    string         `json:"data_source"`
	LoadedAt      time.Time      `json:"loaded_at"`
}

// CoverageStats статистика покрытия территории
type CoverageStats struct {
	BBoxMinLat float64 `json:"bbox_min_lat"`
	BBoxMaxLat float64 `json:"bbox_max_lat"`
	BBoxMinLon float64 `json:"bbox_min_lon"`
	BBoxMaxLon float64 `json:"bbox_max_lon"`
	CenterLat  float64 `json:"center_lat"`
	CenterLon  float64 `json:"center_lon"`
}

// CoverageOf computes the bounding box and its center for a set of features
func CoverageOf(features []*Feature) CoverageStats {
	if len(features) == 0 {
		return CoverageStats{}
	}

	cov := CoverageStats{
		BBoxMinLat: features[0].Lat,
		BBoxMaxLat: features[0].Lat,
		BBoxMinLon: features[0].Lon,
		BBoxMaxLon: features[0].Lon,
	}
	for _, f := range features[1:] {
		if f.Lat < cov.BBoxMinLat {
			cov.BBoxMinLat = f.Lat
		}
		if f.Lat > cov.BBoxMaxLat {
			cov.BBoxMaxLat = f.Lat
		}
		if f.Lon < cov.BBoxMinLon {
			cov.BBoxMinLon = f.Lon
		}
		if f.Lon > cov.BBoxMaxLon {
			cov.BBoxMaxLon = f.Lon
		}
	}
	cov.CenterLat = (cov.BBoxMinLat + cov.BBoxMaxLat) / 2
	cov.CenterLon = (cov.BBoxMinLon + cov.BBoxMaxLon) / 2
	return cov
}
