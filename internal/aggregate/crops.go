package aggregate

import "fpoconsole/pkg/domain"

// DefaultCrops are the crops always reported on the distribution chart.
var DefaultCrops = []string{"Paddy", "Maize", "Cotton", "Groundnut", "Vegetables"}

// CropCount is the number of farmers growing one crop.
type CropCount struct {
	Crop    string `json:"crop"`
	Farmers int    `json:"farmers"`
}

// CropDistributionResult holds per-crop counts plus the remainder bucket.
// A farmer growing several listed crops is counted once per crop.
type CropDistributionResult struct {
	Crops   []CropCount `json:"crops"`
	Others  int         `json:"others"`
	Farmers int         `json:"farmers"`
}

// CropDistribution counts farmers per listed crop, matched case-insensitively.
// Others is the farmer total minus the sum of listed counts and is floored at
// zero, so it is an approximation whenever farmers grow several listed crops.
func CropDistribution(farmers []domain.Farmer, crops []string) CropDistributionResult {
	res := CropDistributionResult{Crops: make([]CropCount, 0, len(crops)), Farmers: len(farmers)}
	listed := 0
	for _, crop := range crops {
		n := 0
		for _, f := range farmers {
			if f.HasCrop(crop) {
				n++
			}
		}
		listed += n
		res.Crops = append(res.Crops, CropCount{Crop: crop, Farmers: n})
	}
	res.Others = max(len(farmers)-listed, 0)
	return res
}
