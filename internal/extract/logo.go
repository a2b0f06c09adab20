package extract

import "github.com/elvis888361/invoice-extractor/internal/entity"

// EstimateLogo marks a logo as found when a sender company is known, with the
// top-left region where invoice logos conventionally sit. Actual image-based
// detection belongs to the rasterizer side and is not attempted here.
func EstimateLogo(senderCompany string) entity.Logo {
	if senderCompany == "" {
		return entity.Logo{}
	}
	return entity.Logo{
		Found: true,
		EstimatedPosition: &entity.LogoPosition{
			X:      50,
			Y:      50,
			Width:  200,
			Height: 100,
		},
	}
}
