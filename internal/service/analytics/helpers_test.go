package analytics

import "sintascope/internal/model"

func detail(aff, code string, cat model.Category, weight, value, total float64) model.IndicatorDetail {
	return model.IndicatorDetail{
		Affiliation: aff,
		Code:        code,
		RawCategory: "Score in " + string(cat),
		Category:    cat,
		Weight:      weight,
		Value:       value,
		Total:       total,
	}
}

func unmapped(aff, code, raw string, total float64) model.IndicatorDetail {
	return model.IndicatorDetail{Affiliation: aff, Code: code, RawCategory: raw, Weight: 1, Value: total, Total: total}
}

func metric(aff, code, area string, overall, threeYear float64) model.MetricsDetail {
	return model.MetricsDetail{
		Affiliation:    model.NormalizeAffiliationKey(aff),
		Code:           code,
		Name:           "Indikator " + code,
		Area:           area,
		Weight:         1,
		OverallValue:   overall / 10,
		OverallTotal:   overall,
		ThreeYearValue: threeYear / 10,
		ThreeYearTotal: threeYear,
	}
}
