package fifotax

import (
	"slices"
)

// VapTable holds the yearly Vorabpauschale per share, before partial
// exemption (TFS), indexed by security name then by year.
type VapTable map[string]map[int]float64

// Set records the rate of a security for a year.
func (t VapTable) Set(security string, year int, rate float64) {
	years, ok := t[security]
	if !ok {
		years = make(map[int]float64)
		t[security] = years
	}
	years[year] = rate
}

// VapContribution is the Vorabpauschale of one year allocated to one share
// of a lot.
type VapContribution struct {
	Year     int
	PerShare float64
}

// DetermineVapContributions returns the VAP per share accrued by a lot, one
// entry per year, sorted by year.
//
// A lot accrues nothing for years before its purchase, the full rate for
// years after, and for its purchase year the rate pro rata of the months
// left, purchase month included: 12/12 for January, 1/12 for December.
// Years with no positive contribution are omitted.
func DetermineVapContributions(security string, lot Lot, table VapTable) []VapContribution {
	rates, ok := table[security]
	if !ok {
		return nil
	}
	purchaseYear := lot.PurchasedAt.Year()
	var res []VapContribution
	for year, rate := range rates {
		var perShare float64
		switch {
		case year < purchaseYear:
			continue
		case year == purchaseYear:
			perShare = rate * float64(13-int(lot.PurchasedAt.Month())) / 12
		default:
			perShare = rate
		}
		if perShare > 0 {
			res = append(res, VapContribution{Year: year, PerShare: perShare})
		}
	}
	slices.SortFunc(res, func(a, b VapContribution) int { return a.Year - b.Year })
	return res
}

// TotalVap sums contributions per share.
func TotalVap(contributions []VapContribution) float64 {
	var sum float64
	for _, c := range contributions {
		sum += c.PerShare
	}
	return sum
}
