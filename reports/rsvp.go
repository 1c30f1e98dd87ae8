package reports

import "weddingplanner-backend/models"

type RSVPCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Declined  int `json:"declined"`
	Maybe     int `json:"maybe"`
	// ConfirmedEntries counts confirmed guest rows.
	ConfirmedEntries int `json:"confirmedEntries"`
	// ConfirmedIndividuals adds one head for each confirmed plus-one.
	ConfirmedIndividuals int     `json:"confirmedIndividuals"`
	PlusOnes             int     `json:"plusOnes"`
	ResponseRate         float64 `json:"responseRate"`
}

func CountRSVP(guests []models.Guest) RSVPCounts {
	var c RSVPCounts
	for _, g := range guests {
		if g.DeletedAt.Valid {
			continue
		}
		c.Total++
		switch g.RSVPStatus {
		case models.RSVPConfirmed:
			c.Confirmed++
			c.ConfirmedEntries++
			c.ConfirmedIndividuals++
			if g.PlusOne {
				c.ConfirmedIndividuals++
				c.PlusOnes++
			}
		case models.RSVPDeclined:
			c.Declined++
		case models.RSVPMaybe:
			c.Maybe++
		default:
			c.Pending++
		}
	}
	if c.Total > 0 {
		c.ResponseRate = round2(float64(c.Total-c.Pending) / float64(c.Total) * 100)
	}
	return c
}

// DietaryCounts tallies dietary preferences over confirmed guests.
func DietaryCounts(guests []models.Guest) map[string]int {
	counts := map[string]int{}
	for _, g := range guests {
		if g.DeletedAt.Valid || g.RSVPStatus != models.RSVPConfirmed {
			continue
		}
		for _, pref := range g.DietaryPreferences {
			counts[pref]++
		}
	}
	return counts
}
