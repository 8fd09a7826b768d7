package services

import "math"

// NPS categories over the 0-10 score range. These boundaries are the single
// source of truth; every aggregate in the system uses them.
func IsPromoter(score int) bool  { return score >= 9 }
func IsPassive(score int) bool   { return score >= 7 && score <= 8 }
func IsDetractor(score int) bool { return score <= 6 }

// Stats summarizes a response set. Promoters+Passives+Detractors always
// equals TotalResponses; AverageScore and NPSScore are 0 for an empty set.
type Stats struct {
	TotalResponses int     `json:"totalResponses"`
	AverageScore   float64 `json:"averageScore"`
	NPSScore       int     `json:"npsScore"`
	Promoters      int     `json:"promoters"`
	Passives       int     `json:"passives"`
	Detractors     int     `json:"detractors"`
}

// ComputeStats derives NPS statistics from raw scores.
// NPS = (promoters - detractors) / total * 100, rounded to the nearest
// integer; the average is rounded to two decimal places.
func ComputeStats(scores []int) Stats {
	st := Stats{TotalResponses: len(scores)}
	if st.TotalResponses == 0 {
		return st
	}
	sum := 0
	for _, s := range scores {
		sum += s
		switch {
		case IsPromoter(s):
			st.Promoters++
		case IsPassive(s):
			st.Passives++
		default:
			st.Detractors++
		}
	}
	total := float64(st.TotalResponses)
	st.AverageScore = math.Round(float64(sum)/total*100) / 100
	st.NPSScore = int(math.Round(float64(st.Promoters-st.Detractors) / total * 100))
	return st
}

// Histogram counts responses per score value, index 0 through 10.
// Out-of-range scores are ignored; submission validation keeps them out of
// the store in the first place.
func Histogram(scores []int) []int {
	h := make([]int, 11)
	for _, s := range scores {
		if s >= 0 && s <= 10 {
			h[s]++
		}
	}
	return h
}
