package health

// Sample is the slice of a patient record that statistics are computed over.
type Sample struct {
	City    string
	BMI     float64
	Verdict Verdict
}

// Stats aggregates a set of samples. Map iteration order carries no meaning.
type Stats struct {
	Total         int             `json:"total"`
	AverageBMI    float64         `json:"average_bmi"`
	VerdictCounts map[Verdict]int `json:"verdict_counts"`
	CityCounts    map[string]int  `json:"city_counts"`
}

// ComputeStats returns the record count, mean BMI (two decimals, 0 for an
// empty input), and occurrence counts per verdict and per city. City keys
// are matched exactly, case-sensitive.
func ComputeStats(samples []Sample) Stats {
	stats := Stats{
		VerdictCounts: make(map[Verdict]int),
		CityCounts:    make(map[string]int),
	}
	if len(samples) == 0 {
		return stats
	}

	var sum float64
	for _, s := range samples {
		sum += s.BMI
		stats.VerdictCounts[s.Verdict]++
		stats.CityCounts[s.City]++
	}
	stats.Total = len(samples)
	stats.AverageBMI = Round2(sum / float64(len(samples)))
	return stats
}
