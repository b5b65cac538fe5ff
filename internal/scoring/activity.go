package scoring

const (
	callWeight    = 5
	emailWeight   = 3
	meetingWeight = 10

	maxActivity = 100
)

// Activity converts engagement counts into a score in [0, 100]. Meetings
// weigh the most, then calls, then emails. Inputs must be non-negative.
func Activity(calls, emails, meetings int) float64 {
	terms := [...]struct{ count, weight int }{
		{calls, callWeight},
		{emails, emailWeight},
		{meetings, meetingWeight},
	}

	total := 0
	for _, term := range terms {
		// A single term over the cap saturates; checking first keeps
		// count*weight from overflowing.
		if term.count > maxActivity/term.weight {
			return maxActivity
		}
		total += term.count * term.weight
	}
	return float64(min(total, maxActivity))
}
