package availability

// FilterOrphans reclassifies available days that cannot take part in a run
// of at least minNights consecutive available days. A lone open day between
// two blocked ones can host nobody and would otherwise show up as bookable.
//
// facts must be ordered by date and contiguous. Days at the edges of the
// slice are judged on their visible neighbors only. The filter is
// idempotent: a surviving run is already long enough to survive again.
func FilterOrphans(facts []DayFact, minNights int) []DayFact {
	if minNights <= 1 || len(facts) == 0 {
		return facts
	}

	out := make([]DayFact, len(facts))
	copy(out, facts)

	// walk maximal runs of available days; runs shorter than minNights
	// cannot anchor a stay and are blocked whole
	i := 0
	for i < len(facts) {
		if !facts[i].Available {
			i++
			continue
		}
		j := i
		for j < len(facts) && facts[j].Available {
			j++
		}
		if j-i < minNights {
			for k := i; k < j; k++ {
				out[k].Available = false
			}
		}
		i = j
	}
	return out
}
