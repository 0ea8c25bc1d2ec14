package batch

// ProcessResult records the outcome of one unit of work (a page in split
// mode, a file otherwise). Instances are created by the engine during a run
// and never mutated afterwards.
//
// Invariant: Success implies NewName and Identity are non-empty and Error is
// empty; failure implies Error is non-empty (NewName may still be set, e.g.
// for pages written under a fallback name).
type ProcessResult struct {
	OriginalLabel  string `json:"original_label"`
	Success        bool   `json:"success"`
	NewName        string `json:"new_name,omitempty"`
	Identity       string `json:"identity,omitempty"`
	Error          string `json:"error,omitempty"`
	UnitsProcessed int    `json:"units_processed"`
}

// Summary aggregates a result list for caller-side display.
type Summary struct {
	Total            int     `json:"total"`
	Successful       int     `json:"successful"`
	Failed           int     `json:"failed"`
	SuccessRate      float64 `json:"success_rate_percent"`
	UniqueIdentities int     `json:"unique_identities"`
	TotalUnits       int     `json:"total_units"`
}

// Summarize computes summary statistics over a result list. An empty input
// yields an all-zero summary. Unique identities are counted among
// successful results only.
func Summarize(results []ProcessResult) Summary {
	var s Summary
	if len(results) == 0 {
		return s
	}

	identities := make(map[string]struct{})
	for _, r := range results {
		s.Total++
		s.TotalUnits += r.UnitsProcessed
		if r.Success {
			s.Successful++
			if r.Identity != "" {
				identities[r.Identity] = struct{}{}
			}
		} else {
			s.Failed++
		}
	}
	s.UniqueIdentities = len(identities)
	s.SuccessRate = float64(s.Successful) / float64(s.Total) * 100
	return s
}
