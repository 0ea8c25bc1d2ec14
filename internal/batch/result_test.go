package batch

import "testing"

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		results []ProcessResult
		want    Summary
	}{
		{
			name:    "empty input",
			results: nil,
			want:    Summary{},
		},
		{
			name: "all successful",
			results: []ProcessResult{
				{Success: true, Identity: "Juan Perez", UnitsProcessed: 1},
				{Success: true, Identity: "Maria Lopez Garcia", UnitsProcessed: 1},
			},
			want: Summary{
				Total: 2, Successful: 2, Failed: 0,
				SuccessRate: 100, UniqueIdentities: 2, TotalUnits: 2,
			},
		},
		{
			name: "mixed outcomes",
			results: []ProcessResult{
				{Success: true, Identity: "Juan Perez", UnitsProcessed: 1},
				{Success: false, Error: "identity not found", UnitsProcessed: 1},
				{Success: true, Identity: "Juan Perez", UnitsProcessed: 1},
				{Success: false, Error: "no extractable text"},
			},
			want: Summary{
				Total: 4, Successful: 2, Failed: 2,
				SuccessRate: 50, UniqueIdentities: 1, TotalUnits: 3,
			},
		},
		{
			name: "failed results never contribute identities",
			results: []ProcessResult{
				{Success: false, Identity: "Juan Perez", Error: "failed to copy file"},
			},
			want: Summary{Total: 1, Failed: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.results); got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
