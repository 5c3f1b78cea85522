package progress

import "testing"

func TestProgressUpdate_Value(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		update ProgressUpdate
		want   float64
		done   bool
	}{
		{"empty sweep", ProgressUpdate{}, 1.0, true},
		{"start", ProgressUpdate{Completed: 0, Total: 8}, 0.0, false},
		{"quarter", ProgressUpdate{Completed: 2, Total: 8}, 0.25, false},
		{"complete", ProgressUpdate{Completed: 8, Total: 8}, 1.0, true},
		{"overshoot", ProgressUpdate{Completed: 9, Total: 8}, 1.0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.update.Value(); got != tt.want {
				t.Errorf("Value() = %f, want %f", got, tt.want)
			}
			if got := tt.update.Done(); got != tt.done {
				t.Errorf("Done() = %v, want %v", got, tt.done)
			}
		})
	}
}
