package ratelimit

import "testing"

func TestResultFromScript(t *testing.T) {
	tests := []struct {
		name          string
		values        []interface{}
		wantAllowed   bool
		wantRemaining int
	}{
		{"denied at limit", []interface{}{int64(0), int64(30), int64(0)}, false, 0},
		{"denied over limit", []interface{}{int64(0), int64(35), int64(0)}, false, 0},
		{"allowed under limit", []interface{}{int64(1), int64(1), int64(29)}, true, 29},
		{"allowed reaching limit", []interface{}{int64(1), int64(30), int64(0)}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := resultFromScript(tt.values, 30, 1234)
			if err != nil {
				t.Fatalf("resultFromScript: %v", err)
			}
			if result.Allowed != tt.wantAllowed {
				t.Errorf("allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if result.Remaining != tt.wantRemaining {
				t.Errorf("remaining = %d, want %d", result.Remaining, tt.wantRemaining)
			}
			if result.Limit != 30 || result.ResetTime != 1234 {
				t.Errorf("limit/reset = %d/%d", result.Limit, result.ResetTime)
			}
		})
	}
}

func TestResultFromScriptRejectsShortReply(t *testing.T) {
	if _, err := resultFromScript([]interface{}{int64(1)}, 30, 0); err == nil {
		t.Error("short reply should error")
	}
}
