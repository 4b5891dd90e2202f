package domain

import "testing"

func TestSeverityLabel(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{SeverityLow, "Düşük"},
		{SeverityMedium, "Orta"},
		{SeverityHigh, "Yüksek"},
		{Severity(99), "Orta"}, // unknown values render as medium
	}
	for _, tt := range tests {
		if got := tt.sev.Label(); got != tt.want {
			t.Errorf("Severity(%d).Label() = %q, want %q", tt.sev, got, tt.want)
		}
	}
}

func TestSeverityNextWraps(t *testing.T) {
	if got := SeverityLow.Next(); got != SeverityMedium {
		t.Errorf("SeverityLow.Next() = %d, want %d", got, SeverityMedium)
	}
	if got := SeverityHigh.Next(); got != SeverityLow {
		t.Errorf("SeverityHigh.Next() = %d, want %d", got, SeverityLow)
	}
}

func TestStatusToggle(t *testing.T) {
	if got := StatusPending.Toggle(); got != StatusCompleted {
		t.Errorf("StatusPending.Toggle() = %d, want %d", got, StatusCompleted)
	}
	if got := StatusCompleted.Toggle(); got != StatusPending {
		t.Errorf("StatusCompleted.Toggle() = %d, want %d", got, StatusPending)
	}
}

func TestTodoItemCompleted(t *testing.T) {
	item := TodoItem{Status: StatusPending}
	if item.Completed() {
		t.Error("pending item reported completed")
	}
	item.Status = StatusCompleted
	if !item.Completed() {
		t.Error("completed item reported pending")
	}
}
