package sysmon

import "testing"

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestSample_CountsGoroutines(t *testing.T) {
	s := Sample()
	if s.Goroutines < 1 {
		t.Errorf("Goroutines = %d, expected at least the current one", s.Goroutines)
	}
}
