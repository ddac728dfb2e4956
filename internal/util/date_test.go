package util

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	in := time.Date(2024, 3, 15, 17, 42, 9, 123, time.UTC)

	got := StartOfDay(in)

	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestStartOfDay_AlreadyMidnight(t *testing.T) {
	in := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	if got := StartOfDay(in); !got.Equal(in) {
		t.Errorf("Expected %v unchanged, got %v", in, got)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	if got := DaysBetween(a, b); got != 30 {
		t.Errorf("Expected 30, got %d", got)
	}
}

func TestDaysBetween_SameDay(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := DaysBetween(a, a); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
}

func TestDaysBetween_AcrossMonths(t *testing.T) {
	a := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	// 2024 is a leap year
	if got := DaysBetween(a, b); got != 30 {
		t.Errorf("Expected 30, got %d", got)
	}
}
