package appointment

import "testing"

func TestClampMonth(t *testing.T) {
	for m := -40; m <= 40; m++ {
		got := ClampMonth(m)
		if got < 1 || got > 12 {
			t.Fatalf("ClampMonth(%d) = %d, out of range", m, got)
		}
		if ClampMonth(got) != got {
			t.Fatalf("ClampMonth not idempotent for %d", m)
		}
		if m >= 1 && m <= 12 && got != m {
			t.Fatalf("ClampMonth(%d) = %d, want unchanged", m, got)
		}
	}
}

func TestDayLimit(t *testing.T) {
	want := map[int]int{
		1: 31, 2: 28, 3: 31, 4: 30, 5: 31, 6: 30,
		7: 31, 8: 31, 9: 30, 10: 31, 11: 30, 12: 31,
	}
	for month, limit := range want {
		if got := DayLimit(month); got != limit {
			t.Fatalf("DayLimit(%d) = %d, want %d", month, got, limit)
		}
	}
}

func TestClampDay(t *testing.T) {
	for month := 1; month <= 12; month++ {
		limit := DayLimit(month)
		for d := -5; d <= 40; d++ {
			got := ClampDay(month, d)
			if got < 1 || got > limit {
				t.Fatalf("ClampDay(%d, %d) = %d, outside [1,%d]", month, d, got, limit)
			}
		}
	}

	tests := []struct {
		month, day, want int
	}{
		{2, 30, 28},
		{4, 31, 30},
		{12, 31, 31},
		{1, 0, 1},
	}
	for _, tc := range tests {
		if got := ClampDay(tc.month, tc.day); got != tc.want {
			t.Fatalf("ClampDay(%d, %d) = %d, want %d", tc.month, tc.day, got, tc.want)
		}
	}
}

func TestClampHour(t *testing.T) {
	for h := -5; h <= 30; h++ {
		got := ClampHour(h)
		if got < MinHour || got > MaxHour {
			t.Fatalf("ClampHour(%d) = %d, out of range", h, got)
		}
	}
	if ClampHour(0) != 1 {
		t.Fatalf("expected midnight to clamp to 1")
	}
	if ClampHour(25) != 23 {
		t.Fatalf("expected 25 to clamp to 23")
	}
}

func TestNew_ClampsAgainstClampedMonth(t *testing.T) {
	a := New(Medic{ID: 1, Name: "Ana"}, Patient{ID: 10, Name: "Luis"}, 14, 31, 0)

	if a.Month != 12 || a.Day != 31 || a.Hour != 1 {
		t.Fatalf("unexpected appointment %#v", a)
	}
	if a.MedicID != 1 || a.PatientID != 10 {
		t.Fatalf("unexpected references %#v", a)
	}
}
