package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		s    string
		def  int
		want int
	}{
		{"", 10, 10},
		{"   ", 3, 3},
		{"42", 0, 42},
		{"-13", 1, -13},
		{"0012", 99, 12},
		{" 42 ", 7, 42},
		{"x", 5, 5},
		{"4.5", 2, 2},
		{"999999999999999999999999", -1, -1},
	}

	for _, tc := range cases {
		if got := AtoiDefault(tc.s, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.s, tc.def, got, tc.want)
		}
	}
}

func TestClampPage(t *testing.T) {
	cases := []struct {
		page, size, def, max int
		wantPage, wantSize   int
	}{
		{0, 0, 100, 5000, 1, 100},
		{-3, 50, 100, 5000, 1, 50},
		{2, 9000, 100, 5000, 2, 5000},
		{4, -1, 0, 0, 4, 1},
		{1, 20, 100, 0, 1, 20},
	}
	for _, tc := range cases {
		p, s := ClampPage(tc.page, tc.size, tc.def, tc.max)
		if p != tc.wantPage || s != tc.wantSize {
			t.Fatalf("ClampPage(%d,%d,%d,%d) = (%d,%d); want (%d,%d)",
				tc.page, tc.size, tc.def, tc.max, p, s, tc.wantPage, tc.wantSize)
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.size); got != tc.want {
			t.Fatalf("TotalPages(%d,%d) = %d; want %d", tc.total, tc.size, got, tc.want)
		}
	}
}
