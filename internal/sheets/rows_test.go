package sheets

import "testing"

func TestIsValidRow(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want bool
	}{
		{"nil", nil, false},
		{"empty", []string{}, false},
		{"all blank", []string{"", "", ""}, false},
		{"whitespace only", []string{"  ", "\t"}, false},
		{"ref error", []string{"#REF!", "x"}, false},
		{"na error", []string{"#N/A"}, false},
		{"error sentinel", []string{"#ERROR! division by zero"}, false},
		{"regular row", []string{"08/12/2025", "Café", "3,50", "Ocio"}, true},
		{"partial row", []string{"", "algo"}, true},
	}
	for _, tc := range cases {
		if got := IsValidRow(tc.in); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestCellStrings(t *testing.T) {
	got := CellStrings([]interface{}{" a ", 3.5, nil})
	if got[0] != "a" || got[1] != "3.5" {
		t.Fatalf("got %v", got)
	}
	if CellAt(got, 5) != "" {
		t.Fatal("out-of-range cell should be empty")
	}
}
