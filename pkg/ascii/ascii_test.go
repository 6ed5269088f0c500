package ascii

import (
	"testing"
)

func TestBox(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "empty",
			lines: nil,
			want:  "",
		},
		{
			name:  "single line",
			lines: []string{"Hello"},
			want:  "┌───────┐\n│ Hello │\n└───────┘\n",
		},
		{
			name:  "multiple lines",
			lines: []string{"Line 1", "Longer line here", "Short  "},
			want: "┌──────────────────┐\n" +
				"│ Line 1           │\n" +
				"│ Longer line here │\n" +
				"│ Short            │\n" +
				"└──────────────────┘\n",
		},
		{
			name:  "wide runes",
			lines: []string{"名称: 火箭", "ok"},
			want: "┌────────────┐\n" +
				"│ 名称: 火箭 │\n" +
				"│ ok         │\n" +
				"└────────────┘\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Box(tt.lines); got != tt.want {
				t.Errorf("Box() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestTable(t *testing.T) {
	got := Table([][]string{
		{"template-01", "Classic Hero + Features", "4.0"},
		{"template-11", "Bento Box", "12.5"},
	})
	want := "template-01  Classic Hero + Features  4.0\n" +
		"template-11  Bento Box                12.5\n"
	if got != want {
		t.Errorf("Table() =\n%q\nwant\n%q", got, want)
	}
	if Table(nil) != "" {
		t.Error("Table(nil) should be empty")
	}
}

func TestTruncateForBox(t *testing.T) {
	tests := []struct {
		value string
		width int
		want  string
	}{
		{"Hello world", 20, "Hello world"},
		{"Hello world", 8, "Hello..."},
		{"Hello world", 3, "Hel"},
		{"Hello", 0, ""},
		{"火箭火箭火箭", 7, "火箭..."},
	}
	for _, tt := range tests {
		if got := TruncateForBox(tt.value, tt.width); got != tt.want {
			t.Errorf("TruncateForBox(%q, %d) = %q, want %q", tt.value, tt.width, got, tt.want)
		}
	}
}

func TestStringWidthAndPad(t *testing.T) {
	if w := StringWidth("火箭"); w != 4 {
		t.Errorf("StringWidth(火箭) = %d, want 4", w)
	}
	if got := Pad("ab", 4); got != "ab  " {
		t.Errorf("Pad() = %q", got)
	}
	if got := Pad("abcdef", 4); got != "abcdef" {
		t.Errorf("Pad() must not cut, got %q", got)
	}
}
