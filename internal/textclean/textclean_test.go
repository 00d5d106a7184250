package textclean

import (
	"strings"
	"testing"
)

func TestSanitize_Labels(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Question: What is 2 + 2?", "What is 2 + 2?"},
		{"question:What is 2 + 2?", "What is 2 + 2?"},
		{"  CONTEXT :  A train leaves at noon.", "A train leaves at noon."},
		{"Statement: Context: nested labels", "nested labels"},
		{"Câu hỏi: Tính đạo hàm", "Tính đạo hàm"},
		{"The answer: inline is kept", "The answer: inline is kept"},
	}
	for _, tc := range tests {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitize_LeakedAnswers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"f is increasing on R - Answer is True", "f is increasing on R"},
		{"f is increasing on R -Answer: True", "f is increasing on R"},
		{"Hàm số đồng biến - Đáp án là Đúng", "Hàm số đồng biến"},
		{"x > 2 (True/False?)", "x > 2"},
		{"x > 2 (đúng/sai?) ", "x > 2"},
		{"first line - answer is A\nsecond line", "first line\nsecond line"},
		{"- Answer: B", ""},
		{"Match each question-answer: pair below", "Match each question-answer: pair below"},
		{"a well-answer is rare", "a well-answer is rare"},
	}
	for _, tc := range tests {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitize_MathRepair(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`$2 cdot 3$`, `$2\cdot 3$`},
		{`$cdot$`, `$\cdot$`},
		{`$ times 4$`, `$\times 4$`},
		{`5times`, `5\times`},
		{`$frac{1}{2}$`, `$\frac{1}{2}$`},
		{`$sqrt{x}$`, `$\sqrt{x}$`},
		{`$\frac{1}{2}$`, `$\frac{1}{2}$`},
		{`2frac`, `2frac`}, // frac is only repaired after $
		{`no math here`, `no math here`},
	}
	for _, tc := range tests {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitize_Empty(t *testing.T) {
	if got := Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := Sanitize("   "); got != "" {
		t.Errorf("expected whitespace to collapse to empty, got %q", got)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Question: $2 cdot 3$ (True/False?) - Answer is 6",
		"$(True/False?)cdot$",
		"Answer: Question: Context: x",
		"(True/False?) Question: hidden label",
		`$$ sqrt{2}$$ and 3 times 4`,
		"- Answer: everything",
		"Mệnh đề: $frac{a}{b}$ (Đúng/Sai?)",
		nestedMarkers(9) + " x",
		nestedMarkers(12) + " x",
		"$" + nestedMarkers(9) + "cdot$",
		strings.Repeat("Answer: ", 20) + "y",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

// nestedMarkers wraps true/false markers depth deep, so removing the inner one
// exposes the next.
func nestedMarkers(depth int) string {
	return strings.Repeat("(true/", depth) + strings.Repeat("false?)", depth)
}

func TestSanitize_DeepNestingSettles(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{nestedMarkers(12) + " x", "x"},
		{"$" + nestedMarkers(9) + "cdot$", `$\cdot$`},
	}
	for _, tc := range tests {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func FuzzSanitize_Idempotent(f *testing.F) {
	for _, seed := range []string{
		"Question: $2 cdot 3$ (True/False?) - Answer is 6",
		nestedMarkers(10) + " x",
		"$" + nestedMarkers(3) + "times$",
		"3 (true/false?)cdot 4",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, in string) {
		once := Sanitize(in)
		if twice := Sanitize(once); once != twice {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	})
}

func TestCleaner_CustomTable(t *testing.T) {
	c := New([]MathCommand{{Name: "pi", Anchors: []Anchor{AnchorDigit}}}, []string{"prompt"})

	if got := c.Sanitize("Prompt: 2pi r"); got != `2\pi r` {
		t.Errorf("got %q", got)
	}
	// Commands outside the table are untouched.
	if got := c.Sanitize("$cdot$"); got != "$cdot$" {
		t.Errorf("got %q", got)
	}
}
