package quotes

import (
	"errors"
	"testing"
)

func TestNormalizeTicker(t *testing.T) {
	cases := []struct {
		input string
		want  string
		err   error
	}{
		{input: "cj.to", want: "CJ.TO"},
		{input: "  AAPL ", want: "AAPL"},
		{input: "BRK-B", want: "BRK-B"},
		{input: "^gspc", want: "^GSPC"},
		{input: "GS^PC", err: ErrInvalidTicker},
		{input: "", err: ErrInvalidTicker},
		{input: "../etc/passwd", err: ErrInvalidTicker},
		{input: "A B", err: ErrInvalidTicker},
	}

	for _, _case := range cases {
		got, err := NormalizeTicker(_case.input)
		if !errors.Is(err, _case.err) {
			t.Errorf("NormalizeTicker(%q) error = %v, want %v", _case.input, err, _case.err)
			continue
		}

		if got != _case.want {
			t.Errorf("NormalizeTicker(%q) = %q, want %q", _case.input, got, _case.want)
		}
	}
}
