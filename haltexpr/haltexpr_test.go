package haltexpr

import "testing"

func TestParseValid(t *testing.T) {
	cases := []struct {
		in   string
		cond Condition
	}{
		{"@C000", CondAddr},
		{"!FFFC", CondResetOverride},
		{"10s", CondTime},
		{"1.5s", CondTime},
		{"500c", CondCycles},
		{"jam", CondJam},
	}
	for _, c := range cases {
		e, err := Parse(c.in)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", c.in, err)
			continue
		}
		if e.Cond != c.cond {
			t.Errorf("Parse(%q).Cond = %v, want %v", c.in, e.Cond, c.cond)
		}
	}
}

func TestParseAddrValue(t *testing.T) {
	e, err := Parse("@8000")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if e.Address != 0x8000 {
		t.Errorf("Address = %.4X, want 8000", e.Address)
	}
}

func TestParseInvalidShape(t *testing.T) {
	_, err := Parse("???")
	if err == nil {
		t.Fatal("expected error")
	}
	if perr, ok := err.(ParseError); !ok || perr.Kind != ErrScan {
		t.Errorf("err = %v, want ErrScan", err)
	}
}

func TestParseInvalidValue(t *testing.T) {
	_, err := Parse("@ZZZZ")
	if err == nil {
		t.Fatal("expected error")
	}
	if perr, ok := err.(ParseError); !ok || perr.Kind != ErrValue {
		t.Errorf("err = %v, want ErrValue", err)
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse("")
	if err == nil {
		t.Fatal("expected error on empty input")
	}
}

func TestParseHexPrefixedAddr(t *testing.T) {
	e, err := Parse("@0x1234")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if e.Cond != CondAddr || e.Address != 0x1234 {
		t.Errorf("Parse(@0x1234) = %+v, want CondAddr/1234", e)
	}
}

func TestParseJamCaseInsensitive(t *testing.T) {
	for _, in := range []string{"jam", "JAM", "Jam", "jAm"} {
		e, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if e.Cond != CondJam {
			t.Errorf("Parse(%q).Cond = %v, want CondJam", in, e.Cond)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	cases := []string{"@C000", "!FFFC", "500c", "JAM"}
	for _, in := range cases {
		e, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		out, err := Format(e)
		if err != nil {
			t.Fatalf("Format(%v): %v", e, err)
		}
		if out != in {
			t.Errorf("round trip %q -> %q", in, out)
		}
	}
}

func TestFormatTimeRoundTrip(t *testing.T) {
	e, err := Parse("2.5s")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := Format(e)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if out != "2.5s" {
		t.Errorf("Format = %q, want 2.5s", out)
	}
}
