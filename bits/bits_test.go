package bits

import "testing"

func TestJoinSplit(t *testing.T) {
	cases := []struct {
		lo, hi uint8
		want   uint16
	}{
		{0x00, 0x00, 0x0000},
		{0xFF, 0x80, 0x80FF},
		{0x34, 0x12, 0x1234},
	}
	for _, c := range cases {
		if got := Join(c.lo, c.hi); got != c.want {
			t.Errorf("Join(%.2X,%.2X) = %.4X, want %.4X", c.lo, c.hi, got, c.want)
		}
		lo, hi := Split(c.want)
		if lo != c.lo || hi != c.hi {
			t.Errorf("Split(%.4X) = %.2X,%.2X want %.2X,%.2X", c.want, lo, hi, c.lo, c.hi)
		}
	}
}

func TestToBytes(t *testing.T) {
	if got := ToBytes(0xABCD); got != [2]uint8{0xCD, 0xAB} {
		t.Errorf("ToBytes(0xABCD) = %v", got)
	}
	if got := ToBytes32(0x11223344); got != [4]uint8{0x44, 0x33, 0x22, 0x11} {
		t.Errorf("ToBytes32 = %v", got)
	}
}

func TestShuffle(t *testing.T) {
	// lo=0b0000_0001 hi=0b0000_0000 -> bit0 of lo lands at output bit 0.
	if got := Shuffle(0x01, 0x00); got != 0x0001 {
		t.Errorf("Shuffle(0x01,0x00) = %.4X, want 0x0001", got)
	}
	// lo=0 hi=1 -> bit0 of hi lands at output bit 1.
	if got := Shuffle(0x00, 0x01); got != 0x0002 {
		t.Errorf("Shuffle(0x00,0x01) = %.4X, want 0x0002", got)
	}
	if got := Shuffle(0xFF, 0xFF); got != 0xFFFF {
		t.Errorf("Shuffle(0xFF,0xFF) = %.4X, want 0xFFFF", got)
	}
}

func TestBankCopy(t *testing.T) {
	bank := make([]uint8, 1024)
	for i := range bank {
		bank[i] = uint8(i)
	}
	dest := make([]uint8, 16)
	n, err := BankCopy(bank, 1024, 1020, 16, dest)
	if err != nil {
		t.Fatalf("BankCopy: %v", err)
	}
	if n != 4 {
		t.Fatalf("BankCopy truncated at bank end got %d want 4", n)
	}
	if dest[0] != 1020%256 {
		t.Errorf("BankCopy first byte = %d want %d", dest[0], 1020%256)
	}

	if _, err := BankCopy(bank, 100, 0, 1, dest); err == nil {
		t.Errorf("BankCopy with non-power-of-two width should error")
	}
}
