package ccs811

import "testing"

func TestErrStatString(t *testing.T) {
	if s := ErrStat(0).String(); s != "--vhxmrwf--ad-ie" {
		t.Error("Wrong string for 0", s)
	}
	if s := ErrStat(0xFFFF).String(); s != "--VHXMRWF--AD-IE" {
		t.Error("Wrong string for 0xFFFF", s)
	}
	if s := (ErrStatOK | ErrStatI2CFail).String(); s != "--vhxmrwF--AD-Ie" {
		t.Error("Wrong string for OK|I2CFail", s)
	}
}

func TestErrStatStringAllValues(t *testing.T) {
	const letters = "--VHXMRWF--AD-IE"

	for v := 0; v <= 0xFFFF; v++ {
		e := ErrStat(v)
		s := e.String()

		if len(s) != 16 {
			t.Fatal("Wrong length", v, s)
		}
		if s != e.String() {
			t.Fatal("Not reproducible", v)
		}

		for i := 0; i < 16; i++ {
			bit := v&(1<<uint(15-i)) != 0
			want := letters[i]
			if want != '-' && !bit {
				want += 'a' - 'A'
			}
			if s[i] != want {
				t.Fatalf("0x%04X: position %d is %c, expected %c", v, i, s[i], want)
			}
		}
	}
}
