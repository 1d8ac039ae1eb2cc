package gpio

import "testing"

func TestStringConversion(t *testing.T) {
	var buf [8]byte

	stringToBytes("nwake", buf[:])
	if bytesToString(buf[:]) != "nwake" {
		t.Error("Round trip failed", buf)
	}

	stringToBytes("ccs811-nwake", buf[:])
	if buf[7] != 0 || bytesToString(buf[:]) != "ccs811-" {
		t.Error("Long string not truncated and terminated", buf)
	}
}

func TestOpenMissingChip(t *testing.T) {
	if _, err := OpenChip(4095); err == nil {
		t.Error("Opened a chip that does not exist")
	}
}
