package i2c

import "testing"

func TestBuildMessages(t *testing.T) {
	w := []byte{0x02}
	r := make([]byte, 8)

	msgs := buildMessages(0x5A, w, r, false)
	if len(msgs) != 2 {
		t.Fatal("Expected write and read message", msgs)
	}
	if msgs[0].Address != 0x5A || msgs[0].Flags != 0 || msgs[0].Len != 1 {
		t.Error("Write message wrong", msgs[0])
	}
	if msgs[1].Address != 0x5A || msgs[1].Flags != i2cFlagRead || msgs[1].Len != 8 {
		t.Error("Read message wrong", msgs[1])
	}

	msgs = buildMessages(0x5B, []byte{0xF4}, nil, true)
	if len(msgs) != 1 || msgs[0].Len != 1 || msgs[0].Flags != 0 {
		t.Error("Write-only transfer wrong", msgs)
	}

	msgs = buildMessages(0x5B, nil, nil, true)
	if len(msgs) != 1 || msgs[0].Len != 0 || msgs[0].Buf != 0 {
		t.Error("Address-only write wrong", msgs)
	}

	if len(buildMessages(0x5B, nil, nil, false)) != 0 {
		t.Error("Empty transfer produced messages")
	}
}

func TestOpenMissingBus(t *testing.T) {
	if _, err := OpenBus(4095); err == nil {
		t.Error("Opened a bus that does not exist")
	}
}
