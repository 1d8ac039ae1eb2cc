package fwimage

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

const hexDump = `// Hex dump of 'CCS811_FW_App_v2-0-0.bin' created at 2018-12-05 21:00:00.000000

#include <stdint.h>

char * image_name="CCS811_FW_App_v2-0-0.bin";
uint8_t image_data[]= {
  0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,   0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10, 
  0xff, 0xfe, 0xfd, 0xfc, 0xfb, 0xfa, 0xf9, 0xf8, };
`

func TestParseHexDump(t *testing.T) {
	img, err := ParseHexDump(strings.NewReader(hexDump))
	if err != nil {
		t.Fatal(err)
	}

	if img.Name != "CCS811_FW_App_v2-0-0.bin" {
		t.Error("Wrong name", img.Name)
	}
	if len(img.Data) != 24 || img.Data[0] != 0x01 || img.Data[15] != 0x10 || img.Data[23] != 0xf8 {
		t.Error("Wrong data", img.Data)
	}
	if img.Validate() != nil || img.Blocks() != 3 {
		t.Error("Image not valid", img)
	}
}

func TestParseHexDumpMalformed(t *testing.T) {
	bad := []string{
		"uint8_t image_data[]=\n",
		"uint8_t image_data[]= { 0x01, 0xzz };",
		"uint8_t image_data[]= { 0x01, 0x100 };",
		"uint8_t image_data[]= { 0x01, 0x02,\n",
	}

	for _, b := range bad {
		if _, err := ParseHexDump(strings.NewReader(b)); errors.Cause(err) != ErrorHexDump {
			t.Errorf("%q: expected ErrorHexDump, got %v", b, err)
		}
	}
}

func TestParseBinary(t *testing.T) {
	raw := []byte{0x10, 0x20, 0x30}
	img, err := Parse("fw.bin", raw)
	if err != nil {
		t.Fatal(err)
	}
	raw[0] = 0

	if img.Name != "fw.bin" || len(img.Data) != 3 || img.Data[0] != 0x10 {
		t.Error("Binary not copied", img)
	}
	if img.Validate() != ErrorAlignment {
		t.Error("Misaligned image accepted")
	}
	if img.Blocks() != 1 {
		t.Error("Wrong block count", img.Blocks())
	}
	if (&Image{}).Validate() != ErrorEmpty {
		t.Error("Empty image accepted")
	}
}

func TestCRC(t *testing.T) {
	img := &Image{Data: []byte("123456789")}
	if img.CRC() != 0xF4 {
		t.Errorf("CRC-8 check value mismatch: 0x%02X", img.CRC())
	}
}

func TestLoad(t *testing.T) {
	dir, err := ioutil.TempDir(os.TempDir(), "test-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	name := filepath.Join(dir, "image.h")
	if err := ioutil.WriteFile(name, []byte(hexDump), 0600); err != nil {
		t.Fatal(err)
	}

	img, err := Load(name)
	if err != nil {
		t.Fatal(err)
	}
	if len(img.Data) != 24 {
		t.Error("Wrong length", len(img.Data))
	}

	if _, err := Load(filepath.Join(dir, "missing.bin")); err == nil {
		t.Error("Missing file loaded")
	}
}
