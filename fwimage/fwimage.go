// Package fwimage loads CCS811 application firmware images.
//
// Images are accepted as the raw .bin distributed by ams, or as a C-style
// hex dump of an image_data array.
package fwimage

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sigurn/crc8"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrorEmpty     = Error("Image is empty")
	ErrorAlignment = Error("Image size is not a multiple of 8")
	ErrorHexDump   = Error("Malformed hex dump")
)

const blockSize = 8

var crcTable = crc8.MakeTable(crc8.CRC8)

// Image is an application firmware image.
type Image struct {
	Name string
	Data []byte
}

// Load reads an image from disk, detecting the format from its content.
func Load(filename string) (*Image, error) {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "read firmware image")
	}

	img, err := Parse(filepath.Base(filename), raw)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", filename)
	}
	return img, nil
}

// Parse interprets raw as a hex dump when it contains an image_data array, and
// as a binary image otherwise.
func Parse(name string, raw []byte) (*Image, error) {
	if bytes.Contains(raw, []byte("image_data")) {
		return ParseHexDump(bytes.NewReader(raw))
	}

	return &Image{
		Name: name,
		Data: append([]byte(nil), raw...),
	}, nil
}

// ParseHexDump reads the "uint8_t image_data[]= { 0x.., ... };" format.
// The image name is taken from the image_name string when present.
func ParseHexDump(r io.Reader) (*Image, error) {
	img := &Image{}
	inData := false
	done := false

	scanner := bufio.NewScanner(r)
	for !done && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if !inData {
			if strings.Contains(line, "image_name") {
				if start := strings.IndexByte(line, '"'); start >= 0 {
					if end := strings.LastIndexByte(line, '"'); end > start {
						img.Name = line[start+1 : end]
					}
				}
			}
			if idx := strings.Index(line, "image_data"); idx >= 0 {
				brace := strings.IndexByte(line, '{')
				if brace < 0 {
					return nil, ErrorHexDump
				}
				inData = true
				line = line[brace+1:]
			} else {
				continue
			}
		}

		if end := strings.IndexByte(line, '}'); end >= 0 {
			line = line[:end]
			done = true
		}

		for _, field := range strings.Split(line, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseUint(field, 0, 8)
			if err != nil {
				return nil, errors.Wrapf(ErrorHexDump, "value %q", field)
			}
			img.Data = append(img.Data, byte(v))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !done {
		return nil, ErrorHexDump
	}

	return img, nil
}

// Validate checks the image can be streamed to the CCS811 in whole blocks.
func (img *Image) Validate() error {
	if len(img.Data) == 0 {
		return ErrorEmpty
	}
	if len(img.Data)%blockSize != 0 {
		return ErrorAlignment
	}
	return nil
}

// CRC is a CRC-8 over the image, used to identify it in logs.
func (img *Image) CRC() uint8 {
	return crc8.Checksum(img.Data, crcTable)
}

// Blocks is the number of APP_DATA writes needed.
func (img *Image) Blocks() int {
	return (len(img.Data) + blockSize - 1) / blockSize
}

func (img *Image) String() string {
	return fmt.Sprintf("%s (%d bytes, %d blocks, crc 0x%02X)", img.Name, len(img.Data), img.Blocks(), img.CRC())
}
