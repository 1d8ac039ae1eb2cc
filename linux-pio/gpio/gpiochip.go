package gpio

import (
	"errors"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

var (
	ErrorLineRange   = errors.New("Line out of range")
	ErrorLineName    = errors.New("Line name not found")
	ErrorInvalidFile = errors.New("Invalid file descriptor returned")
)

// Chip is an opened /dev/gpiochipN character device.
type Chip struct {
	file      *os.File
	name      string
	label     string
	lines     uint32
	lineNames map[string]uint32
}

// LineInfo describes one line as reported by the kernel.
type LineInfo struct {
	Offset   uint32
	Flags    LineFlag
	Name     string
	Consumer string
}

func OpenChip(chip int) (*Chip, error) {
	file, err := os.OpenFile(fmt.Sprintf("/dev/gpiochip%d", chip), unix.O_RDWR|unix.O_NOCTTY, 0600)
	if err != nil {
		return nil, err
	}

	g := &Chip{file: file}

	if err := g.readChipInfo(); err != nil {
		file.Close()
		return nil, err
	}

	if err := g.readLineNames(); err != nil {
		file.Close()
		return nil, err
	}

	return g, nil
}

func (g *Chip) readChipInfo() error {
	type chipInfoRaw struct {
		Name  [32]byte
		Label [32]byte
		Lines uint32
	}
	var ci chipInfoRaw

	err := ioctlPtr(g.file, gpioGetChipinfoIoctl, unsafe.Pointer(&ci))
	if err != nil {
		return err
	}

	g.name = bytesToString(ci.Name[:])
	g.label = bytesToString(ci.Label[:])
	g.lines = ci.Lines

	return nil
}

func (g *Chip) readLineNames() error {
	names := make(map[string]uint32)

	for i := uint32(0); i < g.lines; i++ {
		line, err := g.LineInfo(i)
		if err != nil {
			return err
		}

		if line.Name != "" {
			names[line.Name] = i
		}
	}

	g.lineNames = names

	return nil
}

func (g *Chip) Close() error {
	return g.file.Close()
}

func (g *Chip) String() string {
	return fmt.Sprintf("%s (%s, %d lines)", g.name, g.label, g.lines)
}

func (g *Chip) LineInfo(offset uint32) (LineInfo, error) {
	result := LineInfo{
		Offset: offset,
	}

	if offset >= g.lines {
		return result, ErrorLineRange
	}

	type lineInfoRaw struct {
		LineOffset uint32
		Flags      uint32
		Name       [32]byte
		Consumer   [32]byte
	}

	li := lineInfoRaw{
		LineOffset: offset,
	}

	err := ioctlPtr(g.file, gpioGetLineinfoIoctl, unsafe.Pointer(&li))
	if err != nil {
		return result, err
	}

	result.Flags = LineFlag(li.Flags)
	result.Name = bytesToString(li.Name[:])
	result.Consumer = bytesToString(li.Consumer[:])

	return result, nil
}

// LineByName returns the offset of a line by its kernel name (e.g. "GPIO17").
func (g *Chip) LineByName(name string) (uint32, error) {
	if offset, found := g.lineNames[name]; found {
		return offset, nil
	}
	return 0, ErrorLineName
}

// OpenOutput requests a single line as output, driven to initial right away.
func (g *Chip) OpenOutput(label string, offset uint32, initial bool) (*Line, error) {
	if offset >= g.lines {
		return nil, ErrorLineRange
	}

	type handleRequestRaw struct {
		LineOffsets   [64]uint32
		Flags         uint32
		DefaultValues [64]uint8
		ConsumerLabel [32]byte
		Lines         uint32
		Fd            int32
	}

	req := handleRequestRaw{
		Flags: uint32(RequestOutput),
		Lines: 1,
	}
	req.LineOffsets[0] = offset
	if initial {
		req.DefaultValues[0] = 1
	}
	stringToBytes(label, req.ConsumerLabel[:])

	err := ioctlPtr(g.file, gpioGetLinehandleIoctl, unsafe.Pointer(&req))
	if err != nil {
		return nil, err
	}

	if req.Fd <= 0 {
		return nil, ErrorInvalidFile
	}

	return &Line{
		file:   os.NewFile(uintptr(req.Fd), label),
		offset: offset,
	}, nil
}
