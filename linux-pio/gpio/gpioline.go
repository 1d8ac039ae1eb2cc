package gpio

import (
	"os"
	"unsafe"
)

// Line is a requested GPIO line handle.
type Line struct {
	file   *os.File
	offset uint32
}

type handleDataRaw struct {
	values [64]uint8
}

func (gl *Line) Close() error {
	return gl.file.Close()
}

func (gl *Line) Offset() uint32 {
	return gl.offset
}

func (gl *Line) SetValue(value bool) error {
	sd := handleDataRaw{}
	if value {
		sd.values[0] = 1
	}

	return ioctlPtr(gl.file, gpiohandleSetLineValuesIoctl, unsafe.Pointer(&sd))
}

func (gl *Line) GetValue() (bool, error) {
	gd := handleDataRaw{}

	err := ioctlPtr(gl.file, gpiohandleGetLineValuesIoctl, unsafe.Pointer(&gd))
	if err != nil {
		return false, err
	}

	return gd.values[0] > 0, nil
}
