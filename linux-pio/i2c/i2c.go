package i2c

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	i2cFlagRead uint16  = 0x0001
	i2cRdWr     uintptr = 0x00000707
)

// Bus is an opened /dev/i2c-N adapter. Transfers are serialized on the bus.
type Bus struct {
	mutex sync.Mutex
	file  *os.File
	id    int
}

type i2cMsg struct {
	Address uint16
	Flags   uint16
	Len     uint16
	Buf     uintptr
}

type rdWrRaw struct {
	Messages    uintptr
	NumMessages uint32
}

// OpenBus opens the i2c-dev node for the given adapter number.
func OpenBus(busID int) (*Bus, error) {
	file, err := os.OpenFile(fmt.Sprintf("/dev/i2c-%d", busID), unix.O_RDWR|unix.O_NOCTTY, 0600)
	if err != nil {
		return nil, err
	}

	return &Bus{file: file, id: busID}, nil
}

// Close releases the adapter.
func (b *Bus) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.file.Close()
}

func (b *Bus) String() string {
	return fmt.Sprintf("/dev/i2c-%d", b.id)
}

// Write sends writeBuf to address and ends with a stop condition.
// An empty writeBuf results in an address-only transfer, useful to probe a device.
func (b *Bus) Write(address uint16, writeBuf []byte) error {
	return b.transfer(address, writeBuf, nil, true)
}

// Transfer writes writeBuf, issues a repeated start and reads len(readBuf) bytes.
// Both phases are sent in one I2C_RDWR ioctl, so no stop condition separates them.
func (b *Bus) Transfer(address uint16, writeBuf []byte, readBuf []byte) error {
	return b.transfer(address, writeBuf, readBuf, false)
}

// buildMessages lays out the write message (if any) followed by the read message.
func buildMessages(address uint16, writeBuf []byte, readBuf []byte, forceWrite bool) []i2cMsg {
	var transfer []i2cMsg
	if len(writeBuf) > 0 || forceWrite {
		msg := i2cMsg{
			Address: address,
			Len:     uint16(len(writeBuf)),
		}
		if len(writeBuf) > 0 {
			msg.Buf = uintptr(unsafe.Pointer(&writeBuf[0]))
		}
		transfer = append(transfer, msg)
	}
	if len(readBuf) > 0 {
		transfer = append(transfer, i2cMsg{
			Address: address,
			Flags:   i2cFlagRead,
			Len:     uint16(len(readBuf)),
			Buf:     uintptr(unsafe.Pointer(&readBuf[0])),
		})
	}
	return transfer
}

func (b *Bus) transfer(address uint16, writeBuf []byte, readBuf []byte, forceWrite bool) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	transfer := buildMessages(address, writeBuf, readBuf, forceWrite)

	if len(transfer) == 0 {
		// A succesful, albeit useless, transfer
		return nil
	}

	param := rdWrRaw{
		Messages:    uintptr(unsafe.Pointer(&transfer[0])),
		NumMessages: uint32(len(transfer)),
	}

	n, _, errNo := unix.Syscall(unix.SYS_IOCTL, b.file.Fd(), i2cRdWr, uintptr(unsafe.Pointer(&param)))

	runtime.KeepAlive(transfer)
	runtime.KeepAlive(writeBuf)
	runtime.KeepAlive(readBuf)

	if errNo != 0 {
		return fmt.Errorf("I2C transfer to 0x%02x failed: %s", address, errNo.Error())
	}
	if int(n) != len(transfer) {
		return fmt.Errorf("I2C transfer to 0x%02x incomplete: %d of %d messages", address, n, len(transfer))
	}

	return nil
}
