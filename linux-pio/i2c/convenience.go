package i2c

// Device binds a bus to one slave address.
type Device struct {
	bus     *Bus
	address uint16
}

func (b *Bus) GetDevice(address uint16) *Device {
	return &Device{
		bus:     b,
		address: address,
	}
}

func (d *Device) Address() uint16 {
	return d.address
}

// Ping performs an address-only write and reports whether the device acknowledged.
func (d *Device) Ping() error {
	return d.bus.Write(d.address, nil)
}

// ReadReg selects reg and reads len(buf) bytes after a repeated start.
func (d *Device) ReadReg(reg uint8, buf []byte) error {
	return d.bus.Transfer(d.address, []byte{reg}, buf)
}

func (d *Device) ReadReg8(reg uint8) (uint8, error) {
	read := make([]byte, 1)
	err := d.ReadReg(reg, read)
	if err != nil {
		return 0, err
	}
	return read[0], nil
}
