package ccs811

// ErrStat merges ERROR_ID (bits 15-8) and STATUS (bits 7-0). Bit 1, always
// zero in hardware, is set by the driver when an I2C transaction failed.
type ErrStat uint16

const (
	ErrStatError            ErrStat = 0x0001 // ERROR_ID contains the error source
	ErrStatI2CFail          ErrStat = 0x0002 // Added by software: I2C transaction error
	ErrStatDataReady        ErrStat = 0x0008 // A new sample is ready in ALG_RESULT_DATA
	ErrStatAppValid         ErrStat = 0x0010 // Valid application firmware loaded
	ErrStatFWMode           ErrStat = 0x0080 // Application mode (not boot mode)
	ErrStatWriteRegInvalid  ErrStat = 0x0100 // Write to an invalid register address
	ErrStatReadRegInvalid   ErrStat = 0x0200 // Read from an invalid mailbox
	ErrStatMeasModeInvalid  ErrStat = 0x0400 // Unsupported mode written to MEAS_MODE
	ErrStatMaxResistance    ErrStat = 0x0800 // Sensor resistance reached the maximum range
	ErrStatHeaterFault      ErrStat = 0x1000 // Heater current out of range
	ErrStatHeaterSupply     ErrStat = 0x2000 // Heater voltage not applied correctly
	ErrStatHWErrors                 = ErrStatError | ErrStatWriteRegInvalid | ErrStatReadRegInvalid | ErrStatMeasModeInvalid | ErrStatMaxResistance | ErrStatHeaterFault | ErrStatHeaterSupply
	ErrStatErrors                   = ErrStatI2CFail | ErrStatHWErrors
	ErrStatOK                       = ErrStatDataReady | ErrStatAppValid | ErrStatFWMode
	ErrStatOKNoData                 = ErrStatAppValid | ErrStatFWMode
)

// Letter per bit, most significant bit first. '-' marks bits without meaning.
const errStatLetters = "--VHXMRWF--AD-IE"

// String returns a 16 character code: upper case when a bit is set, lower case when it is clear.
func (e ErrStat) String() string {
	var s [16]byte

	for i := range s {
		c := errStatLetters[i]
		switch {
		case c == '-':
			s[i] = c
		case e&(1<<(15-uint(i))) != 0:
			s[i] = c
		default:
			s[i] = c + 'a' - 'A'
		}
	}

	return string(s[:])
}

func (e ErrStat) HasErrors() bool {
	return e&ErrStatErrors != 0
}

func (e ErrStat) DataReady() bool {
	return e&ErrStatDataReady != 0
}

// ErrorID returns the ERROR_ID part.
func (e ErrStat) ErrorID() uint8 {
	return uint8(e >> 8)
}
