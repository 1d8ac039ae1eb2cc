package gpio

const (
	gpioGetChipinfoIoctl         uintptr = 0x8044b401
	gpioGetLineinfoIoctl         uintptr = 0xc048b402
	gpioGetLinehandleIoctl       uintptr = 0xc16cb403
	gpiohandleGetLineValuesIoctl uintptr = 0xc040b408
	gpiohandleSetLineValuesIoctl uintptr = 0xc040b409
)

type LineFlag uint32

const (
	LineKernel     LineFlag = 0x00000001
	LineIsOut      LineFlag = 0x00000002
	LineActiveLow  LineFlag = 0x00000004
	LineOpenDrain  LineFlag = 0x00000008
	LineOpenSource LineFlag = 0x00000010
)

type RequestFlag uint32

const (
	RequestInput      RequestFlag = 0x00000001
	RequestOutput     RequestFlag = 0x00000002
	RequestActiveLow  RequestFlag = 0x00000004
	RequestOpenDrain  RequestFlag = 0x00000008
	RequestOpenSource RequestFlag = 0x00000010
)
