package ccs811

import "time"

// Slave addresses for ADDR pin low respectively high.
const (
	AddressLow  uint16 = 0x5A
	AddressHigh uint16 = 0x5B
)

// Registers (mailboxes), all 1 byte unless stated otherwise.
const (
	regStatus        byte = 0x00
	regMeasMode      byte = 0x01
	regAlgResultData byte = 0x02 // up to 8 bytes
	regRawData       byte = 0x03 // 2 bytes
	regEnvData       byte = 0x05 // 4 bytes
	regThresholds    byte = 0x10 // 5 bytes
	regBaseline      byte = 0x11 // 2 bytes
	regHWID          byte = 0x20
	regHWVersion     byte = 0x21
	regFWBootVersion byte = 0x23 // 2 bytes
	regFWAppVersion  byte = 0x24 // 2 bytes
	regErrorID       byte = 0xE0
	regAppErase      byte = 0xF1 // 4 bytes
	regAppData       byte = 0xF2 // 8 bytes per write
	regAppVerify     byte = 0xF3 // 0 bytes
	regAppStart      byte = 0xF4 // 0 bytes
	regSWReset       byte = 0xFF // 4 bytes
)

var (
	swResetMagic  = []byte{0x11, 0xE5, 0x72, 0x8A}
	appEraseMagic = []byte{0xE7, 0xA7, 0xE6, 0x09}
)

const (
	expectedHWID          = 0x81
	expectedHWVersionMask = 0xF0
	expectedHWVersion     = 0x10
)

// STATUS register values at the various lifecycle points.
const (
	statusBootNoApp    = 0x00
	statusBootValidApp = 0x10
	statusBootVerified = 0x30
	statusBootErased   = 0x40
	statusAppMode      = 0x90
)

const (
	waitAfterWake     = 50 * time.Microsecond
	waitAfterReset    = 2000 * time.Microsecond
	waitAfterAppStart = 1000 * time.Microsecond
	waitAfterErase    = 500 * time.Millisecond
	waitAfterData     = 50 * time.Millisecond
	waitAfterVerify   = 70 * time.Millisecond
)

// FlashChunkSize is the number of image bytes sent per APP_DATA write.
const FlashChunkSize = 8

var regNames = map[byte]string{
	regStatus:        "STATUS",
	regMeasMode:      "MEAS_MODE",
	regAlgResultData: "ALG_RESULT_DATA",
	regRawData:       "RAW_DATA",
	regEnvData:       "ENV_DATA",
	regThresholds:    "THRESHOLDS",
	regBaseline:      "BASELINE",
	regHWID:          "HW_ID",
	regHWVersion:     "HW_VERSION",
	regFWBootVersion: "FW_BOOT_VERSION",
	regFWAppVersion:  "FW_APP_VERSION",
	regErrorID:       "ERROR_ID",
	regAppErase:      "APP_ERASE",
	regAppData:       "APP_DATA",
	regAppVerify:     "APP_VERIFY",
	regAppStart:      "APP_START",
	regSWReset:       "SW_RESET",
}
