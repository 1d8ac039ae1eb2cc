// Package ccs811 drives the ams CCS811 digital gas sensor over I2C.
//
// The driver brings the chip from boot mode into application mode, selects the
// drive mode, reads eCO2/eTVOC samples and decodes the combined ERROR_ID/STATUS
// word. It also writes environmental compensation data, saves and restores the
// baseline register and reflashes the application firmware.
//
// A Device is not safe for concurrent use. If several devices share one bus,
// the Bus implementation has to serialize transfers.
package ccs811
