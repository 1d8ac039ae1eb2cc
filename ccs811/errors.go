package ccs811

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrorTransport means a bus transaction (or the wake pin) did not complete.
	ErrorTransport = Error("I2C transaction failed")
	// ErrorMismatch means a register held a value that is not valid at this point of the sequence.
	ErrorMismatch = Error("Unexpected register value")
	// ErrorImageEmpty is returned when Flash is called without image data.
	ErrorImageEmpty = Error("Firmware image is empty")
)

// StepError describes which step of an operation failed.
// errors.Is(err, ErrorTransport) and errors.Is(err, ErrorMismatch) tell the two kinds apart.
type StepError struct {
	Op       string
	Step     string
	Register byte
	Kind     Error

	// Got and Want are only meaningful for ErrorMismatch.
	Got  int
	Want int

	// Err is the underlying bus error, if any.
	Err error
}

func (e *StepError) Error() string {
	prefix := fmt.Sprintf("ccs811: %s: %s", e.Op, e.Step)

	if e.Kind == ErrorMismatch {
		return fmt.Sprintf("%s: %s=0x%02X, expected 0x%02X", prefix, regName(e.Register), e.Got, e.Want)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Kind)
}

func (e *StepError) Unwrap() error { return e.Err }

func (e *StepError) Is(target error) bool {
	return target == e.Kind
}

// Fields returns the diagnostic detail of the error as log fields.
func (e *StepError) Fields() logrus.Fields {
	f := logrus.Fields{
		"step":     e.Step,
		"register": regName(e.Register),
	}
	if e.Kind == ErrorMismatch {
		f["value"] = fmt.Sprintf("0x%02X", e.Got)
	}
	return f
}

func transportError(op string, step string, reg byte, err error) *StepError {
	return &StepError{
		Op:       op,
		Step:     step,
		Register: reg,
		Kind:     ErrorTransport,
		Err:      err,
	}
}

func mismatchError(op string, step string, reg byte, got int, want int) *StepError {
	return &StepError{
		Op:       op,
		Step:     step,
		Register: reg,
		Kind:     ErrorMismatch,
		Got:      got,
		Want:     want,
	}
}

func regName(reg byte) string {
	if name, ok := regNames[reg]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", reg)
}
