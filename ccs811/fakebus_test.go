package ccs811

import (
	"errors"
	"time"
)

var errNack = errors.New("nack")

type transaction struct {
	addr  uint16
	write []byte
	read  int
}

// fakeBus answers register reads from per-register queues. The last queued
// value of a register is repeated once the queue is drained.
type fakeBus struct {
	regs map[byte][][]byte
	txs  []transaction

	// failFrom makes transaction failFrom (1-based) and all later ones fail.
	failFrom int
	// failTx makes individual transactions (1-based) fail.
	failTx map[int]bool
	// deadAddr never acknowledges.
	deadAddr map[uint16]bool
	// echo stores register writes so the next read returns them.
	echo bool
	// consumeResult clears DATA_READY in STATUS when ALG_RESULT_DATA is read.
	consumeResult bool
}

func newFakeBus() *fakeBus {
	return &fakeBus{
		regs:     make(map[byte][][]byte),
		failTx:   make(map[int]bool),
		deadAddr: make(map[uint16]bool),
	}
}

func (f *fakeBus) queue(reg byte, values ...[]byte) {
	f.regs[reg] = append(f.regs[reg], values...)
}

func (f *fakeBus) record(addr uint16, w []byte, n int) error {
	f.txs = append(f.txs, transaction{addr: addr, write: append([]byte(nil), w...), read: n})
	if f.deadAddr[addr] {
		return errNack
	}
	if f.failTx[len(f.txs)] {
		return errNack
	}
	if f.failFrom > 0 && len(f.txs) >= f.failFrom {
		return errNack
	}
	return nil
}

func (f *fakeBus) Write(addr uint16, w []byte) error {
	if err := f.record(addr, w, 0); err != nil {
		return err
	}
	if f.echo && len(w) > 1 {
		f.regs[w[0]] = [][]byte{append([]byte(nil), w[1:]...)}
	}
	return nil
}

func (f *fakeBus) Transfer(addr uint16, w []byte, r []byte) error {
	if err := f.record(addr, w, len(r)); err != nil {
		return err
	}

	q := f.regs[w[0]]
	if len(q) == 0 {
		for i := range r {
			r[i] = 0
		}
		return nil
	}
	copy(r, q[0])
	if len(q) > 1 {
		f.regs[w[0]] = q[1:]
	}

	if f.consumeResult && w[0] == regAlgResultData {
		status := f.regs[regStatus]
		for i := range status {
			status[i] = []byte{status[i][0] &^ byte(ErrStatDataReady)}
		}
	}
	return nil
}

// writesTo returns the payloads written to reg.
func (f *fakeBus) writesTo(reg byte) [][]byte {
	var result [][]byte
	for _, tx := range f.txs {
		if tx.read == 0 && len(tx.write) > 0 && tx.write[0] == reg {
			result = append(result, tx.write[1:])
		}
	}
	return result
}

type delayedBus struct {
	*fakeBus
	delays []time.Duration
}

func (d *delayedBus) TransferDelayed(addr uint16, w []byte, delay time.Duration, r []byte) error {
	d.delays = append(d.delays, delay)
	return d.Transfer(addr, w, r)
}

type fakePin struct {
	values []bool
	fail   bool
}

func (p *fakePin) SetValue(high bool) error {
	if p.fail {
		return errNack
	}
	p.values = append(p.values, high)
	return nil
}

type sleepRecorder struct {
	delays []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.delays = append(s.delays, d)
}

func (s *sleepRecorder) total() time.Duration {
	var sum time.Duration
	for _, d := range s.delays {
		sum += d
	}
	return sum
}

// healthyBus is a CCS811 running application firmware version app.
func healthyBus(app uint16) *fakeBus {
	f := newFakeBus()
	f.queue(regHWID, []byte{0x81})
	f.queue(regHWVersion, []byte{0x12})
	f.queue(regStatus, []byte{statusBootValidApp}, []byte{statusAppMode})
	f.queue(regFWAppVersion, []byte{byte(app >> 8), byte(app)})
	return f
}

func newTestDevice(bus Bus, opts ...Option) (*Device, *sleepRecorder) {
	rec := &sleepRecorder{}
	opts = append([]Option{WithSleep(rec.sleep)}, opts...)
	d, err := New(bus, opts...)
	if err != nil {
		panic(err)
	}
	return d, rec
}
