// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

import (
	"bytes"
	"errors"
	"testing"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

type spiTxn struct {
	tx []byte
	rx []byte
}

// recordConn records every Tx and answers reads from canned data.
type recordConn struct {
	txns    []spiTxn
	respond []byte
	fail    error
}

func (c *recordConn) String() string      { return "recordconn" }
func (c *recordConn) Duplex() conn.Duplex { return conn.Full }

func (c *recordConn) Tx(w, r []byte) error {
	txn := spiTxn{tx: append([]byte(nil), w...)}
	if c.fail != nil {
		return c.fail
	}
	if r != nil {
		for i := range r {
			r[i] = 0
		}
		copy(r[1:], c.respond)
		txn.rx = append([]byte(nil), r...)
	}
	c.txns = append(c.txns, txn)
	return nil
}
func (c *recordConn) TxPackets(p []spi.Packet) error { return errors.New("not implemented") }

// recordPort hands out a pre-built conn and remembers the connect args.
type recordPort struct {
	conn *recordConn
	freq physic.Frequency
	mode spi.Mode
	bits int
}

func (p *recordPort) String() string { return "recordport" }
func (p *recordPort) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	p.freq, p.mode, p.bits = f, mode, bits
	return p.conn, nil
}

// recordPin records every level driven on a chip-select line.
type recordPin struct {
	name   string
	levels []gpio.Level
	fail   error
}

func (p *recordPin) String() string   { return p.name }
func (p *recordPin) Halt() error      { return nil }
func (p *recordPin) Name() string     { return p.name }
func (p *recordPin) Number() int      { return -1 }
func (p *recordPin) Function() string { return "Out" }
func (p *recordPin) Out(l gpio.Level) error {
	if p.fail != nil {
		return p.fail
	}
	p.levels = append(p.levels, l)
	return nil
}
func (p *recordPin) PWM(d gpio.Duty, f physic.Frequency) error { return errors.New("not implemented") }

func newSPIFixture(t *testing.T) (*SPITransport, *recordConn, *recordPin, *recordPin) {
	t.Helper()
	c := &recordConn{}
	port := &recordPort{conn: c}
	csAG := &recordPin{name: "cs_ag"}
	csMag := &recordPin{name: "cs_mag"}
	tr, err := NewSPI(port, csAG, csMag)
	if err != nil {
		t.Fatalf("NewSPI: %v", err)
	}
	if port.mode != spi.Mode0 || port.bits != 8 {
		t.Fatalf("connected with mode %v bits %d, want mode0/8", port.mode, port.bits)
	}
	return tr, c, csAG, csMag
}

func TestSPIReadFraming(t *testing.T) {
	tr, c, _, _ := newSPIFixture(t)
	c.respond = []byte{1, 2, 3, 4, 5, 6}

	buf := make([]byte, 6)
	if err := tr.Read(DeviceAG, 0x20, buf); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(c.txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(c.txns))
	}
	tx := c.txns[0].tx
	if len(tx) != 7 {
		t.Fatalf("tx length %d, want 7", len(tx))
	}
	if tx[0] != 0xA0 {
		t.Errorf("address byte 0x%02X, want 0xA0", tx[0])
	}
	if !bytes.Equal(buf, []byte{1, 2, 3, 4, 5, 6}) {
		t.Errorf("read data %v", buf)
	}
}

func TestSPIMagReadSetsMSBit(t *testing.T) {
	tr, c, _, _ := newSPIFixture(t)
	c.respond = make([]byte, 6)

	buf := make([]byte, 6)
	if err := tr.Read(DeviceMag, 0x28, buf); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := c.txns[0].tx[0]; got != 0xE8 {
		t.Errorf("address byte 0x%02X, want 0xE8 (read|MS|0x28)", got)
	}
}

func TestSPIWriteFraming(t *testing.T) {
	tr, c, _, _ := newSPIFixture(t)

	if err := tr.Write(DeviceAG, 0x10, 0xC0); err != nil {
		t.Fatalf("Write: %v", err)
	}
	tx := c.txns[0].tx
	if !bytes.Equal(tx, []byte{0x10, 0xC0}) {
		t.Errorf("tx %v, want [0x10 0xC0]", tx)
	}
}

func TestSPIWriteClearsReadBit(t *testing.T) {
	tr, c, _, _ := newSPIFixture(t)

	if err := tr.Write(DeviceAG, 0x90, 0x01); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := c.txns[0].tx[0]; got != 0x10 {
		t.Errorf("address byte 0x%02X, want 0x10", got)
	}
}

func TestSPIChipSelectDiscipline(t *testing.T) {
	tr, _, csAG, csMag := newSPIFixture(t)

	if err := tr.Write(DeviceAG, 0x10, 0x00); err != nil {
		t.Fatalf("Write: %v", err)
	}
	// High at construction, then low/high around the transaction.
	want := []gpio.Level{gpio.High, gpio.Low, gpio.High}
	if len(csAG.levels) != len(want) {
		t.Fatalf("csAG levels %v, want %v", csAG.levels, want)
	}
	for i, l := range want {
		if csAG.levels[i] != l {
			t.Fatalf("csAG levels %v, want %v", csAG.levels, want)
		}
	}
	// The mag line stays deselected throughout.
	if len(csMag.levels) != 1 || csMag.levels[0] != gpio.High {
		t.Errorf("csMag levels %v, want [High]", csMag.levels)
	}
}

func TestSPIChipSelectReleasedOnFailure(t *testing.T) {
	tr, c, csAG, _ := newSPIFixture(t)
	c.fail = errors.New("wire fell off")

	err := tr.Read(DeviceAG, 0x28, make([]byte, 6))
	if err == nil {
		t.Fatal("expected error")
	}
	var be *BusError
	if !errors.As(err, &be) {
		t.Fatalf("error %T, want *BusError", err)
	}
	if be.Register != 0x28 || be.Op != "read" {
		t.Errorf("BusError = %+v", be)
	}
	if last := csAG.levels[len(csAG.levels)-1]; last != gpio.High {
		t.Errorf("chip select left asserted after failed transfer")
	}
}

type i2cTxn struct {
	addr uint16
	w    []byte
	rlen int
}

type recordBus struct {
	txns    []i2cTxn
	respond []byte
	fail    error
}

func (b *recordBus) String() string { return "recordbus" }
func (b *recordBus) Tx(addr uint16, w, r []byte) error {
	if b.fail != nil {
		return b.fail
	}
	b.txns = append(b.txns, i2cTxn{addr: addr, w: append([]byte(nil), w...), rlen: len(r)})
	copy(r, b.respond)
	return nil
}
func (b *recordBus) SetSpeed(f physic.Frequency) error { return nil }

func TestI2CReadFraming(t *testing.T) {
	bus := &recordBus{respond: []byte{10, 0, 20, 0, 30, 0}}
	tr := NewI2C(bus, 0, 0)

	buf := make([]byte, 6)
	if err := tr.Read(DeviceAG, 0x28, buf); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(bus.txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(bus.txns))
	}
	txn := bus.txns[0]
	if txn.addr != DefaultAddrAG {
		t.Errorf("addr 0x%02X, want 0x%02X", txn.addr, DefaultAddrAG)
	}
	if !bytes.Equal(txn.w, []byte{0x28}) {
		t.Errorf("register pointer write %v, want [0x28]", txn.w)
	}
	if txn.rlen != 6 {
		t.Errorf("read length %d, want 6", txn.rlen)
	}
}

func TestI2CWriteFraming(t *testing.T) {
	bus := &recordBus{}
	tr := NewI2C(bus, AltAddrAG, AltAddrMag)

	if err := tr.Write(DeviceMag, 0x22, 0x04); err != nil {
		t.Fatalf("Write: %v", err)
	}
	txn := bus.txns[0]
	if txn.addr != AltAddrMag {
		t.Errorf("addr 0x%02X, want 0x%02X", txn.addr, AltAddrMag)
	}
	if !bytes.Equal(txn.w, []byte{0x22, 0x04}) {
		t.Errorf("write %v, want [0x22 0x04]", txn.w)
	}
}

func TestI2CErrorWrapping(t *testing.T) {
	cause := errors.New("bus stuck")
	bus := &recordBus{fail: cause}
	tr := NewI2C(bus, 0, 0)

	err := tr.Write(DeviceAG, 0x10, 0x00)
	var be *BusError
	if !errors.As(err, &be) {
		t.Fatalf("error %T, want *BusError", err)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
}
