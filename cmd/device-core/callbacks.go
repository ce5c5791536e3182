package main

import (
	"hash/crc32"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/cnxtech/device-os/pkg/descriptor"
	"github.com/cnxtech/device-os/pkg/ringbuffer"
)

// readBufferSize is the scratch size used to drain the socket into the
// ring buffer on each underlying read.
const readBufferSize = 2048

// connCallbacks implements descriptor.Callbacks over a net.Conn, making
// Receive non-blocking with a short read deadline so Core.Tick never
// stalls the host's event loop waiting for bytes that may not arrive.
// Socket reads are staged through a ring buffer so a short Receive call
// never discards bytes read past what the caller asked for.
type connCallbacks struct {
	conn    net.Conn
	start   time.Time
	log     *slog.Logger
	staged  *ringbuffer.Ring
	scratch [readBufferSize]byte

	firmwareFile  *os.File
	firmwareChunk uint16
}

func newConnCallbacks(conn net.Conn, log *slog.Logger) *connCallbacks {
	return &connCallbacks{
		conn:   conn,
		start:  time.Now(),
		log:    log,
		staged: ringbuffer.New(4 * readBufferSize),
	}
}

var _ descriptor.Callbacks = (*connCallbacks)(nil)

func (c *connCallbacks) Send(buf []byte) (int, error) {
	return c.conn.Write(buf)
}

// Receive drains bytes staged from a prior socket read first, only
// touching the network once the ring runs dry.
func (c *connCallbacks) Receive(buf []byte) (int, error) {
	if c.staged.Used() == 0 {
		_ = c.conn.SetReadDeadline(time.Now().Add(5 * time.Millisecond))
		n, err := c.conn.Read(c.scratch[:])
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				return 0, nil
			}
			return 0, err
		}
		if n > c.staged.Free() {
			n = c.staged.Free()
		}
		if err := c.staged.Push(c.scratch[:n]); err != nil {
			return 0, err
		}
	}

	n := c.staged.Used()
	if n > len(buf) {
		n = len(buf)
	}
	if n == 0 {
		return 0, nil
	}
	if err := c.staged.Pop(buf[:n]); err != nil {
		return 0, err
	}
	return n, nil
}

func (c *connCallbacks) Millis() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

func (c *connCallbacks) PrepareForFirmwareUpdate() error {
	c.log.Info("preparing for firmware update")
	return nil
}

func (c *connCallbacks) PrepareToSaveFile(flashAddress, size uint32) error {
	f, err := os.CreateTemp("", "device-core-ota-*.bin")
	if err != nil {
		return err
	}
	c.firmwareFile = f
	c.firmwareChunk = 0
	c.log.Info("receiving firmware update", "size", size, "flash_address", flashAddress, "path", f.Name())
	return nil
}

func (c *connCallbacks) SaveFirmwareChunk(buf []byte) (uint16, error) {
	if c.firmwareFile == nil {
		return 0, nil
	}
	if _, err := c.firmwareFile.Write(buf); err != nil {
		return 0, err
	}
	c.firmwareChunk++
	return c.firmwareChunk, nil
}

func (c *connCallbacks) FinishFirmwareUpdate(ok bool) error {
	if c.firmwareFile == nil {
		return nil
	}
	name := c.firmwareFile.Name()
	err := c.firmwareFile.Close()
	c.firmwareFile = nil
	c.log.Info("firmware update finished", "ok", ok, "path", name)
	return err
}

func (c *connCallbacks) CalculateCRC(buf []byte) uint32 {
	return crc32.ChecksumIEEE(buf)
}

func (c *connCallbacks) Signal(on bool) error {
	c.log.Info("signal", "on", on)
	return nil
}

func (c *connCallbacks) SetTime(unixSeconds uint32) error {
	c.log.Info("time set by cloud", "unix", unixSeconds)
	return nil
}
