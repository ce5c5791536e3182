// Package descriptor defines the host-provided surfaces the protocol
// core calls into: the variable/function registry (Descriptor) and the
// transport/firmware/timing callbacks (Callbacks). Both are external
// collaborators per the core's scope — the core only ever holds an
// interface value, never a concrete implementation or global state.
package descriptor

import "github.com/cnxtech/device-os/pkg/wire"

// Descriptor exposes the application's variable and function registry.
type Descriptor interface {
	NumFunctions() int
	FunctionKey(index int) string
	CallFunction(key string, arg string) (int32, error)

	NumVariables() int
	VariableKey(index int) string
	VariableType(key string) wire.VariableType
	GetVariable(key string) (any, bool)

	WasOTAUpgradeSuccessful() bool
	OTAUpgradeStatusSent()
}

// Callbacks exposes transport I/O, timekeeping and the firmware-update
// and signalling hooks the core needs but does not implement itself.
type Callbacks interface {
	// Send writes up to len(buf) bytes and returns the count written, or
	// a negative value / error on failure. A return of 0 means no
	// progress was made (non-blocking).
	Send(buf []byte) (int, error)
	// Receive reads up to len(buf) bytes into buf and returns the count
	// read. A return of 0 means no data is currently available.
	Receive(buf []byte) (int, error)

	// Millis returns a monotonically increasing millisecond clock.
	Millis() uint32

	PrepareForFirmwareUpdate() error
	PrepareToSaveFile(flashAddress, size uint32) error
	SaveFirmwareChunk(buf []byte) (nextChunkIndex uint16, err error)
	FinishFirmwareUpdate(ok bool) error
	CalculateCRC(buf []byte) uint32

	Signal(on bool) error
	SetTime(unixSeconds uint32) error
}
