package core

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"strings"

	"github.com/cnxtech/device-os/pkg/log"
	"github.com/cnxtech/device-os/pkg/session"
	"github.com/cnxtech/device-os/pkg/wire"
)

// variableStringLimit mirrors the "min(len, QUEUE_SIZE-18)" cap a STRING
// variable response is subject to, accounting for the frame's header,
// token, options and payload marker ahead of the value.
func variableStringLimit() int { return session.QueueSize - 18 }

// handleMessage unwraps an encrypted frame already read off the
// transport and dispatches it by classified message type. A returned
// error is always a transport failure (from sendEncrypted); protocol
// malformation is dropped in place and reported as success, matching
// the drop-and-continue error policy around inbound messages.
func (c *Core) handleMessage(ciphertext []byte) error {
	padded, err := c.session.Decrypt(ciphertext)
	if err != nil {
		return nil
	}

	c.session.SetExpectingPingAck(false)
	c.lastMessageMillis = c.session.Callbacks().Millis()

	kind := wire.Classify(padded)
	if h, err := wire.DecodeHeader(padded); err == nil {
		logKind := kind
		c.logMessage(log.DirectionIn, h.MessageID, &logKind, "", nil)
	}

	switch kind {
	case wire.MessageDescribe:
		return c.handleDescribe(padded)
	case wire.MessageFunctionCall:
		return c.handleFunctionCall(padded)
	case wire.MessageVariableRequest:
		return c.handleVariableRequest(padded)
	case wire.MessageChunk:
		return c.handleChunk(padded)
	case wire.MessageSaveBegin:
		return c.handleBegin(padded, false)
	case wire.MessageUpdateBegin:
		return c.handleBegin(padded, true)
	case wire.MessageUpdateDone:
		return c.handleUpdateDone(padded)
	case wire.MessageEvent:
		return c.handleEvent(padded)
	case wire.MessageTime:
		return c.handleTime(padded)
	case wire.MessagePing:
		return c.handlePing(padded)
	case wire.MessageSignalStart:
		return c.handleSignal(padded, true)
	case wire.MessageSignalStop:
		return c.handleSignal(padded, false)
	case wire.MessageHello:
		return c.handleHello()
	default:
		// KEY_CHANGE, EMPTY_ACK, ERROR and anything unrecognized: drop.
		return nil
	}
}

func unpadded(padded []byte) ([]byte, error) {
	n, err := wire.UnpadLen(padded)
	if err != nil {
		return nil, err
	}
	return padded[:n], nil
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

func (c *Core) sendEncrypted(msg []byte) error {
	enc, err := c.session.Encrypt(msg)
	if err != nil {
		// Oversized message: resource exhaustion, not a transport
		// failure. Drop and let the session continue.
		return nil
	}
	return c.session.SendFull(enc)
}

type describeDoc struct {
	F []string       `json:"f"`
	V map[string]int `json:"v"`
}

func (c *Core) handleDescribe(padded []byte) error {
	plain, err := unpadded(padded)
	if err != nil {
		return nil
	}
	frame, err := wire.Decode(plain)
	if err != nil {
		return nil
	}

	desc := c.session.Descriptor()
	doc := describeDoc{V: map[string]int{}}
	for i := 0; i < desc.NumFunctions(); i++ {
		doc.F = append(doc.F, truncate(desc.FunctionKey(i), MaxFunctionKeyLength))
	}
	for i := 0; i < desc.NumVariables(); i++ {
		key := truncate(desc.VariableKey(i), MaxVariableKeyLength)
		doc.V[key] = int(desc.VariableType(key))
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil
	}
	return c.sendEncrypted(wire.BuildPiggybackedAck(wire.CodeContent, frame.Header.MessageID, frame.Token, payload))
}

func (c *Core) handleFunctionCall(padded []byte) error {
	plain, err := unpadded(padded)
	if err != nil {
		return nil
	}
	frame, err := wire.Decode(plain)
	if err != nil {
		return nil
	}

	if err := c.sendEncrypted(wire.BuildEmptyAck(frame.Header.MessageID)); err != nil {
		return err
	}

	segs := wire.UriPathSegments(frame.Options)
	if len(segs) < 2 {
		return nil
	}
	key := truncate(string(segs[1]), MaxFunctionKeyLength)

	var arg string
	if q, ok := wire.FindOption(frame.Options, wire.OptionUriQuery); ok {
		if len(q.Value) >= MaxFunctionArgLength {
			return nil
		}
		arg = string(q.Value)
	}

	ret, err := c.session.Descriptor().CallFunction(key, arg)
	if err != nil {
		return nil
	}

	var token byte
	if len(frame.Token) > 0 {
		token = frame.Token[0]
	}
	mid := c.session.NextMessageID()
	return c.sendEncrypted(wire.BuildFunctionReturn(mid, token, ret))
}

func (c *Core) handleVariableRequest(padded []byte) error {
	plain, err := unpadded(padded)
	if err != nil {
		return nil
	}
	frame, err := wire.Decode(plain)
	if err != nil {
		return nil
	}

	segs := wire.UriPathSegments(frame.Options)
	if len(segs) < 2 {
		return nil
	}
	key := truncate(string(segs[1]), MaxVariableKeyLength)

	desc := c.session.Descriptor()
	value, ok := desc.GetVariable(key)
	if !ok {
		return nil
	}
	payload, err := encodeVariable(desc.VariableType(key), value)
	if err != nil {
		return nil
	}
	return c.sendEncrypted(wire.BuildPiggybackedAck(wire.CodeContent, frame.Header.MessageID, frame.Token, payload))
}

func encodeVariable(vtype wire.VariableType, value any) ([]byte, error) {
	switch vtype {
	case wire.VariableBoolean:
		b, ok := value.(bool)
		if !ok {
			return nil, errBadVariableValue
		}
		if b {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case wire.VariableInt:
		v, ok := toInt32(value)
		if !ok {
			return nil, errBadVariableValue
		}
		out := make([]byte, 4)
		binary.BigEndian.PutUint32(out, uint32(v))
		return out, nil
	case wire.VariableDouble:
		v, ok := toFloat64(value)
		if !ok {
			return nil, errBadVariableValue
		}
		out := make([]byte, 8)
		binary.LittleEndian.PutUint64(out, math.Float64bits(v))
		return out, nil
	case wire.VariableString:
		s, ok := value.(string)
		if !ok {
			return nil, errBadVariableValue
		}
		b := []byte(s)
		if max := variableStringLimit(); len(b) > max {
			b = b[:max]
		}
		return b, nil
	default:
		return nil, errBadVariableValue
	}
}

func toInt32(v any) (int32, bool) {
	switch x := v.(type) {
	case int32:
		return x, true
	case int:
		return int32(x), true
	default:
		return 0, false
	}
}

func toFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	default:
		return 0, false
	}
}

func (c *Core) handleChunk(padded []byte) error {
	h, err := wire.DecodeHeader(padded)
	if err != nil || h.TokenLen != 1 || len(padded) < 5 {
		return nil
	}
	token := padded[4]

	if err := c.sendEncrypted(wire.BuildEmptyAck(h.MessageID)); err != nil {
		return err
	}

	off, err := wire.FixedBodyOffset(padded)
	if err != nil {
		return nil
	}
	plain, err := unpadded(padded)
	if err != nil || off+4 > len(plain) {
		return nil
	}
	crc := binary.BigEndian.Uint32(plain[off : off+4])
	payload := plain[off+4:]

	cb := c.session.Callbacks()
	match := cb.CalculateCRC(payload) == crc

	c.mu.Lock()
	if c.chunkCRCOverride != nil {
		match = *c.chunkCRCOverride
	}
	c.mu.Unlock()

	c.lastChunkMillis = cb.Millis()

	if !match {
		mid := c.session.NextMessageID()
		return c.sendEncrypted(wire.BuildCodedAck(wire.Code(wire.ChunkReceivedBad), mid, token))
	}

	nextIndex, err := cb.SaveFirmwareChunk(payload)
	if err != nil {
		return nil
	}

	mid := c.session.NextMessageID()
	if nextIndex > c.chunkIndex {
		c.chunkIndex = nextIndex
		return c.sendEncrypted(wire.BuildCodedAck(wire.Code(wire.ChunkReceivedOK), mid, token))
	}
	return c.sendEncrypted(wire.BuildChunkMissed(mid, nextIndex))
}

func (c *Core) handleBegin(padded []byte, isUpdate bool) error {
	h, err := wire.DecodeHeader(padded)
	if err != nil || len(padded) < 5 {
		return nil
	}

	if err := c.sendEncrypted(wire.BuildEmptyAck(h.MessageID)); err != nil {
		return err
	}

	cb := c.session.Callbacks()
	if isUpdate {
		if err := cb.PrepareForFirmwareUpdate(); err != nil {
			return nil
		}
	} else {
		off, err := wire.FixedBodyOffset(padded)
		if err != nil {
			return nil
		}
		plain, err := unpadded(padded)
		if err != nil || off+8 > len(plain) {
			return nil
		}
		flashAddr := binary.BigEndian.Uint32(plain[off : off+4])
		fileSize := binary.BigEndian.Uint32(plain[off+4 : off+8])
		if err := cb.PrepareToSaveFile(flashAddr, fileSize); err != nil {
			return nil
		}
	}

	c.session.SetUpdating(true)
	c.chunkIndex = 0
	c.lastChunkMillis = cb.Millis()
	c.logStateChange(log.StateEntitySession, "idle", "updating", "")

	mid := c.session.NextMessageID()
	return c.sendEncrypted(wire.BuildUpdateReady(mid))
}

func (c *Core) handleUpdateDone(padded []byte) error {
	h, err := wire.DecodeHeader(padded)
	if err != nil {
		return nil
	}
	var token []byte
	if h.TokenLen == 1 && len(padded) >= 5 {
		token = padded[4:5]
	}

	c.session.SetUpdating(false)
	c.logStateChange(log.StateEntitySession, "updating", "idle", "")
	if err := c.session.Callbacks().FinishFirmwareUpdate(true); err != nil {
		return nil
	}
	return c.sendEncrypted(wire.BuildPiggybackedAck(wire.CodeChanged, h.MessageID, token, nil))
}

func (c *Core) handleEvent(padded []byte) error {
	plain, err := unpadded(padded)
	if err != nil {
		return nil
	}
	frame, err := wire.Decode(plain)
	if err != nil {
		return nil
	}

	segs := wire.UriPathSegments(frame.Options)
	if len(segs) < 2 {
		return nil
	}
	parts := make([]string, len(segs)-1)
	for i, s := range segs[1:] {
		parts[i] = string(s)
	}
	name := strings.Join(parts, "/")

	c.subs.Dispatch(name, frame.Payload)
	return nil
}

func (c *Core) handleTime(padded []byte) error {
	if len(padded) < 10 {
		return nil
	}
	ts := binary.BigEndian.Uint32(padded[6:10])
	_ = c.session.Callbacks().SetTime(ts)
	return nil
}

func (c *Core) handlePing(padded []byte) error {
	h, err := wire.DecodeHeader(padded)
	if err != nil {
		return nil
	}
	return c.sendEncrypted(wire.BuildEmptyAck(h.MessageID))
}

func (c *Core) handleSignal(padded []byte, on bool) error {
	h, err := wire.DecodeHeader(padded)
	if err != nil {
		return nil
	}
	var token []byte
	if h.TokenLen == 1 && len(padded) >= 5 {
		token = padded[4:5]
	}

	if err := c.sendEncrypted(wire.BuildPiggybackedAck(wire.CodeChanged, h.MessageID, token, nil)); err != nil {
		return err
	}
	_ = c.session.Callbacks().Signal(on)
	return nil
}

func (c *Core) handleHello() error {
	c.session.Descriptor().OTAUpgradeStatusSent()
	return nil
}
