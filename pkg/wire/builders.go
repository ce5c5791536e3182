package wire

import "strconv"

// The builders in this file construct the small, fixed-shape protocol
// messages named in the external wire format: HELLO, PING, the two ACK
// forms, the function-call return and the chunk-missed retransmit
// request. Each returns an unpadded plaintext buffer; callers run it
// through Pad before encryption.

// BuildHello constructs the HELLO message sent at the end of the
// handshake and whenever the host wants to announce product identity.
func BuildHello(messageID uint16, productID, firmwareVersion uint16, newlyUpgraded bool) []byte {
	upgraded := byte(0)
	if newlyUpgraded {
		upgraded = 1
	}
	return []byte{
		0x50, 0x02,
		byte(messageID >> 8), byte(messageID),
		0xb1, 'h',
		0xFF,
		byte(productID >> 8), byte(productID),
		byte(firmwareVersion >> 8), byte(firmwareVersion),
		0x00,
		upgraded,
	}
}

// BuildPing constructs a confirmable, empty PING message.
func BuildPing(messageID uint16) []byte {
	return []byte{0x40, 0x00, byte(messageID >> 8), byte(messageID)}
}

// BuildEmptyAck constructs an empty (non-piggybacked) acknowledgement
// echoing the request's message id.
func BuildEmptyAck(messageID uint16) []byte {
	return []byte{0x60, 0x00, byte(messageID >> 8), byte(messageID)}
}

// BuildCodedAck constructs an acknowledgement carrying a response code
// and token but no payload.
func BuildCodedAck(code Code, messageID uint16, token byte) []byte {
	return []byte{0x61, byte(code), byte(messageID >> 8), byte(messageID), token}
}

// BuildFunctionReturn constructs the non-confirmable 2.04 CHANGED
// response to a FUNCTION_CALL, carrying the function's 4-byte big-endian
// return value.
func BuildFunctionReturn(messageID uint16, token byte, ret int32) []byte {
	return []byte{
		0x51, byte(CodeChanged),
		byte(messageID >> 8), byte(messageID),
		token,
		0xFF,
		byte(ret >> 24), byte(ret >> 16), byte(ret >> 8), byte(ret),
	}
}

// BuildChunkMissed constructs the device-initiated retransmission
// request for the given chunk index.
func BuildChunkMissed(messageID uint16, chunkIndex uint16) []byte {
	return []byte{
		0x40, 0x01,
		byte(messageID >> 8), byte(messageID),
		0xb1, 'c',
		0xFF,
		byte(chunkIndex >> 8), byte(chunkIndex),
	}
}

// BuildUpdateReady constructs the non-confirmable 2.04 CHANGED response
// sent after SAVE_BEGIN/UPDATE_BEGIN to tell the server the device is
// ready to receive chunks.
func BuildUpdateReady(messageID uint16) []byte {
	return []byte{
		0x51, byte(CodeChanged),
		byte(messageID >> 8), byte(messageID),
		0xFF,
		0x01,
	}
}

// BuildPiggybackedAck constructs an ACK-type response carrying code,
// the request's message id and token, and an arbitrary payload - used
// for DESCRIBE, VARIABLE_REQUEST and UPDATE_DONE responses.
func BuildPiggybackedAck(code Code, messageID uint16, token []byte, payload []byte) []byte {
	f := Frame{
		Header: Header{Type: TypeAck, Code: code, MessageID: messageID},
		Token:  token,
	}
	if len(payload) > 0 {
		f.Payload = payload
	}
	return Encode(f)
}

// BuildEvent constructs a POST E message carrying an event name, TTL,
// content type and payload. TTL and content type ride as Uri-Query
// options, decimal-ASCII encoded like BuildSubscribe's filter/scope
// options.
func BuildEvent(messageID uint16, name string, ttl uint32, eventType uint8, data []byte) []byte {
	f := Frame{
		Header: Header{Type: TypeNonConfirmable, Code: CodePost, MessageID: messageID},
		Options: []Option{
			{Number: OptionUriPath, Value: []byte("E")},
			{Number: OptionUriPath, Value: []byte(name)},
			{Number: OptionUriQuery, Value: []byte(strconv.FormatUint(uint64(ttl), 10))},
			{Number: OptionUriQuery, Value: []byte(strconv.FormatUint(uint64(eventType), 10))},
		},
		Payload: data,
	}
	return Encode(f)
}

// BuildSubscribe constructs a SUBSCRIBE message for one handler table
// entry, matching send_subscriptions's wire shape.
func BuildSubscribe(messageID uint16, filter string, deviceIDOrScope string) []byte {
	f := Frame{
		Header: Header{Type: TypeNonConfirmable, Code: CodePost, MessageID: messageID},
		Options: []Option{
			{Number: OptionUriPath, Value: []byte("e")},
			{Number: OptionUriQuery, Value: []byte(filter)},
		},
	}
	if deviceIDOrScope != "" {
		f.Options = append(f.Options, Option{Number: OptionUriQuery, Value: []byte(deviceIDOrScope)})
	}
	return Encode(f)
}

// BuildTimeRequest constructs the GET t message used to proactively ask
// the cloud for the current time.
func BuildTimeRequest(messageID uint16) []byte {
	f := Frame{
		Header:  Header{Type: TypeConfirmable, Code: CodeGet, MessageID: messageID},
		Options: []Option{{Number: OptionUriPath, Value: []byte("t")}},
	}
	return Encode(f)
}
