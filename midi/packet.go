package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// PacketSize is the length of every outbound packet
const PacketSize = 5

// Packet is one BLE-MIDI note message:
//
//	[header][timestamp][status][data1][data2]
type Packet struct {
	Header    uint8
	Timestamp uint8
	Status    uint8
	Data1     uint8 // note
	Data2     uint8 // velocity
}

// EncodeOn builds a note-on packet
func EncodeOn(note, velocity uint8) Packet {
	return Packet{
		Header:    Header,
		Timestamp: Timestamp,
		Status:    NoteOn,
		Data1:     note,
		Data2:     velocity,
	}
}

// EncodeOff builds the matching note-off packet; velocity is always 0
func EncodeOff(note uint8) Packet {
	return Packet{
		Header:    Header,
		Timestamp: Timestamp,
		Status:    NoteOff,
		Data1:     note,
		Data2:     0,
	}
}

// Bytes returns the wire representation
func (p Packet) Bytes() [PacketSize]byte {
	return [PacketSize]byte{p.Header, p.Timestamp, p.Status, p.Data1, p.Data2}
}

// DecodePacket parses a wire packet
func DecodePacket(b []byte) (Packet, error) {
	if len(b) != PacketSize {
		return Packet{}, fmt.Errorf("packet: want %d bytes, got %d", PacketSize, len(b))
	}
	if b[0]&0x80 == 0 {
		return Packet{}, fmt.Errorf("packet: bad header 0x%02x", b[0])
	}
	return Packet{Header: b[0], Timestamp: b[1], Status: b[2], Data1: b[3], Data2: b[4]}, nil
}

// Message converts the packet to a standard channel 0 MIDI message for
// ordinary MIDI ports, where the 0x20 note-up status means nothing.
func (p Packet) Message() gomidi.Message {
	switch p.Status {
	case NoteOn:
		return gomidi.NoteOn(0, p.Data1, p.Data2)
	case NoteOff:
		return gomidi.NoteOff(0, p.Data1)
	default:
		return gomidi.Message([]byte{p.Status, p.Data1, p.Data2})
	}
}

func (p Packet) String() string {
	return fmt.Sprintf("[%02x %02x %02x %02x %02x]", p.Header, p.Timestamp, p.Status, p.Data1, p.Data2)
}
