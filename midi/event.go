package midi

// BLE-MIDI packet bytes
const (
	Header    uint8 = 0x80 // packet header, high bit set
	Timestamp uint8 = 0x80 // timestamp byte, no running clock

	NoteOn  uint8 = 0x90 // note down, channel 0
	NoteOff uint8 = 0x20 // "note up" as the listener expects it, not the standard 0x80

	MiddleC uint8 = 0x3c
)

// BLE-MIDI GATT identifiers
const (
	ServiceUUID        = "03b80e5a-ede8-4b33-a751-6ce34ec4c700"
	CharacteristicUUID = "7772e5db-3868-4112-a1a9-f2669d106bf3"
)

