package hexcolor

// Header holds the fixed fields of a .hxpl file.
// Enc is kept here rather than beside the payload because a pack stores it per entry.
type Header struct {
	Ver   uint8
	Enc   uint8
	Count uint16
	PLen  uint32 // payload length when parsing full .hxpl files
}

const (
	fileMagic   = "HXPL"
	fileVersion = 1
	headerSize  = 12
)
