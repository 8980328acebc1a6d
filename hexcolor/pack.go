package hexcolor

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
)

// PackCompression indicates the compression used for the pack content section.
type PackCompression uint8

const (
	PackCompNone PackCompression = 0
	PackCompZlib PackCompression = 1
	PackCompZstd PackCompression = 2
)

// ParsePackCompression maps a config value ("none", "zlib", "zstd") to a codec.
func ParsePackCompression(s string) (PackCompression, error) {
	switch s {
	case "none":
		return PackCompNone, nil
	case "zlib":
		return PackCompZlib, nil
	case "zstd":
		return PackCompZstd, nil
	}
	return 0, fmt.Errorf("unknown pack compression %q", s)
}

func (c PackCompression) String() string {
	switch c {
	case PackCompNone:
		return "none"
	case PackCompZlib:
		return "zlib"
	case PackCompZstd:
		return "zstd"
	}
	return fmt.Sprintf("PackCompression(%d)", uint8(c))
}

const (
	packMagicStr = "HXPLPACK"
	packVersion  = 1
)

// PackEntry is one .hxpl payload inside a pack.
type PackEntry struct {
	Name    string
	Enc     uint8
	Count   uint16
	Payload []byte
}

// Pack is a named collection of encoded palettes.
type Pack struct {
	Entries []PackEntry
}

// Marshal encodes the pack. Entries with identical payloads share one stored block.
func (p *Pack) Marshal(comp PackCompression) ([]byte, error) {
	blocks, refs := dedupBlocks(p.Entries)

	var content bytes.Buffer
	_ = binary.Write(&content, binary.LittleEndian, uint32(len(blocks)))
	for _, blk := range blocks {
		_ = binary.Write(&content, binary.LittleEndian, uint32(len(blk)))
		_, _ = content.Write(blk)
	}
	_ = binary.Write(&content, binary.LittleEndian, uint32(len(p.Entries)))
	for i, e := range p.Entries {
		nb := []byte(e.Name)
		if len(nb) > 0xFFFF {
			return nil, fmt.Errorf("entry name too long: %s", e.Name)
		}
		_ = binary.Write(&content, binary.LittleEndian, uint16(len(nb)))
		_, _ = content.Write(nb)
		_ = binary.Write(&content, binary.LittleEndian, e.Enc)
		_ = binary.Write(&content, binary.LittleEndian, e.Count)
		_ = binary.Write(&content, binary.LittleEndian, uint32(refs[i]))
	}

	var finalContent []byte
	switch comp {
	case PackCompNone:
		finalContent = content.Bytes()
	case PackCompZlib:
		var buf bytes.Buffer
		zw, _ := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if _, err := zw.Write(content.Bytes()); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		finalContent = buf.Bytes()
	case PackCompZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		finalContent = enc.EncodeAll(content.Bytes(), nil)
		_ = enc.Close()
	default:
		return nil, fmt.Errorf("unsupported compression: %d", comp)
	}

	var out bytes.Buffer
	out.WriteString(packMagicStr)
	_ = binary.Write(&out, binary.LittleEndian, uint8(packVersion))
	_ = binary.Write(&out, binary.LittleEndian, uint8(comp))
	_, _ = out.Write(finalContent)
	return out.Bytes(), nil
}

// UnmarshalPack parses a .hxpack and returns the pack and the compression it used.
func UnmarshalPack(data []byte) (*Pack, PackCompression, error) {
	if len(data) < 10 || string(data[:8]) != packMagicStr {
		return nil, 0, fmt.Errorf("%w: not a .hxpack file", ErrInvalidFormat)
	}
	if version := data[8]; version != packVersion {
		return nil, 0, fmt.Errorf("%w: unsupported pack version %d", ErrInvalidFormat, version)
	}
	comp := PackCompression(data[9])
	contentBytes := data[10:]
	switch comp {
	case PackCompNone:
	case PackCompZlib:
		zr, err := zlib.NewReader(bytes.NewReader(contentBytes))
		if err != nil {
			return nil, 0, err
		}
		defer zr.Close()
		b, err := io.ReadAll(zr)
		if err != nil {
			return nil, 0, err
		}
		contentBytes = b
	case PackCompZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, 0, err
		}
		defer dec.Close()
		b, err := dec.DecodeAll(contentBytes, nil)
		if err != nil {
			return nil, 0, err
		}
		contentBytes = b
	default:
		return nil, 0, fmt.Errorf("%w: unsupported compression %d", ErrInvalidFormat, comp)
	}

	r := bytes.NewReader(contentBytes)
	var nBlocks uint32
	if err := binary.Read(r, binary.LittleEndian, &nBlocks); err != nil {
		return nil, 0, err
	}
	if int64(nBlocks)*4 > int64(r.Len()) {
		return nil, 0, fmt.Errorf("%w: block count %d exceeds content", ErrInvalidFormat, nBlocks)
	}
	blocks := make([][]byte, nBlocks)
	for i := range blocks {
		var blen uint32
		if err := binary.Read(r, binary.LittleEndian, &blen); err != nil {
			return nil, 0, err
		}
		if int64(blen) > int64(r.Len()) {
			return nil, 0, io.ErrUnexpectedEOF
		}
		b := make([]byte, blen)
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, 0, err
		}
		blocks[i] = b
	}

	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, 0, err
	}
	if int64(n)*9 > int64(r.Len()) {
		return nil, 0, fmt.Errorf("%w: entry count %d exceeds content", ErrInvalidFormat, n)
	}
	pack := &Pack{Entries: make([]PackEntry, n)}
	for i := range pack.Entries {
		var nameLen uint16
		if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
			return nil, 0, err
		}
		nameBytes := make([]byte, nameLen)
		if _, err := io.ReadFull(r, nameBytes); err != nil {
			return nil, 0, err
		}
		var enc uint8
		if err := binary.Read(r, binary.LittleEndian, &enc); err != nil {
			return nil, 0, err
		}
		var count uint16
		if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
			return nil, 0, err
		}
		var idx uint32
		if err := binary.Read(r, binary.LittleEndian, &idx); err != nil {
			return nil, 0, err
		}
		if idx >= nBlocks {
			return nil, 0, fmt.Errorf("%w: block index %d out of range", ErrInvalidFormat, idx)
		}
		pack.Entries[i] = PackEntry{Name: string(nameBytes), Enc: enc, Count: count, Payload: blocks[idx]}
	}
	return pack, comp, nil
}

// dedupBlocks returns the unique payloads and, per entry, the index of its block.
func dedupBlocks(entries []PackEntry) ([][]byte, []int) {
	blocks := make([][]byte, 0, len(entries))
	index := make(map[uint64][]int, len(entries))
	refs := make([]int, len(entries))
	for i, e := range entries {
		h := xxhash.Sum64(e.Payload)
		found := -1
		for _, idx := range index[h] {
			if bytes.Equal(blocks[idx], e.Payload) {
				found = idx
				break
			}
		}
		if found < 0 {
			found = len(blocks)
			blocks = append(blocks, e.Payload)
			index[h] = append(index[h], found)
		}
		refs[i] = found
	}
	return blocks, refs
}

// EntryFromFile splits a .hxpl file into a pack entry.
func EntryFromFile(name string, data []byte) (PackEntry, error) {
	hdr, payload, err := ParseHeaderFromBytes(data)
	if err != nil {
		return PackEntry{}, err
	}
	return PackEntry{Name: name, Enc: hdr.Enc, Count: hdr.Count, Payload: payload}, nil
}

// File rebuilds the standalone .hxpl bytes for e.
func (e PackEntry) File() []byte {
	return BuildFromHeaderAndPayload(Header{Ver: fileVersion, Enc: e.Enc, Count: e.Count}, e.Payload)
}
