// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

package pokedat

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Version identifies a supported game title.
type Version string

// Supported game versions.
const (
	VersionLGPE Version = "LGPE" // Pokémon Let's Go Pikachu / Let's Go Eevee
	VersionSWSH Version = "SWSH" // Pokémon Sword and Shield
	VersionLA   Version = "LA"   // Pokémon Legends: Arceus
	VersionSV   Version = "SV"   // Pokémon Scarlet and Violet
	VersionLZA  Version = "LZA"  // Pokémon Legends: Z-A
)

// CipherKind selects the keystream construction for a title.
// The set is closed: a title that needs a genuinely different scheme
// gets a new kind here, never a special case inside an existing one.
type CipherKind int

const (
	// CipherXorRotate XORs each little-endian u16 code unit with a
	// 16-bit key that rotates left by 3 after every unit. Key state
	// carries across the whole buffer.
	CipherXorRotate CipherKind = iota

	// CipherXorBlock derives a fresh 16-bit key for each fixed-size
	// block (seed + blockIndex*advance) and rotates it within the
	// block only.
	CipherXorBlock

	// CipherAddStream adds a byte-wise keystream produced by a linear
	// congruential generator; decryption subtracts it.
	CipherAddStream
)

// ChecksumKind selects the per-entry integrity tag, if any.
type ChecksumKind int

const (
	ChecksumNone ChecksumKind = iota
	ChecksumCRC32
	ChecksumAdler32
)

// TextEncoding selects how entry strings are stored.
type TextEncoding int

const (
	// EncodingUTF16 stores little-endian UTF-16 code units with the
	// control-token grammar and a u16 0x0000 terminator.
	EncodingUTF16 TextEncoding = iota

	// EncodingUTF8 stores plain UTF-8 bytes with a NUL terminator and
	// no token grammar. Used by synthetic profiles.
	EncodingUTF8
)

// CipherParams bundles the keystream parameters for one title.
type CipherParams struct {
	Kind      CipherKind
	Seed      uint32
	Advance   uint32 // per-block key advance (CipherXorBlock)
	BlockSize int    // block length in bytes (CipherXorBlock)
	Mul       uint32 // LCG multiplier (CipherAddStream)
	Inc       uint32 // LCG increment (CipherAddStream)
}

// HeaderLayout describes where the header stores its fields.
// A width of zero means the field is absent.
type HeaderLayout struct {
	Size int // total header size in bytes

	EntryCountOffset int
	EntryCountWidth  int

	TableOffsetOffset int
	TableOffsetWidth  int

	TotalLengthOffset int
	TotalLengthWidth  int
}

// RecordLayout describes one fixed-width entry-table record.
type RecordLayout struct {
	OffsetWidth   int // string offset field, signed
	LengthWidth   int // string length field, in code units
	ChecksumWidth int // 0 when the profile has no checksum
	Checksum      ChecksumKind

	// TableRelative addresses strings relative to the entry table
	// start instead of the file start.
	TableRelative bool
}

func (r *RecordLayout) size() int {
	return r.OffsetWidth + r.LengthWidth + r.ChecksumWidth
}

// Profile is the immutable per-title configuration consumed by the
// cipher and the codec. It is pure data: adding a title means adding a
// row to the profile table, not branching codec logic.
type Profile struct {
	Version  Version
	Cipher   CipherParams
	Header   HeaderLayout
	Record   RecordLayout
	Encoding TextEncoding

	// RemapPrivateUse translates the titles' private-use glyph codes
	// to their Unicode equivalents on decode (and back on encode).
	RemapPrivateUse bool

	// Variables maps control-variable codes to readable names for the
	// [VAR ...] token grammar. Single-rune names double as special
	// characters that are inlined directly into entry text.
	Variables map[uint16]string

	names map[string]uint16 // reverse of Variables, built by Lookup
}

func (p *Profile) unitSize() int {
	if p.Encoding == EncodingUTF16 {
		return 2
	}
	return 1
}

// variableName returns the readable name for a control code, falling
// back to its 4-digit hex form.
func (p *Profile) variableName(code uint16) string {
	if name, ok := p.Variables[code]; ok {
		return name
	}
	return fmt.Sprintf("%04X", code)
}

// specialChar reports whether a code is mapped to a single printable
// rune (e.g. the Pokédollar sign) that is inlined into decoded text.
func (p *Profile) specialChar(code uint16) (string, bool) {
	name, ok := p.Variables[code]
	if !ok || utf8.RuneCountInString(name) != 1 {
		return "", false
	}
	r, _ := utf8.DecodeRuneInString(name)
	if r < 0x80 {
		return "", false
	}
	return name, true
}

// variableNumber resolves a variable name back to its code. Names not
// in the table are accepted as 4-digit hex, with or without a 0x
// prefix, so unmapped codes survive a decode/encode round trip.
func (p *Profile) variableNumber(name string) (uint16, error) {
	if code, ok := p.names[name]; ok {
		return code, nil
	}
	s := name
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	code, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid variable %q", ErrBadToken, name)
	}
	return uint16(code), nil
}

// remapOut translates a stored code unit to its Unicode equivalent.
func (p *Profile) remapOut(u uint16) uint16 {
	if !p.RemapPrivateUse {
		return u
	}
	if r, ok := remapChars[u]; ok {
		return r
	}
	return u
}

// remapIn translates a Unicode rune back to the stored private-use code.
func (p *Profile) remapIn(r rune) rune {
	if !p.RemapPrivateUse || r > 0xFFFF {
		return r
	}
	if u, ok := remapCharsBack[uint16(r)]; ok {
		return rune(u)
	}
	return r
}

// Private-use glyph codes and their Unicode equivalents.
var remapChars = map[uint16]uint16{
	0xE07F: 0x202F, // narrow no-break space
	0xE08D: 0x2026, // horizontal ellipsis
	0xE08E: 0x2642, // male sign
	0xE08F: 0x2640, // female sign
}

var remapCharsBack = func() map[uint16]uint16 {
	m := make(map[uint16]uint16, len(remapChars))
	for k, v := range remapChars {
		m[v] = k
	}
	return m
}()

// switchHeader is the header layout shared by the Switch-era titles:
// 16 bytes, entry count at 0x02, total length at 0x04, entry-table
// offset at 0x0C.
var switchHeader = HeaderLayout{
	Size:              16,
	EntryCountOffset:  0x02,
	EntryCountWidth:   2,
	TotalLengthOffset: 0x04,
	TotalLengthWidth:  4,
	TableOffsetOffset: 0x0C,
	TableOffsetWidth:  4,
}

var profiles = map[Version]*Profile{
	VersionLGPE: {
		Version: VersionLGPE,
		Cipher:  CipherParams{Kind: CipherXorRotate, Seed: 0x7C89},
		Header:  switchHeader,
		Record: RecordLayout{
			OffsetWidth:   4,
			LengthWidth:   2,
			TableRelative: true,
		},
		Encoding:  EncodingUTF16,
		Variables: lgpeVariables,
	},
	VersionSWSH: {
		Version: VersionSWSH,
		Cipher:  CipherParams{Kind: CipherXorRotate, Seed: 0x7C89},
		Header:  switchHeader,
		Record: RecordLayout{
			OffsetWidth:   4,
			LengthWidth:   2,
			ChecksumWidth: 4,
			Checksum:      ChecksumCRC32,
			TableRelative: true,
		},
		Encoding:  EncodingUTF16,
		Variables: swshVariables,
	},
	VersionLA: {
		Version: VersionLA,
		Cipher: CipherParams{
			Kind:      CipherXorBlock,
			Seed:      0x7C89,
			Advance:   0x2983,
			BlockSize: 256,
		},
		Header: switchHeader,
		Record: RecordLayout{
			OffsetWidth:   4,
			LengthWidth:   2,
			ChecksumWidth: 4,
			Checksum:      ChecksumAdler32,
			TableRelative: true,
		},
		Encoding:  EncodingUTF16,
		Variables: laVariables,
	},
	VersionSV: {
		Version: VersionSV,
		Cipher: CipherParams{
			Kind:      CipherXorBlock,
			Seed:      0x3A29,
			Advance:   0x2983,
			BlockSize: 512,
		},
		Header: switchHeader,
		Record: RecordLayout{
			OffsetWidth:   4,
			LengthWidth:   4,
			ChecksumWidth: 4,
			Checksum:      ChecksumCRC32,
			TableRelative: true,
		},
		Encoding:  EncodingUTF16,
		Variables: svVariables,
	},
	VersionLZA: {
		Version: VersionLZA,
		Cipher: CipherParams{
			Kind: CipherAddStream,
			Seed: 0x7C89,
			Mul:  0x41C64E6D,
			Inc:  0x6073,
		},
		Header: switchHeader,
		Record: RecordLayout{
			OffsetWidth:   4,
			LengthWidth:   2,
			TableRelative: true,
		},
		Encoding:  EncodingUTF16,
		Variables: lzaVariables,
	},
}

func init() {
	for _, p := range profiles {
		p.names = make(map[string]uint16, len(p.Variables))
		for code, name := range p.Variables {
			p.names[name] = code
		}
	}
}

// Lookup returns the profile for a supported game version.
func Lookup(v Version) (*Profile, error) {
	p, ok := profiles[v]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, v)
	}
	return p, nil
}

// Versions returns the supported game versions in a stable order.
func Versions() []Version {
	return []Version{VersionLGPE, VersionSWSH, VersionLA, VersionSV, VersionLZA}
}

var lgpeVariables = map[uint16]string{
	0xFF00: "COLOR",   // text color change
	0x0100: "TRNAME",  // trainer name
	0x0101: "POKNAME", // Pokémon name
	0x0102: "PKNICK",  // Pokémon nickname
	0x0103: "TYPE",
	0x0104: "SPECIES",
	0x0105: "LOCATION",
	0x0106: "ABILITY",
	0x0107: "MOVE",
	0x0108: "ITEM1",
	0x0109: "ITEM2",
	0x010B: "GERM00",  // variable German text
	0x010C: "PKMLVUP", // Pokémon name on level up
	0x010D: "EVSTAT",  // effort value stats
	0x010E: "TRCLASS", // trainer class
	0x0110: "GERM01",
	0x0112: "BAG",
	0x010A: "ITEMBAG",
	0x012D: "FORBIDDENCHAR",
	0x012E: "MISTERYCAP",
	0x01B0: "WBALLTYPE", // Weather Ball type
	0x01B1: "STPKM",     // Pokémon status in battle
	0x01C6: "STYLEITEM",
	0x01C9: "PGOTRAINER", // Pokémon GO player name
	0x01C8: "SUPPORT",
	0x01CA: "GIFT00",
	0x01CB: "GOPARKLOCAL",
	0x01CC: "GOPARKPKM",
	0x01CE: "PKMPKEVEE", // starter name (Pikachu or Eevee)
	0x01CD: "RIVALNAME",
	0x019E: "FR|GER|SPA", // shared French/German/Spanish variable
	0x1000: "NUM0",
	0x1001: "NUM10",
	0x1002: "FRAITA", // French/Italian variable
	0x1100: "GENDBR", // gender-based pronoun
	0x1101: "ITEMPLUR1",
	0x1102: "FRAITA01",
	0x1104: "GARTFR", // gendered French article
	0x1302: "INDEF_ART",
	0x1303: "AMOUNT",
	0x1400: "ARTFRA",
	0x1401: "DARTFRA",
	0x1402: "INARTFRA",
	0x1403: "VARFRA00",
	0x1404: "VARFRA01",
	0x1406: "VARFRA02",
	0x1408: "VARFRA03",
	0x140A: "VARFRA04",
	0x1500: "VARITA00",
	0x1501: "VARITA01",
	0x1502: "VARITA02",
	0x1503: "VARITA03",
	0x1504: "VARITA04",
	0x1506: "VARITA05",
	0x1508: "VARITA06",
	0x150A: "VARITA07",
	0x1603: "VARGER00",
	0x1606: "VARGER01",
	0x1700: "VARESP00",
	0x1701: "VARESP01",
	0x1702: "VARESP02",
	0x1704: "VARESP03",
	0x1706: "VARESP04",
	0x1708: "VARESP05",
	0x1709: "VARESP06",
	0x1900: "VARKOR00",
	0x0200: "NUM1",
	0x0201: "NUM2",
	0x0202: "NUM3",
	0x0203: "NUM4",
	0x0204: "NUM5",
	0x0205: "NUM6",
	0x0206: "NUM7",
	0x0207: "NUM8",
	0x0208: "NUM9",
	0x0189: "UNKNOWNPOKEMON", // unseen Pokémon placeholder
	0xBD03: "SYMBOL",
	0xBD04: "BTLTPFX", // battle type prefix
	0xBD06: "BTEFECT", // super-effective marker
	0xBE05: "SFX",

	0xE300: "₽", // Pokédollar
}

var swshVariables = map[uint16]string{
	0xFF00: "COLOR",
}

var laVariables = map[uint16]string{
	0xFF00: "COLOR",
}

var svVariables = map[uint16]string{
	0xFF00: "COLOR",
}

var lzaVariables = map[uint16]string{
	0xFF00: "COLOR",
	0x0100: "TRNAME",
	0x0101: "POKNAME",
	0x0102: "PKNICK",
	0x0103: "TYPE",
	0x0104: "SPECIES",
	0x0105: "LOCATION",
	0x0106: "ABILITY",
	0x0107: "MOVE",
	0x0108: "ITEM1",
	0x0109: "ITEM2",
	0xE300: "₽",
	0x1100: "GENDBR",
}
