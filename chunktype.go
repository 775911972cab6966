package pnginspect

import (
	"fmt"

	"github.com/chronos-tachyon/assert"
	"github.com/chronos-tachyon/enumhelper"
)

// ChunkType identifies a registered PNG chunk type.  The set is closed:
// every type code without a registry entry maps to UnknownChunk, which
// receives only the generic structural and ordering checks.
type ChunkType byte

const (
	UnknownChunk ChunkType = iota
	TypeBKGD
	TypeCHRM
	TypeDSIG
	TypeEXIF
	TypeFRAC
	TypeGAMA
	TypeGIFG
	TypeGIFT
	TypeGIFX
	TypeHIST
	TypeICCP
	TypeIDAT
	TypeIEND
	TypeIHDR
	TypeITXT
	TypeOFFS
	TypePCAL
	TypePHYS
	TypePLTE
	TypeSCAL
	TypeSBIT
	TypeSPLT
	TypeSRGB
	TypeSTER
	TypeTEXT
	TypeTIME
	TypeTRNS
	TypeZTXT
	numChunkTypes
)

var chunkTypeData = []enumhelper.EnumData{
	{GoName: "UnknownChunk", Name: "unknown"},
	{GoName: "TypeBKGD", Name: "bKGD"},
	{GoName: "TypeCHRM", Name: "cHRM"},
	{GoName: "TypeDSIG", Name: "dSIG"},
	{GoName: "TypeEXIF", Name: "eXIf"},
	{GoName: "TypeFRAC", Name: "fRAc"},
	{GoName: "TypeGAMA", Name: "gAMA"},
	{GoName: "TypeGIFG", Name: "gIFg"},
	{GoName: "TypeGIFT", Name: "gIFt"},
	{GoName: "TypeGIFX", Name: "gIFx"},
	{GoName: "TypeHIST", Name: "hIST"},
	{GoName: "TypeICCP", Name: "iCCP"},
	{GoName: "TypeIDAT", Name: "IDAT"},
	{GoName: "TypeIEND", Name: "IEND"},
	{GoName: "TypeIHDR", Name: "IHDR"},
	{GoName: "TypeITXT", Name: "iTXt"},
	{GoName: "TypeOFFS", Name: "oFFs"},
	{GoName: "TypePCAL", Name: "pCAL"},
	{GoName: "TypePHYS", Name: "pHYs"},
	{GoName: "TypePLTE", Name: "PLTE"},
	{GoName: "TypeSCAL", Name: "sCAL"},
	{GoName: "TypeSBIT", Name: "sBIT"},
	{GoName: "TypeSPLT", Name: "sPLT"},
	{GoName: "TypeSRGB", Name: "sRGB"},
	{GoName: "TypeSTER", Name: "sTER"},
	{GoName: "TypeTEXT", Name: "tEXt"},
	{GoName: "TypeTIME", Name: "tIME"},
	{GoName: "TypeTRNS", Name: "tRNS"},
	{GoName: "TypeZTXT", Name: "zTXt"},
}

// GoString returns the Go string representation of this ChunkType constant.
func (t ChunkType) GoString() string {
	return enumhelper.DereferenceEnumData("ChunkType", chunkTypeData, uint(t)).GoName
}

// String returns the 4-character type code, or "unknown".
func (t ChunkType) String() string {
	return enumhelper.DereferenceEnumData("ChunkType", chunkTypeData, uint(t)).Name
}

// MarshalJSON returns the JSON representation of this ChunkType constant.
func (t ChunkType) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("ChunkType", chunkTypeData, uint(t))
}

// Parse parses a 4-character type code.
func (t *ChunkType) Parse(str string) error {
	value, err := enumhelper.ParseEnum("ChunkType", chunkTypeData, str)
	*t = ChunkType(value)
	return err
}

// IsKnown returns true for every registered type.
func (t ChunkType) IsKnown() bool {
	return t > UnknownChunk && t < numChunkTypes
}

// Description returns the human-readable name of the type, or "Unknown".
func (t ChunkType) Description() string {
	if info := t.info(); info != nil {
		return info.description
	}
	return "Unknown"
}

// AllowsMultiple returns true if a file may hold more than one chunk of
// this type.  Unknown types are never restricted.
func (t ChunkType) AllowsMultiple() bool {
	if info := t.info(); info != nil {
		return info.multiple
	}
	return true
}

func (t ChunkType) info() *chunkTypeInfo {
	if !t.IsKnown() {
		return nil
	}
	return gChunkTypeInfo[t]
}

var _ fmt.GoStringer = ChunkType(0)
var _ fmt.Stringer = ChunkType(0)

// LookupChunkType returns the registered type for a 4-character code.
func LookupChunkType(code string) (ChunkType, bool) {
	t, found := gChunkTypeByCode[code]
	return t, found
}

// type chunkTypeInfo {{{

// checkFunc performs the type-specific validation of one chunk.
type checkFunc func(ck *checker)

type chunkTypeInfo struct {
	chunkType   ChunkType
	description string
	multiple    bool
	check       checkFunc
}

var (
	gChunkTypeInfo   [numChunkTypes]*chunkTypeInfo
	gChunkTypeByCode map[string]ChunkType
)

func init() {
	registerChunkTypes([]chunkTypeInfo{
		{TypeBKGD, "Background color", false, checkBKGD},
		{TypeCHRM, "Primary chromaticities", false, checkCHRM},
		{TypeDSIG, "Digital signature", true, checkNothing},
		{TypeEXIF, "Exchangeable Image File (Exif) Profile", false, checkNothing},
		{TypeFRAC, "Fractal image parameters", true, checkNothing},
		{TypeGAMA, "Image gamma", false, checkGAMA},
		{TypeGIFG, "GIF Graphic Control Extension", true, checkGIFG},
		{TypeGIFT, "GIF Plain Text Extension", true, checkGIFT},
		{TypeGIFX, "GIF Application Extension", true, checkGIFX},
		{TypeHIST, "Palette histogram", false, checkHIST},
		{TypeICCP, "Embedded ICC profile", false, checkICCP},
		{TypeIDAT, "Image data", true, checkIDAT},
		{TypeIEND, "Image trailer", false, checkIEND},
		{TypeIHDR, "Image header", false, checkIHDR},
		{TypeITXT, "International textual data", true, checkITXT},
		{TypeOFFS, "Image offset", false, checkOFFS},
		{TypePCAL, "Calibration of pixel values", false, checkPCAL},
		{TypePHYS, "Physical pixel dimensions", false, checkPHYS},
		{TypePLTE, "Palette", false, checkPLTE},
		{TypeSCAL, "Physical scale of image subject", false, checkSCAL},
		{TypeSBIT, "Significant bits", false, checkSBIT},
		{TypeSPLT, "Suggested palette", true, checkSPLT},
		{TypeSRGB, "Standard RGB color space", false, checkSRGB},
		{TypeSTER, "Indicator of Stereo Image", false, checkSTER},
		{TypeTEXT, "Textual data", true, checkTEXT},
		{TypeTIME, "Image last-modification time", false, checkTIME},
		{TypeTRNS, "Transparency", false, checkTRNS},
		{TypeZTXT, "Compressed textual data", true, checkZTXT},
	})
}

func registerChunkTypes(list []chunkTypeInfo) {
	gChunkTypeByCode = make(map[string]ChunkType, len(list))
	for index := range list {
		info := &list[index]
		assert.Assertf(info.chunkType.IsKnown(), "chunk type %d out of range", uint(info.chunkType))
		assert.Assertf(info.check != nil, "chunk type %#v has no validator", info.chunkType)

		code := info.chunkType.String()
		if _, found := gChunkTypeByCode[code]; found {
			panic(fmt.Errorf("duplicate registration for chunk type %q", code))
		}
		gChunkTypeByCode[code] = info.chunkType
		gChunkTypeInfo[info.chunkType] = info
	}
	for t := UnknownChunk + 1; t < numChunkTypes; t++ {
		assert.Assertf(gChunkTypeInfo[t] != nil, "chunk type %#v has no registration", t)
	}
}

// }}}
