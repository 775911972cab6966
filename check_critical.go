package pnginspect

// type colorTypeInfo {{{

type colorTypeInfo struct {
	name      string
	bitDepths []byte
	channels  []string
}

var gColorTypes = map[byte]colorTypeInfo{
	0: {"Grayscale", []byte{1, 2, 4, 8, 16}, []string{"White"}},
	2: {"RGB", []byte{8, 16}, []string{"Red", "Green", "Blue"}},
	3: {"Palette", []byte{1, 2, 4, 8}, []string{"Red", "Green", "Blue"}},
	4: {"Grayscale+Alpha", []byte{8, 16}, []string{"White", "Alpha"}},
	6: {"RGBA", []byte{8, 16}, []string{"Red", "Green", "Blue", "Alpha"}},
}

func (info colorTypeInfo) allowsBitDepth(depth byte) bool {
	for _, d := range info.bitDepths {
		if d == depth {
			return true
		}
	}
	return false
}

// }}}

const colorTypePalette = 3

var (
	gDeflateMethodNames   = map[byte]string{0: "DEFLATE"}
	gFilterMethodNames    = map[byte]string{0: "Adaptive"}
	gInterlaceMethodNames = map[byte]string{0: "None", 1: "Adam7"}
)

func checkIHDR(ck *checker) {
	if !ck.expectLength(ihdrLength) {
		return
	}
	ihdr := parseIHDR(ck.data())

	ck.nb.innerf("Width: %d pixels", ihdr.Width)
	if ihdr.Width == 0 || ihdr.Width > MaxDataLength {
		ck.nb.problem("Width out of range")
	}
	ck.nb.innerf("Height: %d pixels", ihdr.Height)
	if ihdr.Height == 0 || ihdr.Height > MaxDataLength {
		ck.nb.problem("Height out of range")
	}

	per := "channel"
	if ihdr.ColorType == colorTypePalette {
		per = "pixel"
	}
	ck.nb.innerf("Bit depth: %d bits per %s", ihdr.BitDepth, per)

	info, known := gColorTypes[ihdr.ColorType]
	name := "Unknown"
	if known {
		name = info.name
	}
	ck.nb.innerf("Color type: %s (%d)", name, ihdr.ColorType)
	switch {
	case !known:
		ck.nb.problem("Unknown color type")
	case !info.allowsBitDepth(ihdr.BitDepth):
		ck.nb.problem("Invalid bit depth")
	}

	ck.enumField("Compression method", ihdr.Compression, gDeflateMethodNames, "Unknown compression method")
	ck.enumField("Filter method", ihdr.Filter, gFilterMethodNames, "Unknown filter method")
	ck.enumField("Interlace method", ihdr.Interlace, gInterlaceMethodNames, "Unknown interlace method")
}

func checkPLTE(ck *checker) {
	ck.mustBeBefore("bKGD", "hIST", "tRNS", "IDAT")
	if len(ck.data())%3 != 0 {
		ck.nb.problem("Invalid data length")
		return
	}
	numEntries := len(ck.data()) / 3
	ck.nb.innerf("Number of entries: %d", numEntries)
	if numEntries == 0 {
		ck.nb.problem("Empty palette")
	}

	ihdr, ok := validIHDR(ck.earlier)
	if !ok {
		return
	}
	if ihdr.ColorType == 0 || ihdr.ColorType == 4 {
		ck.nb.problem("Palette disallowed for grayscale color type")
	}
	if ihdr.ColorType == colorTypePalette && numEntries > 1<<ihdr.BitDepth {
		ck.nb.problem("Number of palette entries exceeds bit depth")
	}
}

func checkIDAT(ck *checker) {
	n := len(ck.earlier)
	if n > 0 && !ck.earlier[n-1].IsType("IDAT") && ck.hasEarlier("IDAT") {
		ck.nb.problem("Non-consecutive IDAT chunk")
	}
}

func checkIEND(ck *checker) {
	if len(ck.data()) != 0 {
		ck.nb.problem("Non-empty data")
	}
}

func checkNothing(ck *checker) {}
