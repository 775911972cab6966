package pnginspect

// colorSamples annotates the 16-bit samples shared by bKGD and tRNS for
// the non-palette color types: one gray sample, or three RGB samples.
func (ck *checker) colorSamples(ihdr ihdrInfo, gray bool) {
	p := ck.data()
	if gray {
		if !ck.expectLength(2) {
			return
		}
		ck.nb.innerf("White: %d", readUint16(p, 0))
	} else {
		if !ck.expectLength(6) {
			return
		}
		ck.nb.innerf("Red: %d", readUint16(p, 0))
		ck.nb.innerf("Green: %d", readUint16(p, 2))
		ck.nb.innerf("Blue: %d", readUint16(p, 4))
	}
	for i := 0; i+1 < len(p); i += 2 {
		if sampleOutOfRange(readUint16(p, i), ihdr.BitDepth) {
			ck.nb.problem("Color value out of range")
		}
	}
}

func sampleOutOfRange(value uint16, bitDepth byte) bool {
	return bitDepth < 16 && uint32(value) >= uint32(1)<<bitDepth
}

func checkBKGD(ck *checker) {
	ck.mustBeBefore("IDAT")
	ihdr, ok := validIHDR(ck.earlier)
	if !ok {
		return
	}
	switch ihdr.ColorType {
	case colorTypePalette:
		if !ck.expectLength(1) {
			return
		}
		index := ck.data()[0]
		ck.nb.innerf("Palette index: %d", index)
		if entries, ok := validPLTEEntries(ck.earlier); ok && int(index) >= entries {
			ck.nb.problem("Color index out of range")
		}
	case 0, 4:
		ck.colorSamples(ihdr, true)
	case 2, 6:
		ck.colorSamples(ihdr, false)
	}
}

func checkTRNS(ck *checker) {
	ck.mustBeBefore("IDAT")
	ihdr, ok := validIHDR(ck.earlier)
	if !ok {
		return
	}
	switch ihdr.ColorType {
	case 4:
		ck.nb.problem("Transparency chunk disallowed for gray+alpha color type")
	case 6:
		ck.nb.problem("Transparency chunk disallowed for RGBA color type")
	case colorTypePalette:
		numEntries := len(ck.data())
		ck.nb.innerf("Number of entries: %d", numEntries)
		if entries, ok := validPLTEEntries(ck.earlier); ok && numEntries > entries {
			ck.nb.problem("Number of alpha values exceeds palette size")
		}
	case 0:
		ck.colorSamples(ihdr, true)
	case 2:
		ck.colorSamples(ihdr, false)
	}
}

func checkCHRM(ck *checker) {
	ck.mustBeBefore("PLTE", "IDAT")
	if !ck.expectLength(32) {
		return
	}
	offset := 0
	for _, item := range []string{"White point", "Red", "Green", "Blue"} {
		for _, axis := range []string{"x", "y"} {
			ck.nb.innerf("%s %s: %s", item, axis, fixedPoint(readUint32(ck.data(), offset), 5))
			offset += 4
		}
	}
}

func checkGAMA(ck *checker) {
	ck.mustBeBefore("PLTE", "IDAT")
	if !ck.expectLength(4) {
		return
	}
	ck.nb.inner("Gamma: " + fixedPoint(readUint32(ck.data(), 0), 5))
}

func checkHIST(ck *checker) {
	ck.mustBeBefore("IDAT")
	if !ck.hasEarlier("PLTE") {
		ck.nb.problem("Chunk requires earlier PLTE chunk")
	}
	if len(ck.data())%2 != 0 {
		ck.nb.problem("Invalid data length")
		return
	}
	numEntries := len(ck.data()) / 2
	ck.nb.innerf("Number of entries: %d", numEntries)
	if entries, ok := validPLTEEntries(ck.earlier); ok && numEntries != entries {
		ck.nb.problem("Invalid data length")
	}
}

func checkICCP(ck *checker) {
	ck.mustBeBefore("PLTE", "IDAT")
	if ck.hasEarlier("sRGB") {
		ck.nb.problem("Chunk should not exist because sRGB chunk exists")
	}
}

var gRenderingIntentNames = map[byte]string{
	0: "Perceptual",
	1: "Relative colorimetric",
	2: "Saturation",
	3: "Absolute colorimetric",
}

func checkSRGB(ck *checker) {
	ck.mustBeBefore("PLTE", "IDAT")
	if ck.hasEarlier("iCCP") {
		ck.nb.problem("Chunk should not exist because iCCP chunk exists")
	}
	if !ck.expectLength(1) {
		return
	}
	ck.enumField("Rendering intent", ck.data()[0], gRenderingIntentNames, "Unknown rendering intent")
}

func checkSBIT(ck *checker) {
	ck.mustBeBefore("PLTE", "IDAT")
	ihdr, ok := validIHDR(ck.earlier)
	if !ok {
		return
	}
	info, known := gColorTypes[ihdr.ColorType]
	if !known {
		return
	}
	maxBits := ihdr.BitDepth
	if ihdr.ColorType == colorTypePalette {
		maxBits = 8
	}
	if !ck.expectLength(len(info.channels)) {
		return
	}
	reported := false
	for i, channel := range info.channels {
		bits := ck.data()[i]
		ck.nb.innerf("%s bits: %d", channel, bits)
		if !reported && (bits < 1 || bits > maxBits) {
			ck.nb.problem("Bit depth out of range")
			reported = true
		}
	}
}
