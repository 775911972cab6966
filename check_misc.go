package pnginspect

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/chronos-tachyon/pnginspect/internal/text"
)

func checkGIFG(ck *checker) {
	if !ck.expectLength(4) {
		return
	}
	p := ck.data()
	ck.nb.innerf("Disposal method: %d", p[0])
	ck.nb.innerf("User input flag: %d", p[1])
	ck.nb.innerf("Delay time: %s s", fixedPoint(uint32(readUint16(p, 2)), 2))
}

func checkGIFT(ck *checker) {
	p := ck.data()
	if len(p) < 24 {
		ck.nb.problem("Invalid data length")
		return
	}
	fg := uint32(p[18])<<16 | uint32(p[19])<<8 | uint32(p[20])
	bg := uint32(p[21])<<16 | uint32(p[22])<<8 | uint32(p[23])
	ck.nb.inner("Deprecated")
	ck.nb.innerf("Text grid left position: %d", readInt32(p, 0))
	ck.nb.innerf("Text grid top position: %d", readInt32(p, 4))
	ck.nb.innerf("Text grid width: %d", readInt32(p, 8))
	ck.nb.innerf("Text grid height: %d", readInt32(p, 12))
	ck.nb.innerf("Character cell width: %d", p[16])
	ck.nb.innerf("Character cell height: %d", p[17])
	ck.nb.innerf("Text foreground color: #%02x", fg)
	ck.nb.innerf("Text background color: #%02x", bg)
	ck.nb.inner("Plain text data: " + text.Readable(p[24:]))
}

func checkGIFX(ck *checker) {
	p := ck.data()
	if len(p) < 11 {
		ck.nb.problem("Invalid data length")
		return
	}
	ck.nb.inner("Application identifier: " + text.Readable(p[0:8]))
	ck.nb.inner("Authentication code: " + hexWords(p[8:11]))
	ck.nb.inner("Application data: " + hexWords(p[11:]))
}

var gOffsetUnitNames = map[byte]string{0: "Pixel", 1: "Micrometre"}

func checkOFFS(ck *checker) {
	ck.mustBeBefore("IDAT")
	if !ck.expectLength(9) {
		return
	}
	p := ck.data()
	ck.nb.innerf("X position: %s units", signedString(readInt32(p, 0)))
	ck.nb.innerf("Y position: %s units", signedString(readInt32(p, 4)))
	ck.enumField("Unit specifier", p[8], gOffsetUnitNames, "Unknown unit specifier")
}

func checkPCAL(ck *checker) {
	ck.mustBeBefore("IDAT")
}

var gPhysUnitNames = map[byte]string{0: "Arbitrary (aspect ratio only)", 1: "Metre"}

const metresPerInch = 0.0254

func checkPHYS(ck *checker) {
	ck.mustBeBefore("IDAT")
	if !ck.expectLength(9) {
		return
	}
	p := ck.data()
	unit := p[8]
	for i, dir := range []string{"Horizontal", "Vertical"} {
		value := readUint32(p, 4*i)
		note := fmt.Sprintf("%s resolution: %d pixels per unit", dir, value)
		if unit == 1 {
			dpi := math.Round(float64(value) * metresPerInch)
			note += " (≈ " + strconv.FormatFloat(dpi, 'f', 0, 64) + " DPI)"
		}
		ck.nb.inner(note)
	}
	ck.enumField("Unit specifier", unit, gPhysUnitNames, "Unknown unit specifier")
}

var gScaleUnitNames = map[byte]string{0: "Metre", 1: "Radian"}

var (
	reASCIIFloat = regexp.MustCompile(`^([+-]?)(\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?$`)
	reNonZero    = regexp.MustCompile(`[1-9]`)
)

func checkSCAL(ck *checker) {
	ck.mustBeBefore("IDAT")
	p := ck.data()
	if len(p) == 0 {
		ck.nb.problem("Invalid data length")
		return
	}
	ck.enumField("Unit specifier", p[0], gScaleUnitNames, "Unknown unit specifier")

	width, height, found := splitNull(p[1:])
	ck.scaleValue(width, "width")
	if !found {
		ck.nb.problem("Missing null separator")
		return
	}
	ck.scaleValue(height, "height")
}

// scaleValue annotates one sCAL dimension, which must be a positive ASCII
// floating-point number.
func (ck *checker) scaleValue(raw []byte, axis string) {
	str := text.DecodeLatin1(raw)
	ck.nb.innerf("Pixel %s: %s units", axis, str)
	match := reASCIIFloat.FindStringSubmatch(str)
	switch {
	case match == nil:
		ck.nb.problemf("Invalid %s floating-point string", axis)
	case match[1] == "-" || !reNonZero.MatchString(match[2]):
		ck.nb.problemf("Non-positive %s", axis)
	}
}

var gStereoModeNames = map[byte]string{0: "Cross-fuse layout", 1: "Diverging-fuse layout"}

func checkSTER(ck *checker) {
	ck.mustBeBefore("IDAT")
	if !ck.expectLength(1) {
		return
	}
	ck.enumField("Mode", ck.data()[0], gStereoModeNames, "Unknown mode")
}

func checkTIME(ck *checker) {
	if !ck.expectLength(7) {
		return
	}
	p := ck.data()
	year := readUint16(p, 0)
	month, day, hour, minute, second := p[2], p[3], p[4], p[5], p[6]
	for _, field := range []struct {
		name  string
		value uint16
	}{
		{"Year", year},
		{"Month", uint16(month)},
		{"Day", uint16(day)},
		{"Hour", uint16(hour)},
		{"Minute", uint16(minute)},
		{"Second", uint16(second)},
	} {
		ck.nb.innerf("%s: %d", field.name, field.value)
	}

	monthValid := month >= 1 && month <= 12
	if !monthValid {
		ck.nb.problem("Invalid month")
	}
	if day < 1 || day > 31 || (monthValid && int(day) > daysIn(int(year), time.Month(month))) {
		ck.nb.problem("Invalid day")
	}
	if hour > 23 {
		ck.nb.problem("Invalid hour")
	}
	if minute > 59 {
		ck.nb.problem("Invalid minute")
	}
	if second > 60 {
		ck.nb.problem("Invalid second")
	}
}

// daysIn returns the number of days in the given month of the proleptic
// Gregorian calendar.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
