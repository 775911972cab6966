// Package pnginspect decodes and annotates every byte of a PNG file.
//
// Inspect splits a file into FileParts (the signature, each chunk, and any
// unparseable remainder) and attaches three kinds of Notes to each:
// structural framing, decoded field values, and errors.  Malformed files
// are never rejected outright; framing resynchronizes on bad length
// fields and every violation becomes an error note.
package pnginspect

import (
	"encoding/binary"

	"github.com/chronos-tachyon/assert"
	"github.com/chronos-tachyon/pnginspect/inflate"
	"github.com/chronos-tachyon/pnginspect/internal/crc32"
	"github.com/chronos-tachyon/pnginspect/internal/cursor"
	"github.com/chronos-tachyon/pnginspect/internal/text"
)

// Inspect parses and validates the PNG file p.  The returned parts cover
// p exactly, in order.  Inspect does not retain p beyond the parts'
// subslices of it, and is safe to call from multiple goroutines.
func Inspect(p []byte, opts ...Option) Result {
	var o options
	o.reset()
	o.apply(opts)

	insp := &inspector{input: p, opts: &o}
	insp.sendEvent(Event{Type: InspectBeginEvent, Length: len(p)})
	insp.run()

	result := Result{Parts: insp.parts}
	insp.sendEvent(Event{
		Type:      InspectEndEvent,
		Length:    len(p),
		NumErrors: result.NumErrors(),
	})
	return result
}

type inspector struct {
	input []byte
	opts  *options
	parts []FilePart
}

func (insp *inspector) run() {
	c := cursor.New(insp.input)

	sig, _ := c.Take(len(Signature))
	sigPart := signaturePart(sig)
	insp.parts = append(insp.parts, sigPart)
	insp.sendPartEvent(SignatureEvent, &sigPart)

	if sigPart.Notes.HasErrors() {
		if !c.IsEmpty() {
			offset := c.Offset()
			var nb noteBuilder
			nb.problem("Unknown format")
			insp.parts = append(insp.parts, unknownPart(offset, c.TakeRest(), nb.build()))
		}
		return
	}

	for !c.IsEmpty() {
		span := c.Len()
		if length, ok := c.PeekUint32(binary.BigEndian); ok {
			if uint64(length) <= MaxDataLength && uint64(length)+chunkOverhead <= uint64(span) {
				span = int(length) + chunkOverhead
			}
		}
		offset := c.Offset()
		p, _ := c.Take(span)
		part := chunkPart(offset, p)
		insp.parts = append(insp.parts, part)
		insp.sendPartEvent(ChunkFramedEvent, &insp.parts[len(insp.parts)-1])
	}
	assert.Assertf(c.Offset() == len(insp.input), "consumed %d bytes of %d", c.Offset(), len(insp.input))

	insp.checkChunks()
	insp.pairSignatures()
	insp.checkFile(c.Offset())
}

// checkChunks applies the ordering rules and the type-specific validators
// to every chunk, left to right.
func (insp *inspector) checkChunks() {
	earlier := make([]*Chunk, 0, len(insp.parts))
	seen := make(map[string]struct{}, len(insp.parts))
	for index := range insp.parts {
		part := &insp.parts[index]
		if part.Kind != ChunkPart {
			continue
		}
		chunk := part.Chunk
		code := chunk.TypeName
		_, hasIHDR := seen["IHDR"]
		_, hasIEND := seen["IEND"]
		_, hasSame := seen[code]

		var nb noteBuilder
		if code != "IHDR" && code != "" && !hasIHDR {
			nb.problem("Chunk must be after IHDR chunk")
		}
		if code != "IEND" && code != "" && hasIEND {
			nb.problem("Chunk must be before IEND chunk")
		}
		if chunk.Type.IsKnown() && !chunk.Type.AllowsMultiple() && hasSame {
			nb.problem("Multiple chunks of this type disallowed")
		}

		stages := []Notes{nb.build()}
		if chunk.IsDataComplete {
			if info := chunk.Type.info(); info != nil {
				ck := &checker{chunk: chunk, earlier: earlier, opts: insp.opts}
				info.check(ck)
				stages = append(stages, ck.build())
			}
		}
		part.Notes = part.Notes.Merge(stages...)
		insp.sendPartEvent(ChunkCheckedEvent, part)

		earlier = append(earlier, chunk)
		seen[code] = struct{}{}
	}
}

// pairSignatures matches dSIG chunks from both ends inward, between the
// first IHDR chunk and the first IEND chunk.
func (insp *inspector) pairSignatures() {
	parts := insp.parts
	isType := func(index int, code string) bool {
		return parts[index].Kind == ChunkPart && parts[index].Chunk.IsType(code)
	}
	findFirst := func(code string) int {
		for index := range parts {
			if isType(index, code) {
				return index
			}
		}
		return -1
	}

	notes := make(map[int]*noteBuilder)
	builder := func(index int) *noteBuilder {
		nb := notes[index]
		if nb == nil {
			nb = new(noteBuilder)
			notes[index] = nb
		}
		return nb
	}
	paired := make(map[int]struct{})

	ihdrIndex := findFirst("IHDR")
	iendIndex := findFirst("IEND")
	if ihdrIndex >= 0 && iendIndex >= 0 {
		start := ihdrIndex + 1
		end := iendIndex - 1
		for ; start < end && isType(start, "dSIG") && isType(end, "dSIG"); start, end = start+1, end-1 {
			builder(start).inner("Introductory")
			builder(end).inner("Terminating")
			paired[start] = struct{}{}
			paired[end] = struct{}{}
		}
		for ; start < end && isType(start, "dSIG"); start++ {
			nb := builder(start)
			nb.inner("Introductory")
			nb.problem("Missing corresponding terminating dSIG chunk")
		}
		for ; start < end && isType(end, "dSIG"); end-- {
			nb := builder(end)
			nb.inner("Terminating")
			nb.problem("Missing corresponding introductory dSIG chunk")
		}
	}

	for index := range parts {
		if !isType(index, "dSIG") {
			continue
		}
		nb := builder(index)
		if _, found := paired[index]; !found {
			nb.problem("Chunk must be consecutively after IHDR chunk or consecutively before IEND chunk")
		}
		parts[index].Notes = parts[index].Notes.Merge(nb.build())
	}
}

// checkFile appends a zero-length part holding whole-file problems, if
// there are any.
func (insp *inspector) checkFile(offset int) {
	chunks := make([]*Chunk, 0, len(insp.parts))
	seen := make(map[string]struct{}, len(insp.parts))
	for _, part := range insp.parts {
		if part.Kind == ChunkPart {
			chunks = append(chunks, part.Chunk)
			seen[part.Chunk.TypeName] = struct{}{}
		}
	}
	has := func(code string) bool {
		_, found := seen[code]
		return found
	}

	var nb noteBuilder
	if !has("IHDR") {
		nb.problem("Missing IHDR chunk")
	}
	if ihdr, ok := validIHDR(chunks); ok && ihdr.ColorType == colorTypePalette && !has("PLTE") {
		nb.problem("Missing PLTE chunk")
	}
	if !has("IDAT") {
		nb.problem("Missing IDAT chunk")
	}
	if !has("IEND") {
		nb.problem("Missing IEND chunk")
	}
	if nb.hasProblems() {
		insp.parts = append(insp.parts, unknownPart(offset, insp.input[offset:offset], nb.build()))
	}
}

func (insp *inspector) sendPartEvent(t EventType, part *FilePart) {
	event := Event{
		Type:      t,
		Offset:    part.Offset,
		Length:    len(part.Bytes),
		Kind:      part.Kind,
		NumErrors: len(part.Notes.Errors),
	}
	if part.Chunk != nil {
		event.ChunkType = part.Chunk.TypeName
	}
	insp.sendEvent(event)
}

func (insp *inspector) sendEvent(event Event) {
	for _, tr := range insp.opts.tracers {
		tr.OnEvent(event)
	}
}

// signaturePart describes the first min(8, len(file)) bytes.  Only the
// first problem is reported.
func signaturePart(p []byte) FilePart {
	var nb noteBuilder
	nb.outer("Special: File signature")
	nb.outerf("Length: %s bytes", groupDigits(uint64(len(p))))
	nb.inner("“" + text.Readable(p) + "”")
	for i := range Signature {
		if i >= len(p) {
			nb.problem("Premature EOF")
			break
		}
		if p[i] != Signature[i] {
			nb.problem("Value mismatch")
			break
		}
	}
	return FilePart{Kind: SignaturePart, Offset: 0, Bytes: p, Notes: nb.build()}
}

func unknownPart(offset int, p []byte, extra Notes) FilePart {
	var nb noteBuilder
	nb.outer("Special: Unknown")
	nb.outerf("Length: %s bytes", groupDigits(uint64(len(p))))
	return FilePart{Kind: UnknownPart, Offset: offset, Bytes: p, Notes: nb.build().Merge(extra)}
}

var gPropertyBits = [4][2]string{
	{"Critical (0)", "Ancillary (1)"},
	{"Public (0)", "Private (1)"},
	{"Reserved (0)", "Unknown (1)"},
	{"Unsafe to copy (0)", "Safe to copy (1)"},
}

// chunkPart decodes the framing of one chunk span.  The span is either
// exactly length+12 bytes, or everything left in the file.
func chunkPart(offset int, p []byte) FilePart {
	part := FilePart{Kind: ChunkPart, Offset: offset, Bytes: p, Chunk: new(Chunk)}
	chunk := part.Chunk

	var nb noteBuilder
	if len(p) < 4 {
		nb.outer("Data length: Unfinished")
		nb.problem("Premature EOF")
		part.Notes = nb.build()
		return part
	}
	chunk.Length = binary.BigEndian.Uint32(p[0:4])
	length := uint64(chunk.Length)
	nb.outerf("Data length: %s bytes", groupDigits(length))
	inRange := length <= MaxDataLength
	complete := uint64(len(p)) >= length+chunkOverhead
	switch {
	case !inRange:
		nb.problem("Length out of range")
	case !complete:
		nb.problem("Premature EOF")
	}

	if len(p) < 8 {
		chunk.TypeCode = p[4:]
		nb.outer("Type: Unfinished")
		part.Notes = nb.build()
		return part
	}
	typeCode := p[4:8]
	chunk.TypeCode = typeCode
	chunk.TypeName = text.Readable(typeCode)
	chunk.Type, _ = LookupChunkType(chunk.TypeName)
	nb.outer("Type: " + chunk.TypeName)
	if !isAlphabetic(typeCode) {
		nb.problem("Type contains non-alphabetic characters")
	}
	nb.outer("Name: " + chunk.Type.Description())
	for i, labels := range gPropertyBits {
		nb.outer(labels[(typeCode[i]>>5)&1])
	}

	if !inRange {
		part.Notes = nb.build()
		return part
	}
	if complete {
		crcStart := len(p) - crc32.Size
		chunk.StoredCRC = binary.BigEndian.Uint32(p[crcStart:])
		chunk.ComputedCRC = crc32.ChunkChecksum(p[4:8], p[8:crcStart])
		chunk.HasCRC = true
		chunk.CRCValid = chunk.StoredCRC == chunk.ComputedCRC
		nb.outerf("CRC-32: %s", inflate.Checksum32(chunk.StoredCRC).Hex())
		if !chunk.CRCValid {
			nb.problemf("CRC-32 mismatch (calculated from data: %s)", inflate.Checksum32(chunk.ComputedCRC).Hex())
		}
	} else {
		nb.outer("CRC-32: Unfinished")
	}

	dataEnd := uint64(len(p))
	if 8+length <= dataEnd {
		chunk.IsDataComplete = true
		dataEnd = 8 + length
	}
	chunk.Data = p[8:dataEnd]
	part.Notes = nb.build()
	return part
}

func isAlphabetic(p []byte) bool {
	for _, ch := range p {
		if !((ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')) {
			return false
		}
	}
	return len(p) == 4
}
