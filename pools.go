package pnginspect

import (
	"strings"
	"sync"

	"github.com/chronos-tachyon/assert"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var sbPool = sync.Pool{
	New: func() interface{} {
		sb := new(strings.Builder)
		sb.Grow(256)
		return sb
	},
}

func takeStringsBuilder() *strings.Builder {
	return sbPool.Get().(*strings.Builder)
}

func giveStringsBuilder(sb *strings.Builder) {
	assert.NotNil(&sb)
	sb.Reset()
	sbPool.Put(sb)
}

var printerPool = sync.Pool{
	New: func() interface{} {
		return message.NewPrinter(language.English)
	},
}

func takePrinter() *message.Printer {
	return printerPool.Get().(*message.Printer)
}

func givePrinter(p *message.Printer) {
	assert.NotNil(&p)
	printerPool.Put(p)
}

// groupDigits renders n with thousands separators, e.g. "1,234,567".
func groupDigits(n uint64) string {
	p := takePrinter()
	defer givePrinter(p)
	return p.Sprintf("%d", n)
}
