package codec

import (
	"strconv"
	"strings"
)

type frame struct {
	name  string
	index int // -1 unless the frame is an array element
}

// fieldPath tracks the nesting of the field being processed so errors can
// name it. The string is only built when an error is reported.
type fieldPath []frame

func (p *fieldPath) push(name string, index int) {
	*p = append(*p, frame{name: name, index: index})
}

func (p *fieldPath) pop() {
	*p = (*p)[:len(*p)-1]
}

func (p fieldPath) join(field string) string {
	var b strings.Builder
	for _, f := range p {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(f.name)
		if f.index >= 0 {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(f.index))
			b.WriteByte(']')
		}
	}
	if field != "" {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(field)
	}
	return b.String()
}
