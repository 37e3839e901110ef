package loader

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Write serializes d in the format Parse reads. Transitions keep their
// insertion order.
func Write(w io.Writer, d *Description) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strconv.Itoa(int(d.Start)))
	bw.WriteByte('\n')
	for _, tr := range d.Table.Transitions() {
		bw.WriteString(tr.String())
		bw.WriteByte('\n')
	}
	bw.WriteString(terminator)
	bw.WriteByte('\n')
	bw.WriteString(d.Word)
	bw.WriteByte('\n')
	return bw.Flush()
}

func Format(d *Description) string {
	var sb strings.Builder
	_ = Write(&sb, d)
	return sb.String()
}
