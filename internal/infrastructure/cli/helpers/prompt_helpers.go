package helpers

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm asks a yes/no question. An empty answer or EOF counts as no.
func Confirm(out io.Writer, reader *bufio.Reader, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)

	line, _ := reader.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// ConfirmAuditClear asks before every record in the journal at path is dropped.
func ConfirmAuditClear(out io.Writer, reader *bufio.Reader, path string, count int) bool {
	noun := "records"
	if count == 1 {
		noun = "record"
	}
	return Confirm(out, reader, fmt.Sprintf("Delete %s audit %s from %s?", FormatCount(count), noun, path))
}
