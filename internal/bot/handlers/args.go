package handlers

import (
	"fmt"
	"strings"

	"github.com/edgard/bdaybot/internal/store"
)

// commandArgs returns the whitespace-separated arguments after the command
// keyword, with an optional @botname suffix on the keyword ignored.
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}

// parseAddArgs extracts the name and date from /add arguments. The date is
// the last token; everything before it is the (possibly multi-word) name.
func parseAddArgs(args []string) (name string, date store.Date, err error) {
	if len(args) < 2 {
		return "", store.Date{}, fmt.Errorf("expected a name followed by a date")
	}

	date, err = store.ParseDate(args[len(args)-1])
	if err != nil {
		return "", store.Date{}, err
	}

	name = strings.Join(args[:len(args)-1], " ")
	return name, date, nil
}

// parseDeleteArgs extracts the full name from /delete arguments.
func parseDeleteArgs(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("full name not provided")
	}
	return strings.Join(args, " "), nil
}
