package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"

	arcanum "github.com/arcanum-sdk/client-go"
)

var (
	// Color definitions.
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warningColor = color.New(color.FgYellow)
	boldColor    = color.New(color.Bold)
	dimColor     = color.New(color.Faint)
)

// Success prints a success message in green.
func Success(w io.Writer, format string, a ...any) {
	successColor.Fprintf(w, "✓ "+format+"\n", a...)
}

// Error prints an error message in red.
func Error(w io.Writer, format string, a ...any) {
	errorColor.Fprintf(w, "✗ "+format+"\n", a...)
}

// Warning prints a warning message in yellow.
func Warning(w io.Writer, format string, a ...any) {
	warningColor.Fprintf(w, "⚠ "+format+"\n", a...)
}

// Dim returns text in faint style.
func Dim(format string, a ...any) string {
	return dimColor.Sprintf(format, a...)
}

// PrintKeyValue prints a key-value pair with the key highlighted.
func PrintKeyValue(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s: %s\n", boldColor.Sprint(key), value)
}

// newTable returns a tabwriter with a bold header row already written.
func newTable(w io.Writer, columns ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, col := range columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, boldColor.Sprint(col))
	}
	fmt.Fprintln(tw)
	return tw
}

// printJSON writes v indented.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPayload prints an untyped response. Objects are printed as sorted
// key/value pairs unless JSON output is requested.
func (c *cli) printPayload(p arcanum.Payload, done string) error {
	if c.jsonOutput {
		return printJSON(c.out, p)
	}
	obj, ok := p.(map[string]any)
	if !ok {
		return printJSON(c.out, p)
	}
	if len(obj) == 0 {
		Success(c.out, "%s", done)
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		PrintKeyValue(c.out, k, fmt.Sprint(obj[k]))
	}
	return nil
}

// reportError prints err with its kind and, for rate limits, when to retry.
func reportError(w io.Writer, err error) {
	var invalid *arcanum.InvalidArgumentError
	if errors.As(err, &invalid) {
		Error(w, "invalid argument: %s", err)
		return
	}

	kind := arcanum.KindOf(err)
	if kind == arcanum.KindNone {
		Error(w, "%s", err)
		return
	}
	Error(w, "%s error: %s", kind, err)

	var rl *arcanum.RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter != nil {
		Warning(w, "retry after %d seconds", *rl.RetryAfter)
	}
}
