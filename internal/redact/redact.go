// Package redact strips details from error text before it is logged: file
// system paths of the ranking stores, database DSN parameters, SQL
// statements and stack traces.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	PathPlaceholder       = "[REDACTED_PATH]"
	DSNPlaceholder        = "[REDACTED_DSN]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	StackTracePlaceholder = "[STACK_TRACE_REDACTED]"
	LinePlaceholder       = "[REDACTED_LINE_NUMBER]"
	FileErrorPlaceholder  = "[REDACTED_FILE_ERROR]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules apply in order; earlier rules see the unredacted text.
var rules = []rule{
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), StackTracePlaceholder},
	{regexp.MustCompile(`\?_pragma=[^\s"']*`), DSNPlaceholder},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), PathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`), PathPlaceholder},
	{regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE|INDEX|VIEW)(?:[\s\w,*()='"]+)?`,
	), SQLPlaceholder},
	{regexp.MustCompile(`(?:at )?line ?\d+`), LinePlaceholder},
	{regexp.MustCompile(`(?i)(?:no such file|file not found|can't open|cannot open)`), FileErrorPlaceholder},
}

// String redacts sensitive fragments from input.
func String(input string) string {
	if input == "" {
		return input
	}
	for _, r := range rules {
		input = r.pattern.ReplaceAllString(input, r.placeholder)
	}
	return input
}

// Error redacts sensitive fragments from err's message.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
