package pretty

import (
	"fmt"

	"github.com/joshyorko/wrangler-opencode/common"
)

func Ok() {
	common.Log("%sOK.%s", Green, Reset)
}

func Note(format string, rest ...interface{}) {
	niceform := fmt.Sprintf("%s%sNote: %s%s", Cyan, Bold, format, Reset)
	common.Log(niceform, rest...)
}

func Warning(format string, rest ...interface{}) {
	niceform := fmt.Sprintf("%sWarning: %s%s", Yellow, format, Reset)
	common.Log(niceform, rest...)
}

func Highlight(format string, rest ...interface{}) {
	niceform := fmt.Sprintf("%s%s%s", Bold, format, Reset)
	common.Log(niceform, rest...)
}

// Exit raises common.ExitCode; ExitProtection in main turns it into os.Exit.
func Exit(code int, format string, rest ...interface{}) {
	var message string
	if len(format) > 0 {
		message = fmt.Sprintf(format, rest...)
		if code != 0 {
			message = fmt.Sprintf("%s%s%s", Red, message, Reset)
		}
	}
	panic(common.ExitCode{
		Code:    code,
		Message: message,
	})
}

func Guard(truth bool, code int, format string, rest ...interface{}) {
	if !truth {
		Exit(code, format, rest...)
	}
}
