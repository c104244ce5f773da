package wizard

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/pretty"
)

const (
	UNIX_NEWLINE    = "\n"
	WINDOWS_NEWLINE = "\r\n"

	newline = '\n'
)

var stdin io.Reader = os.Stdin

type Validator func(string) bool

func memberValidation(members []string, erratic string) Validator {
	return func(input string) bool {
		for _, member := range members {
			if input == member {
				return true
			}
		}
		common.Stdout("%s%s%s\n\n", pretty.Red, erratic, pretty.Reset)
		return false
	}
}

func ask(question, defaults string, validator Validator) (string, error) {
	source := bufio.NewReader(stdin)
	for {
		common.Stdout("%s? %s%s %s[%s]:%s ", pretty.Green, pretty.White, question, pretty.Grey, defaults, pretty.Reset)
		reply, err := source.ReadString(newline)
		common.Stdout("\n")
		if err != nil {
			return "", err
		}
		if reply == UNIX_NEWLINE || reply == WINDOWS_NEWLINE {
			reply = defaults
		}
		reply = strings.TrimSpace(reply)
		if !validator(reply) {
			continue
		}
		return reply, nil
	}
}

// ValidateSelection returns a validator for list selection that accepts either
// the option value or a 1-based index number. On invalid input, it shows all
// available options with their corresponding numbers.
func ValidateSelection(options []string) Validator {
	return func(input string) bool {
		if selected(options, input) >= 0 {
			return true
		}
		var listing strings.Builder
		for index, option := range options {
			if index > 0 {
				listing.WriteString(", ")
			}
			listing.WriteString(fmt.Sprintf("%d) %s", index+1, option))
		}
		common.Stdout("%sInvalid selection. Choose from: %s%s\n\n", pretty.Red, listing.String(), pretty.Reset)
		return false
	}
}

func selected(options []string, input string) int {
	for index, option := range options {
		if input == option {
			return index
		}
	}
	var index int
	if _, err := fmt.Sscanf(input, "%d", &index); err == nil {
		if index >= 1 && index <= len(options) {
			return index - 1
		}
	}
	return -1
}

// ShowOptions displays a numbered list of options before prompting the user.
func ShowOptions(options []string) {
	for index, option := range options {
		common.Stdout("  %d) %s\n", index+1, option)
	}
}

// Choose asks for one of options, by value or by number.
func Choose(question string, options []string, defaults string) (string, error) {
	if !pretty.Interactive {
		return "", ErrConfirmationRequired
	}
	ShowOptions(options)
	reply, err := ask(question, defaults, ValidateSelection(options))
	if err != nil {
		return "", err
	}
	return options[selected(options, reply)], nil
}
