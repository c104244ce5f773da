package wizard

import (
	"bufio"
	"errors"
	"strings"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/pretty"
	"github.com/spf13/cobra"
)

var ErrConfirmationRequired = errors.New("confirmation required: use --yes flag in non-interactive mode")

// Plan is the thing being confirmed, shown above the question.
type Plan struct {
	Title string
	Lines []string
}

func (it Plan) show() {
	if len(it.Lines) == 0 {
		return
	}
	common.Stdout("%s\n\n", pretty.Box(it.Title, it.Lines...))
}

type prompter func(question string) (bool, error)

func confirmation(question string, plan Plan, force bool, prompt prompter) (bool, error) {
	if force {
		common.Debug("Confirmation %q given by flag.", question)
		return true, nil
	}
	if !pretty.Interactive {
		return false, ErrConfirmationRequired
	}
	plan.show()
	confirmed, err := prompt(question)
	if err != nil {
		return false, err
	}
	if !confirmed {
		common.Stdout("%sOperation cancelled.%s\n", pretty.Grey, pretty.Reset)
	}
	return confirmed, nil
}

func yesOrNo(question string) (bool, error) {
	reply, err := ask(question, "n", memberValidation([]string{"y", "Y", "n", "N"}, "Please answer 'y' or 'n'."))
	if err != nil {
		return false, err
	}
	return strings.EqualFold(reply, "y"), nil
}

func typedYes(question string) (bool, error) {
	source := bufio.NewReader(stdin)
	for {
		common.Stdout("%s? %s%s %s[type 'yes' to confirm]:%s ", pretty.Red, pretty.White, question, pretty.Grey, pretty.Reset)
		reply, err := source.ReadString(newline)
		common.Stdout("\n")
		if err != nil {
			return false, err
		}
		reply = strings.TrimSpace(reply)
		switch {
		case len(reply) == 0:
			return false, nil
		case strings.EqualFold(reply, "yes"):
			return true, nil
		}
		common.Stdout("%sPlease type 'yes' to confirm or press Enter to cancel.%s\n\n", pretty.Red, pretty.Reset)
	}
}

// Confirm shows plan and asks a y/n question where Enter means no. With
// force set nothing is shown or asked. Without a terminal it refuses with
// ErrConfirmationRequired.
func Confirm(question string, plan Plan, force bool) (bool, error) {
	return confirmation(question, plan, force, yesOrNo)
}

// ConfirmDangerous is Confirm for irreversible steps; only a typed "yes"
// confirms.
func ConfirmDangerous(question string, plan Plan, force bool) (bool, error) {
	return confirmation(question, plan, force, typedYes)
}

func AddYesFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVarP(target, "yes", "y", false, "Skip confirmation prompt")
}
