// Package actions implements the command-level orchestration on top of the
// engine: result presentation, prompting, and the push/prune helpers.
package actions

import (
	"github.com/AlecAivazis/survey/v2"

	"stackit.dev/graft/internal/runtime"
)

// ConfirmPrompt returns a yes/no prompt function for the current session.
// Non-interactive sessions (closed stdin, GRAFT_NON_INTERACTIVE) always
// answer no; --force style flags always answer yes.
func ConfirmPrompt(ctx *runtime.Context, force bool) func(string) bool {
	return func(prompt string) bool {
		if force {
			return true
		}
		if !ctx.Interactive {
			ctx.Splog.Info("%s [y/N]: no (non-interactive)", prompt)
			return false
		}
		answer := false
		question := &survey.Confirm{
			Message: prompt,
			Default: false,
		}
		if err := survey.AskOne(question, &answer); err != nil {
			return false
		}
		return answer
	}
}
