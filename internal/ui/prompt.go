package ui

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

// ConfirmAction asks the user to approve a mutating operation before it runs.
// Declining is not an error.
func ConfirmAction(summary string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("%s. Proceed", summary),
		IsConfirm: true,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return true, nil
}
