// Package prompt asks the user for registry credentials on the terminal.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/reglet-dev/regauth/credential/values"
)

// ErrNonInteractive is returned when a prompt is needed but stdin is not a terminal.
var ErrNonInteractive = errors.New("no terminal available to prompt for credentials")

// TerminalPrompter provides interactive terminal prompting for registry credentials.
type TerminalPrompter struct{}

// NewTerminalPrompter creates a new TerminalPrompter.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{}
}

// IsInteractive checks if we're running in an interactive terminal.
func (p *TerminalPrompter) IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// PromptForCredential asks for a username and password for registry.
func (p *TerminalPrompter) PromptForCredential(registry string) (values.Credential, error) {
	if !p.IsInteractive() {
		return values.Credential{}, p.FormatNonInteractiveError(registry)
	}

	var username, password string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Description(fmt.Sprintf("No credentials found for %s", registry)).
				Value(&username).
				Validate(ValidateUsername),
			huh.NewInput().
				Title("Password or token").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(ValidatePassword),
		),
	)
	if err := form.Run(); err != nil {
		return values.Credential{}, err
	}

	return values.NewCredential(strings.TrimSpace(username), password), nil
}

// ValidateUsername rejects blank usernames and usernames containing a colon,
// which cannot be encoded in a basic auth header.
func ValidateUsername(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("username is required")
	}
	if strings.Contains(s, ":") {
		return errors.New("username must not contain ':'")
	}
	return nil
}

// ValidatePassword rejects empty passwords.
func ValidatePassword(s string) error {
	if s == "" {
		return errors.New("password is required")
	}
	return nil
}

// FormatNonInteractiveError creates a helpful error message for non-interactive mode.
func (p *TerminalPrompter) FormatNonInteractiveError(registry string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "no credentials found for %s\n\n", registry)
	msg.WriteString("To provide credentials:\n")
	msg.WriteString("  1. Run interactively and enter them when prompted\n")
	msg.WriteString("  2. Set REGISTRY_USERNAME and REGISTRY_PASSWORD\n")
	msg.WriteString("  3. Run docker login " + registry + "\n")
	msg.WriteString("  4. Add a credential or credentialHelper to the regauth config file\n")

	return fmt.Errorf("%w: %s", ErrNonInteractive, msg.String())
}
