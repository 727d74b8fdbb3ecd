package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PromptRefreshToken asks for the refresh token without echoing it, when
// stdin is a terminal. On a non-interactive stdin it returns an empty
// string so the missing-credential error surfaces normally.
func PromptRefreshToken(out io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", nil
	}

	fmt.Fprint(out, "Refresh token: ")
	token, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read refresh token: %w", err)
	}
	return strings.TrimSpace(string(token)), nil
}
