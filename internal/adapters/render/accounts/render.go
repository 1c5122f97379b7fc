// Package accounts renders loaded credentials for the accounts command.
package accounts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/rebor-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatTOML = "toml"

	exportVersion = 1
)

type RenderOptions struct {
	Now        time.Time
	StaleAfter time.Duration
}

func Render(credentials []domain.Credential, format string, opts RenderOptions) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return renderView(credentials, opts, newStyles()), nil
	case FormatJSON:
		return renderJSON(credentials)
	case FormatTOML:
		return renderTOML(credentials)
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}

func renderView(credentials []domain.Credential, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Rebor Accounts"),
		s.header.Render(fmt.Sprintf("accounts: %d", len(credentials))),
	}

	if len(credentials) == 0 {
		lines = append(lines, s.empty.Render("No accounts found!"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, credential := range credentials {
		lines = append(lines, s.section.Render(renderAccount(credential, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAccount(credential domain.Credential, opts RenderOptions, s styles) string {
	authLine := s.detail.Render("auth date: " + formatAuthDate(credential.AuthDate))
	if isStale(credential.AuthDate, opts) {
		authLine += " " + s.warning.Render("[stale]")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.account.Render("Account ID: "+credential.User.ID),
		s.detail.Render("chat type: "+valueOrNA(credential.ChatType)),
		authLine,
	)
}

func parseAuthDate(value string) (time.Time, bool) {
	seconds, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || seconds <= 0 {
		return time.Time{}, false
	}
	return time.Unix(seconds, 0).UTC(), true
}

func formatAuthDate(value string) string {
	authDate, ok := parseAuthDate(value)
	if !ok {
		return valueOrNA(value)
	}
	return authDate.Format("2006-01-02 15:04 UTC")
}

func isStale(value string, opts RenderOptions) bool {
	if opts.Now.IsZero() || opts.StaleAfter <= 0 {
		return false
	}

	authDate, ok := parseAuthDate(value)
	if !ok {
		return false
	}

	return opts.Now.Sub(authDate) > opts.StaleAfter
}

func valueOrNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "n/a"
	}
	return value
}

func renderJSON(credentials []domain.Credential) (string, error) {
	if credentials == nil {
		credentials = []domain.Credential{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(credentials); err != nil {
		return "", fmt.Errorf("encode accounts json: %w", err)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

type exportSchema struct {
	Version  int             `toml:"version"`
	Accounts []accountSchema `toml:"accounts"`
}

type accountSchema struct {
	UserID       string `toml:"user_id"`
	User         string `toml:"user"`
	ChatInstance string `toml:"chat_instance"`
	ChatType     string `toml:"chat_type"`
	AuthDate     string `toml:"auth_date"`
	Signature    string `toml:"signature"`
	Hash         string `toml:"hash"`
}

func renderTOML(credentials []domain.Credential) (string, error) {
	file := exportSchema{Version: exportVersion, Accounts: make([]accountSchema, 0, len(credentials))}
	for _, credential := range credentials {
		file.Accounts = append(file.Accounts, accountSchema{
			UserID:       credential.User.ID,
			User:         string(credential.User.Raw()),
			ChatInstance: credential.ChatInstance,
			ChatType:     credential.ChatType,
			AuthDate:     credential.AuthDate,
			Signature:    credential.Signature,
			Hash:         credential.Hash,
		})
	}

	encoded, err := toml.Marshal(file)
	if err != nil {
		return "", fmt.Errorf("encode accounts toml: %w", err)
	}

	return strings.TrimSuffix(string(encoded), "\n"), nil
}
