package rebor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/bnema/rebor-cli/internal/domain"
)

// EncodeWebAppData renders the Tg-Webapp-Data header value: the credential
// as compact JSON, escaped like encodeURIComponent.
func EncodeWebAppData(credential domain.Credential) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(credential); err != nil {
		return "", fmt.Errorf("encode web app data: %w", err)
	}

	return escapeComponent(strings.TrimSuffix(buf.String(), "\n")), nil
}

var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(value string) string {
	return componentUnescapes.Replace(url.QueryEscape(value))
}
