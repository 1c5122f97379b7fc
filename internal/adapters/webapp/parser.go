// Package webapp decodes captured Telegram web-app payloads.
package webapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bnema/rebor-cli/internal/domain"
	"github.com/bnema/rebor-cli/internal/ports"
)

const infoKey = "info"

// Decode parses one query-string blob. The info value is URL-encoded JSON
// on top of the query-string encoding.
func Decode(data string) (domain.Credential, error) {
	values, err := url.ParseQuery(data)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("%w: query string: %v", domain.ErrParse, err)
	}

	info := values.Get(infoKey)
	if info == "" {
		return domain.Credential{}, fmt.Errorf("%w: missing %q", domain.ErrParse, infoKey)
	}

	decoded, err := url.PathUnescape(info)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("%w: unescape %s: %v", domain.ErrParse, infoKey, err)
	}

	user, err := domain.NewUser([]byte(decoded))
	if err != nil {
		return domain.Credential{}, fmt.Errorf("%w: decode %s: %v", domain.ErrParse, infoKey, err)
	}

	return domain.Credential{
		User:         user,
		ChatInstance: values.Get("chat_instance"),
		ChatType:     values.Get("chat_type"),
		AuthDate:     values.Get("auth_date"),
		Signature:    values.Get("signature"),
		Hash:         values.Get("hash"),
	}, nil
}

type Parser struct {
	Reporter ports.Reporter
}

// Parse reports a failed decode once and returns ok=false instead of an
// error.
func (p Parser) Parse(data string) (domain.Credential, bool) {
	credential, err := Decode(strings.TrimSpace(data))
	if err != nil {
		if p.Reporter != nil {
			p.Reporter.Error("Error parsing tgWebApp data", "error", err.Error())
		}
		return domain.Credential{}, false
	}

	return credential, true
}
