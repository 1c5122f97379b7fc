// Package file loads credentials from a newline-delimited account file.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/rebor-cli/internal/adapters/webapp"
	"github.com/bnema/rebor-cli/internal/domain"
	"github.com/bnema/rebor-cli/internal/ports"
)

const DefaultPath = "data.txt"

type Loader struct {
	path     string
	parser   webapp.Parser
	reporter ports.Reporter
}

var _ ports.AccountSource = (*Loader)(nil)

func NewLoader(path string, reporter ports.Reporter) *Loader {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}

	return &Loader{
		path:     filepath.Clean(path),
		parser:   webapp.Parser{Reporter: reporter},
		reporter: reporter,
	}
}

func (l *Loader) Path() string {
	return l.path
}

// Load never fails. An unreadable file yields one error line and no
// accounts; unparseable lines are skipped.
func (l *Loader) Load(ctx context.Context) []domain.Credential {
	if ctx.Err() != nil {
		return []domain.Credential{}
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if l.reporter != nil {
			l.reporter.Error(fmt.Sprintf("File %s not found.", l.path),
				"path", l.path,
				"error", fmt.Errorf("%w: %w", domain.ErrFileRead, err).Error(),
			)
		}
		return []domain.Credential{}
	}

	lines := strings.Split(string(data), "\n")
	accounts := make([]domain.Credential, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		credential, ok := l.parser.Parse(line)
		if !ok {
			continue
		}
		accounts = append(accounts, credential)
	}

	return accounts
}
