package recipients

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/yksanjo/email-warmup-service/pkg/config"
)

// Provider produces the ordered list of destination addresses for a batch.
// Order is send order. An empty list is not an error.
type Provider interface {
	Recipients() ([]string, error)
}

// New selects a provider from the configuration: the HTTP provider when a
// recipients URL is configured, the file provider otherwise.
func New(cfg *config.Config, log *zap.SugaredLogger) Provider {
	if cfg.RecipientsURL != "" {
		return NewHTTPProvider(cfg.RecipientsURL, log)
	}
	return NewFileProvider(cfg.RecipientsFile)
}

// FileProvider reads newline-delimited addresses from a local file.
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// Recipients parses the file, skipping blank lines and lines that do not
// look like addresses. A missing file yields an empty list, the same
// informational outcome as an empty one.
func (p *FileProvider) Recipients() ([]string, error) {
	f, err := os.Open(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open recipients file %s: %w", p.path, err)
	}
	defer f.Close()

	var addrs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.Contains(line, "@") {
			continue
		}
		addrs = append(addrs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recipients file %s: %w", p.path, err)
	}
	return addrs, nil
}

// StaticProvider serves a fixed list. Used in tests and for seeding.
type StaticProvider struct {
	addrs []string
}

func NewStaticProvider(addrs []string) *StaticProvider {
	return &StaticProvider{addrs: addrs}
}

func (p *StaticProvider) Recipients() ([]string, error) {
	return p.addrs, nil
}
