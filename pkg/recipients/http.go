package recipients

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const httpTimeout = 30 * time.Second

// HTTPProvider fetches the recipient list from a warm-up address pool
// endpoint. The endpoint returns a JSON array of address strings; entries
// that do not look like addresses are skipped like in the file provider.
type HTTPProvider struct {
	client *resty.Client
	url    string
	log    *zap.SugaredLogger
}

func NewHTTPProvider(url string, log *zap.SugaredLogger) *HTTPProvider {
	client := resty.New().
		SetTimeout(httpTimeout).
		SetHeader("Accept", "application/json")
	return &HTTPProvider{
		client: client,
		url:    url,
		log:    log.Named("recipients"),
	}
}

func (p *HTTPProvider) Recipients() ([]string, error) {
	var raw []string
	resp, err := p.client.R().
		SetResult(&raw).
		Get(p.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipients from %s: %w", p.url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("recipients endpoint %s returned %s", p.url, resp.Status())
	}

	addrs := make([]string, 0, len(raw))
	for _, a := range raw {
		a = strings.TrimSpace(a)
		if a == "" || !strings.Contains(a, "@") {
			continue
		}
		addrs = append(addrs, a)
	}
	p.log.Debugw("Fetched recipients", "url", p.url, "count", len(addrs))
	return addrs, nil
}
