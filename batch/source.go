package batch

import (
	"bufio"
	"io"
	"strings"

	"github.com/wxclip/wxclip"
	"github.com/wxclip/wxclip/bloom"
)

// ReadURLList reads article URLs from r, one per line. In CSV mode
// each line contributes its first column, split on commas or tabs.
// Blank lines are skipped and repeated URLs collapse to their first
// occurrence, preserving input order.
func ReadURLList(r io.Reader, csv bool) ([]string, error) {
	seen := bloom.NewDefaultFilter()

	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if csv {
			line = firstColumn(line)
			if line == "" {
				continue
			}
		}
		if seen.Seen(line) {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, wxclip.Errorf(wxclip.EINTERNAL, "read URL list: %s", err)
	}

	if len(urls) == 0 {
		return nil, wxclip.Errorf(wxclip.EINVALID, "no URLs found in input")
	}
	return urls, nil
}

func firstColumn(line string) string {
	if i := strings.IndexAny(line, ",\t"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}
