package collector

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"IDXScreener/internal/logger"
)

// DefaultSuffix is the exchange suffix for Indonesia Stock Exchange tickers.
const DefaultSuffix = ".JK"

// DefaultSymbols is the universe used whenever the remote list cannot be read.
var DefaultSymbols = []string{"ANTM.JK", "BBCA.JK", "TLKM.JK", "ADRO.JK", "MDKA.JK"}

// ErrEmptyList is returned when a remote ticker list parses to zero symbols.
var ErrEmptyList = errors.New("ticker list is empty")

// UniverseSource lists the candidate symbols for a screening pass.
type UniverseSource interface {
	ListSymbols(ctx context.Context) ([]string, error)
}

// HTTPUniverseSource reads a plain-text ticker list, one code per line.
// Blank lines and lines starting with '#' are ignored; codes without an
// exchange suffix get Suffix appended.
type HTTPUniverseSource struct {
	URL    string
	Suffix string
	Client *http.Client
}

// NewHTTPUniverseSource creates a source with optional proxy support.
func NewHTTPUniverseSource(rawURL, suffix, proxyURL string) *HTTPUniverseSource {
	return &HTTPUniverseSource{URL: rawURL, Suffix: suffix, Client: newHTTPClient(proxyURL)}
}

func (s *HTTPUniverseSource) ListSymbols(ctx context.Context) ([]string, error) {
	if s.URL == "" {
		return nil, errors.New("universe url is not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch ticker list: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read ticker list: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch ticker list: status %d", resp.StatusCode)
	}
	return ParseSymbols(bytes.NewReader(body), s.Suffix)
}

// ParseSymbols reads one ticker per line, skipping blanks, comments and duplicates.
func ParseSymbols(r io.Reader, suffix string) ([]string, error) {
	var symbols []string
	seen := make(map[string]bool)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// tolerate "CODE,Company name" style rows
		if i := strings.IndexAny(line, ",;\t "); i >= 0 {
			line = line[:i]
		}
		sym := strings.ToUpper(line)
		if suffix != "" && !strings.Contains(sym, ".") {
			sym += suffix
		}
		if seen[sym] {
			continue
		}
		seen[sym] = true
		symbols = append(symbols, sym)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("parse ticker list: %w", err)
	}
	if len(symbols) == 0 {
		return nil, ErrEmptyList
	}
	return symbols, nil
}

// StaticUniverseSource serves a fixed list.
type StaticUniverseSource []string

func (s StaticUniverseSource) ListSymbols(context.Context) ([]string, error) {
	return append([]string(nil), s...), nil
}

// Universe wraps a source and falls back to DefaultSymbols on any failure.
type Universe struct {
	Source UniverseSource
	Logger *logger.Logger
}

// ListSymbols never fails: errors from the source are logged and replaced by the default list.
func (u *Universe) ListSymbols(ctx context.Context) ([]string, error) {
	if u.Source == nil {
		return append([]string(nil), DefaultSymbols...), nil
	}
	symbols, err := u.Source.ListSymbols(ctx)
	if err != nil || len(symbols) == 0 {
		if err == nil {
			err = ErrEmptyList
		}
		logger.OrNop(u.Logger).Warn("ticker list unavailable, using default universe",
			zap.Error(err), zap.Strings("symbols", DefaultSymbols))
		return append([]string(nil), DefaultSymbols...), nil
	}
	return symbols, nil
}
