package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yanqian/pikacalc/internal/domain/stats"
)

// parseStatVector accepts either six comma separated values in slot order
// ("31,31,31,31,31,31") or name=value pairs ("atk=252,spe=252"); unnamed stats are zero.
func parseStatVector(raw string) (*stats.Stats, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if !strings.Contains(raw, "=") {
		values := make([]int, len(parts))
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("invalid stat value %q", p)
			}
			values[i] = v
		}
		s, err := stats.FromSlice(values)
		if err != nil {
			return nil, err
		}
		return &s, nil
	}

	var s stats.Stats
	for _, p := range parts {
		name, value, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok {
			return nil, fmt.Errorf("expected name=value, got %q", p)
		}
		stat, err := stats.ParseStatName(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return nil, err
		}
		v, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %q", stat, value)
		}
		s = s.With(stat, v)
	}
	return &s, nil
}

func splitTypes(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
