package flagx

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// The Env* helpers overlay a value from an environment variable. An unset
// variable leaves *target untouched; a malformed one is reported as an error
// naming the variable.

func EnvString(target *string, name string) {
	if v, ok := os.LookupEnv(name); ok {
		*target = v
	}
}

func EnvInt(target *int, name string) error {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*target = n
	return nil
}

func EnvDuration(target *time.Duration, name string) error {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*target = d
	return nil
}

// EnvList splits a comma-separated variable, dropping empty items.
func EnvList(target *[]string, name string) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*target = out
}
