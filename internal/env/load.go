package env

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads a dotenv file and exports each KEY=VALUE line whose key starts with prefix. Keys
// already present in the process environment win over the file. Blank lines, # comments and an
// optional leading "export " are accepted; one level of matching quotes is stripped from values.
// A missing file is not an error. It returns the number of variables set.
func Load(path, prefix string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	set := 0
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return set, fmt.Errorf("%s:%d: expected KEY=VALUE", path, n)
		}
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, unquote(strings.TrimSpace(value))); err != nil {
			return set, err
		}
		set++
	}
	return set, scanner.Err()
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}
