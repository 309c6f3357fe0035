package viseme

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

var ErrInvalidMap = errors.New("invalid viseme map")

// Map assigns each public viseme its output id.
type Map map[Viseme]int

// ParseMap decodes a JSON object of viseme ids and checks that its key set is
// exactly All.
func ParseMap(b []byte) (Map, error) {
	var raw map[string]int
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}
	m := make(Map, len(raw))
	for k, id := range raw {
		m[Viseme(k)] = id
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func LoadMap(path string) (Map, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read viseme map: %w", err)
	}
	m, err := ParseMap(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func (m Map) Validate() error {
	var missing, extra []string
	for _, v := range All {
		if _, ok := m[v]; !ok {
			missing = append(missing, string(v))
		}
	}
	for k := range m {
		if k.Index() < 0 {
			extra = append(extra, string(k))
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(extra)
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing "+strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		parts = append(parts, "unexpected "+strings.Join(extra, ", "))
	}
	return fmt.Errorf("%w: %s", ErrInvalidMap, strings.Join(parts, "; "))
}

// ID returns the output id of v. Maps are validated on load, so every public
// viseme is present.
func (m Map) ID(v Viseme) int { return m[v] }
