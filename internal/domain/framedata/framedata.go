// Package framedata renders scheduled keyframes as "<frame> <visemeId>" lines.
package framedata

import (
	"os"
	"strconv"
	"strings"

	"github.com/forPelevin/lipsync/internal/types"
)

func Render(events []types.FrameEvent) string {
	var b strings.Builder
	for i, e := range events {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(e.Frame))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(e.VisemeID))
	}
	return b.String()
}

func Write(path string, events []types.FrameEvent) error {
	return os.WriteFile(path, []byte(Render(events)), 0o644)
}
