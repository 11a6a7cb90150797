package render

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ffl-tools/trophyline/internal/domain/playoff"
	"github.com/ffl-tools/trophyline/internal/usecase"
)

// Renderer turns a finished report into one output format. Renderers are
// purely presentational: they never mutate the report or compute new values.
type Renderer interface {
	Format() string
	Render(report usecase.Report) ([]byte, error)
}

const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatJSON     = "json"
	FormatCSV      = "csv"
)

func New(format string) (Renderer, error) {
	switch format {
	case FormatText:
		return &TextRenderer{}, nil
	case FormatMarkdown:
		return &MarkdownRenderer{}, nil
	case FormatHTML:
		return &HTMLRenderer{}, nil
	case FormatJSON:
		return &JSONRenderer{}, nil
	case FormatCSV:
		return &CSVRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func phaseLabel(phase playoff.Phase) string {
	switch phase {
	case playoff.PhaseRegularSeason:
		return "Regular Season"
	case playoff.PhaseSemifinal:
		return "Semifinals"
	case playoff.PhaseFinal:
		return "Finals"
	case playoff.PhaseChampionshipWeek:
		return "Championship Week"
	case playoff.PhaseComplete:
		return "Season Complete"
	default:
		return string(phase)
	}
}

// contextPairs flattens a context map into sorted key=value pairs so output
// stays byte-identical across runs.
func contextPairs(ctx map[string]string) []string {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+ctx[k])
	}
	return out
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatScore(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatValue(*v)
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 0, 64) + "%"
}
