package initializer

import (
	"io"
	"log/slog"

	"github.com/amirasaad/zakat/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var levelStyles = []struct {
	level log.Level
	icon  string
	color string
}{
	{log.ErrorLevel, "❌", "#FF6B6B"},
	{log.WarnLevel, "⚠️", "#EE6FF8"},
	{log.InfoLevel, "ℹ️", "#04B575"},
	{log.DebugLevel, "🐛", "#7E57C2"},
}

// setupLogger builds a charm logger behind slog and installs it as the default.
func setupLogger(cfg *config.Log, w io.Writer) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text", TimeFormat: "2006-01-02 15:04:05", Prefix: "[zakat]"}
	}

	styles := log.DefaultStyles()
	for _, ls := range levelStyles {
		color := lipgloss.AdaptiveColor{Light: ls.color, Dark: ls.color}
		styles.Levels[ls.level] = lipgloss.NewStyle().
			SetString(ls.icon).
			Bold(true).
			Padding(0, 1).
			Foreground(color)
	}

	accent := lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}
	for _, key := range []string{"error", "service", "method", "id", "zakat_due", "stale"} {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(accent)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}

	formatter := log.TextFormatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles)

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}
