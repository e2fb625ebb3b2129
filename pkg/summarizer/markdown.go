package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate labels.
func WithTranslator(t func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(v string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = v
	}
}

// NewMarkdownFormatter creates a formatter. Labels are untranslated by default.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Watermark Summary"))

	b.WriteString("| | |\n|---|---|\n")
	row(&b, t("Input Directory"), s.Run.InputDir)
	row(&b, t("Output Directory"), s.Run.OutputDir)
	row(&b, t("Succeeded"), fmt.Sprintf("%d/%d", s.Run.Succeeded, s.Run.Total))
	row(&b, t("Failed"), fmt.Sprintf("%d", s.Run.Failed()))
	row(&b, t("Output Size"), formatBytes(s.Run.OutputBytes))
	row(&b, t("Duration"), fmt.Sprintf("%d ms", s.Run.DurationMs))
	if s.Run.Interrupted {
		row(&b, t("Interrupted"), fmt.Sprintf("%d %s", s.Run.Remaining, t("file(s) not processed")))
	}

	fmt.Fprintf(&b, "\n## %s\n\n", t("Settings"))
	b.WriteString("| | |\n|---|---|\n")
	row(&b, t("Text"), "`"+s.Settings.Text+"`")
	row(&b, t("Opacity"), fmt.Sprintf("%.2f", s.Settings.Opacity))
	row(&b, t("Scale"), fmt.Sprintf("%.3f", s.Settings.Scale))
	row(&b, t("Margin"), fmt.Sprintf("%.3f", s.Settings.Margin))
	row(&b, t("Angle"), fmt.Sprintf("%g°", s.Settings.Angle))
	row(&b, t("Font"), s.Settings.Font)
	row(&b, t("Recursive"), t(yesNo(s.Settings.Recursive)))
	row(&b, t("JPEG Quality"), fmt.Sprintf("%d", s.Settings.JPEGQuality))
	row(&b, t("WebP Quality"), fmt.Sprintf("%d", s.Settings.WebPQuality))

	fmt.Fprintf(&b, "\n## %s\n\n", t("Failures"))
	if len(s.Failures) == 0 {
		fmt.Fprintf(&b, "%s\n", t("None"))
	} else {
		fmt.Fprintf(&b, "| %s | %s | %s |\n|---|---|---|\n", t("File"), t("Stage"), t("Error"))
		for _, fl := range s.Failures {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", escape(fl.Source), escape(fl.Stage), escape(fl.Error))
		}
	}

	b.WriteString("\n---\n\n")
	generatedBy := "wmstamp"
	if f.version != "" {
		generatedBy += " " + f.version
	}
	fmt.Fprintf(&b, "%s %s, %s\n", t("Generated by"), generatedBy, s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	return b.String()
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", label, escape(value))
}

// escape keeps table cells on one line and intact.
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// formatBytes formats a byte count with binary units.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < 3; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGT"[exp])
}
