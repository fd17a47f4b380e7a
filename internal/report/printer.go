package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/manifoldco/promptui"
)

// boxWidth is the outer width of every printed section.
const boxWidth = 64

var bandStyles = map[ColorBand]func(interface{}) string{
	ColorGreen: promptui.Styler(promptui.FGGreen, promptui.FGBold),
	ColorBlue:  promptui.Styler(promptui.FGBlue, promptui.FGBold),
	ColorAmber: promptui.Styler(promptui.FGYellow, promptui.FGBold),
	ColorRed:   promptui.Styler(promptui.FGRed, promptui.FGBold),
}

var kindStyles = map[Kind]func(interface{}) string{
	KindPositive: promptui.Styler(promptui.FGGreen),
	KindWarning:  promptui.Styler(promptui.FGYellow),
	KindNeutral:  promptui.Styler(promptui.FGCyan),
}

// Printer writes reports as boxed sections for a terminal.
type Printer struct {
	out   io.Writer
	color bool
}

func NewPrinter(out io.Writer, color bool) *Printer {
	return &Printer{out: out, color: color}
}

type line struct {
	text  string
	style func(interface{}) string
}

//nolint:errcheck // terminal output; nothing useful to do on failure
func (p *Printer) printBox(title string, lines []line) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)

	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, l := range lines {
		// Service text may carry its own line breaks; each becomes a box row.
		for _, segment := range strings.Split(strings.ReplaceAll(l.text, "\r\n", "\n"), "\n") {
			for _, wrapped := range wrap(strings.TrimRight(segment, " \t\r"), inner) {
				text := pad(wrapped, inner)
				if p.color && l.style != nil {
					text = l.style(text)
				}
				fmt.Fprintf(p.out, "│ %s │\n", text)
			}
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// Print writes every section of the report.
func (p *Printer) Print(r *Report) {
	if r == nil {
		return
	}

	p.PrintScore(r.Badge)
	p.PrintFactors(r.Factors)
	p.PrintExplainability(r.Explainability)
	p.PrintSuggestions(r.Suggestions)
}

func (p *Printer) PrintScore(b Badge) {
	score := b.Score
	if score != Placeholder {
		score += "%"
	}

	p.printBox("Match Score", []line{
		{text: fmt.Sprintf("%s  %s", score, b.Label), style: bandStyles[b.Color]},
	})
}

func (p *Printer) PrintFactors(factors []Factor) {
	lines := make([]line, 0, len(factors))
	for _, f := range factors {
		lines = append(lines, line{text: fmt.Sprintf("%-10s %s", f.Label, f.Value)})
	}

	p.printBox("Key Factors", lines)
}

func (p *Printer) PrintExplainability(items []Item) {
	lines := make([]line, 0, len(items))
	for _, item := range items {
		lines = append(lines, line{
			text:  fmt.Sprintf("%s %s", item.Icon, item.Text),
			style: kindStyles[item.Kind],
		})
	}

	if len(lines) == 0 {
		lines = append(lines, line{text: Placeholder})
	}

	p.printBox("Why This Score?", lines)
}

func (p *Printer) PrintSuggestions(suggestions []Suggestion) {
	lines := make([]line, 0, len(suggestions)*2)
	for _, s := range suggestions {
		lines = append(lines,
			line{text: fmt.Sprintf("[%s] %s", s.Priority, s.Action)},
			line{text: "    Potential impact: " + s.Impact},
		)
	}

	if len(lines) == 0 {
		lines = append(lines, line{text: Placeholder})
	}

	p.printBox("What Would Improve This Score?", lines)
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// wrap splits text into lines of at most width runes, breaking on spaces
// where it can.
func wrap(text string, width int) []string {
	if utf8.RuneCountInString(text) <= width {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	indent := text[:len(text)-len(strings.TrimLeft(text, " "))]

	var lines []string
	current := indent
	for _, word := range words {
		for utf8.RuneCountInString(word) > width {
			if strings.TrimSpace(current) != "" {
				lines = append(lines, current)
				current = ""
			}
			runes := []rune(word)
			lines = append(lines, string(runes[:width]))
			word = string(runes[width:])
		}

		switch {
		case strings.TrimSpace(current) == "":
			current += word
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}

	if current != "" {
		lines = append(lines, current)
	}

	return lines
}
