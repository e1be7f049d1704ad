package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	scoreStyle    = lipgloss.NewStyle().Faint(true)
	fieldStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

func (m Model) View() string {
	var sb strings.Builder

	switch m.state {
	case StateBrowsing:
		sb.WriteString(titleStyle.Render(fmt.Sprintf("검색 결과: %s", m.query)))
		sb.WriteString(fmt.Sprintf("  (%d건)\n\n", len(m.results)))

		if len(m.results) == 0 {
			sb.WriteString("검색된 문서가 없습니다.\n")
		}

		for i, res := range m.results {
			cursor := "  "
			line := fmt.Sprintf("%s  %s", res.Doc.Filename(), scoreStyle.Render(fmt.Sprintf("%.2f", res.Score)))
			if i == m.cursor {
				cursor = "> "
				line = selectedStyle.Render(line)
			}
			sb.WriteString(cursor + line + "\n")
		}

		sb.WriteString("\n" + helpStyle.Render("(j/k 이동, Enter 상세, q 종료)"))

	case StateDetail:
		res := m.results[m.cursor]
		sb.WriteString(titleStyle.Render(res.Doc.Filename()))
		sb.WriteString(fmt.Sprintf("  %.2f\n", res.Score))
		sb.WriteString(scoreStyle.Render(res.Doc.RelPath) + "\n\n")

		if len(res.Snippets) == 0 {
			sb.WriteString(res.Doc.TextT + "\n")
		}
		for _, sn := range res.Snippets {
			sb.WriteString(fieldStyle.Render("["+sn.Field.Name()+"]") + " " + sn.Text + "\n")
		}

		sb.WriteString("\n" + helpStyle.Render("(Enter/Esc 목록으로)"))
	}

	return sb.String()
}
