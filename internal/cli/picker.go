package cli

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	mzio "github.com/mzsvg/mzsvg/pkg/io"
	"github.com/mzsvg/mzsvg/pkg/spectrum"
)

// List styles
var (
	listTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	listHeaderStyle   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// interactive reports whether a picker can take over the terminal.
var interactive = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// =============================================================================
// ScanListModel - Interactive spectrum selection
// =============================================================================

// ScanListModel is the bubbletea model for picking one spectrum out of a
// spectrum list.
type ScanListModel struct {
	Spectra  []*spectrum.Spectrum
	Cursor   int
	Selected *int
	Height   int
	Offset   int
}

// NewScanListModel creates a new scan list model.
func NewScanListModel(spectra []*spectrum.Spectrum) ScanListModel {
	return ScanListModel{Spectra: spectra, Height: 15}
}

func (m ScanListModel) Init() tea.Cmd {
	return nil
}

func (m ScanListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Spectra)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			i := m.Cursor
			m.Selected = &i
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m ScanListModel) View() string {
	var b strings.Builder

	b.WriteString(listTitleStyle.Render("Select Spectrum"))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Spectra))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, append([]string{cursor, strconv.Itoa(i)}, scanColumns(m.Spectra[i])...))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "ID", "MS", "Peaks", "Base peak", "Precursor").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return styleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(styleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Spectra))))

	return b.String()
}

// scanColumns summarizes s for one picker row.
func scanColumns(s *spectrum.Spectrum) []string {
	level := "-"
	if s.MSLevel > 0 {
		level = strconv.Itoa(s.MSLevel)
	}
	n := len(s.Peaks) + len(s.Deconvoluted)
	if n == 0 {
		n = s.Arrays.Len()
	}
	base := "-"
	if p, ok := s.BasePeak(); ok {
		base = fmt.Sprintf("%.4f", p.MZ)
	}
	precursor := "-"
	if s.Precursor != nil {
		precursor = fmt.Sprintf("%.4f", s.Precursor.MZ)
		if s.Precursor.Charge != 0 {
			precursor += fmt.Sprintf(" (%+d)", s.Precursor.Charge)
		}
	}
	return []string{s.ID, level, strconv.Itoa(n), base, precursor}
}

// pickScan lets the user choose one spectrum when input is a spectrum list
// and the terminal is interactive. It returns nil when there is nothing to
// choose, and ok=false when the user quit without a choice.
func pickScan(input []byte) (index *int, ok bool, err error) {
	if !interactive() {
		return nil, true, nil
	}
	spectra, err := mzio.ReadSpectra(bytes.NewReader(input))
	if err != nil || len(spectra) < 2 {
		// Decoding errors are reported by the pipeline.
		return nil, true, nil
	}

	printInfo("Found %d spectra", len(spectra))
	final, err := tea.NewProgram(NewScanListModel(spectra)).Run()
	if err != nil {
		return nil, false, err
	}
	m, isModel := final.(ScanListModel)
	if !isModel || m.Selected == nil {
		return nil, false, nil
	}
	return m.Selected, true, nil
}
