// Package ui provides the interactive terminal session for picking a
// sheet and watching the export run.
package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mtoyoshima/exformula/pkg/exformula"
	"github.com/mtoyoshima/exformula/pkg/exformula/models"
	"github.com/mtoyoshima/exformula/pkg/exformula/output"
)

type state int

const (
	stateLoading state = iota
	stateSheetPick
	stateExporting
	stateComplete
	stateError
)

// progressStep is the number of records written between progress
// updates.
const progressStep = 64

type Model struct {
	state   state
	input   string
	outPath string
	opts    exformula.Options
	cfg     output.Config

	info    *models.WorkbookInfo
	cursor  int
	records int
	err     error

	width  int
	height int

	progress     progress.Model
	progressChan chan float64
	resultChan   chan exportResultMsg
}

type sheetsLoadedMsg struct {
	info *models.WorkbookInfo
	err  error
}

type exportResultMsg struct {
	records int
	err     error
}

type progressMsg float64

type waitForProgressMsg struct{}

// InitialModel returns the model for one interactive export of the
// workbook at input to the CSV file at outPath.
func InitialModel(input, outPath string, opts exformula.Options, cfg output.Config) Model {
	prog := progress.New(progress.WithGradient("#2DD4BF", "#14B8A6"))

	return Model{
		state:    stateLoading,
		input:    input,
		outPath:  outPath,
		opts:     opts,
		cfg:      cfg,
		progress: prog,
	}
}

// Run starts the interactive export session and blocks until it
// finishes or the user cancels.
func Run(input, outPath string, opts exformula.Options, cfg output.Config) error {
	p := tea.NewProgram(InitialModel(input, outPath, opts, cfg), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return err
	}
	if final, ok := m.(Model); ok && final.err != nil {
		return final.err
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return m.loadSheets
}

func (m Model) loadSheets() tea.Msg {
	info, err := exformula.Sheets(m.input)
	return sheetsLoadedMsg{info: info, err: err}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateLoading:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			}

		case stateSheetPick:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}
			case "down", "j":
				if m.cursor < len(m.info.Sheets)-1 {
					m.cursor++
				}
			case "enter":
				return m.startExport(m.info.Sheets[m.cursor])
			}

		case stateComplete, stateError:
			switch msg.String() {
			case "ctrl+c", "q", "enter", "esc":
				return m, tea.Quit
			}
		}

	case sheetsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.info = msg.info

		if len(m.info.Sheets) == 1 {
			return m.startExport(m.info.Sheets[0])
		}

		m.cursor = pickCursor(m.info, m.opts.Sheet)
		m.state = stateSheetPick
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		if m.state == stateExporting {
			cmd := m.progress.SetPercent(float64(msg))
			return m, tea.Batch(cmd, waitForProgress(m.progressChan, m.resultChan))
		}
		return m, nil

	case waitForProgressMsg:
		return m, waitForProgress(m.progressChan, m.resultChan)

	case exportResultMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.records = msg.records
		m.state = stateComplete
		return m, nil
	}

	return m, nil
}

// pickCursor returns the initial cursor position: the requested sheet
// when present, otherwise the active sheet.
func pickCursor(info *models.WorkbookInfo, requested string) int {
	if requested != "" {
		for i, name := range info.Sheets {
			if name == requested {
				return i
			}
		}
	}
	if info.ActiveSheet >= 0 && info.ActiveSheet < len(info.Sheets) {
		return info.ActiveSheet
	}
	return 0
}

func (m Model) startExport(sheetName string) (Model, tea.Cmd) {
	m.state = stateExporting
	m.progressChan = make(chan float64, 100)
	m.resultChan = make(chan exportResultMsg, 1)

	opts := m.opts
	opts.Sheet = sheetName

	// Capture for the goroutine
	progressChan := m.progressChan
	resultChan := m.resultChan
	input := m.input
	outPath := m.outPath
	cfg := m.cfg

	cmd := tea.Batch(
		func() tea.Msg {
			go func() {
				records, err := runExport(input, outPath, opts, cfg, progressChan)
				resultChan <- exportResultMsg{records: records, err: err}
				close(progressChan)
				close(resultChan)
			}()
			return waitForProgressMsg{}
		},
		waitForProgress(m.progressChan, m.resultChan),
		m.progress.Init(),
	)

	return m, cmd
}

// runExport extracts the sheet and writes the CSV, reporting progress
// fractions as records land. The destination file is created only
// after extraction succeeds.
func runExport(src, dst string, opts exformula.Options, cfg output.Config, prog chan<- float64) (int, error) {
	data, err := exformula.Extract(src, opts)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	w, err := output.NewWriter(f, cfg)
	if err != nil {
		f.Close()
		return 0, err
	}

	if cfg.ShouldIncludeHeader() {
		if err := w.WriteHeader(); err != nil {
			f.Close()
			return 0, err
		}
	}

	total := len(data.Records)
	for i, rec := range data.Records {
		if err := w.WriteRecord(rec); err != nil {
			f.Close()
			return 0, err
		}
		if (i+1)%progressStep == 0 {
			prog <- float64(i+1) / float64(total)
		}
	}

	if err := w.Close(); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, err
	}

	prog <- 1.0
	return total, nil
}

func waitForProgress(progressChan chan float64, resultChan chan exportResultMsg) tea.Cmd {
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		p, ok := <-progressChan
		if !ok {
			res, ok := <-resultChan
			if ok {
				return res
			}
			return nil
		}

		return progressMsg(p)
	}
}

func (m Model) View() string {
	switch m.state {
	case stateLoading:
		return m.viewLoading()
	case stateSheetPick:
		return m.viewSheetPick()
	case stateExporting:
		return m.viewExporting()
	case stateComplete:
		return m.viewComplete()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewLoading() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("exformula"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("Reading %s...", filepath.Base(m.input))))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press q to quit"))

	return s.String()
}

func (m Model) viewSheetPick() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Select a sheet to export"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("File: %s", filepath.Base(m.input))))
	s.WriteString("\n\n")

	for i, name := range m.info.Sheets {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}

		line := fmt.Sprintf("%s %s", cursor, name)
		if m.cursor == i {
			line = SelectedStyle.Render(line)
		} else {
			line = UnselectedStyle.Render(line)
		}
		if i == m.info.ActiveSheet {
			line += ActiveMarkStyle.Render(" (active)")
		}

		s.WriteString(line)
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("↑/↓: navigate • enter: export • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewExporting() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Exporting..."))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Writing cells to %s...", filepath.Base(m.outPath)))
	s.WriteString("\n\n")
	s.WriteString(m.progress.View())

	return BoxStyle.Render(s.String())
}

func (m Model) viewComplete() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("✓ Export complete!"))
	s.WriteString("\n\n")

	maxPathLen := m.width - 20
	if maxPathLen < 30 {
		maxPathLen = 30
	}

	s.WriteString(fmt.Sprintf("Input:  %s\n", truncatePath(m.input, maxPathLen)))
	s.WriteString(SuccessStyle.Render(fmt.Sprintf("Output: %s\n", truncatePath(m.outPath, maxPathLen))))
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("Cells exported: %d\n", m.records))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press q or enter to exit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	s.WriteString("\n\n")
	s.WriteString(m.err.Error())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press q or enter to exit"))

	return BoxStyle.Render(s.String())
}

func truncatePath(path string, max int) string {
	if len(path) <= max {
		return path
	}
	return "..." + path[len(path)-max+3:]
}
