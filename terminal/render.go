package terminal

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/template"

	"tetris/palette"
	"tetris/tetris"
)

const (
	resetPos    = "\033[H"       // Reset cursor position to 0,0
	clearScreen = "\033[2J\033[H" // Clear the screen and reset the cursor

	rows, cols = 20, 10
)

//go:embed "layout.tmpl"
var layout string

type templateData struct {
	Snap    *tetris.Snapshot
	Name    string
	NoGhost bool
}

// message is a box drawn over the stack: a title and a line of options.
type message struct {
	title, options string
}

func defaultLobby() message { return message{"Welcome to Terminal Tetris", "(p)lay   (q)uit"} }
func gameOver() message     { return message{"Game Over :)", "(p)lay   (q)uit"} }
func paused() message       { return message{"Paused", "(p) resume"} }
func watching(name string) message {
	return message{"Waiting for " + name, "(ctrl+c) quit"}
}

type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	// overlay is set while a message box is on screen, so the next frame
	// clears it first.
	overlay bool
	*templateData
}

func newRender(w io.Writer, l *slog.Logger, noGhost bool, name string) *render {
	return &render{
		writer:   w,
		logger:   l,
		template: loadTemplate(),
		templateData: &templateData{
			Snap:    &tetris.Snapshot{},
			Name:    name,
			NoGhost: noGhost,
		},
	}
}

func (r *render) game(s *tetris.Snapshot) {
	if s != nil {
		r.Snap = s
	}
	if r.overlay {
		fmt.Fprint(r.writer, clearScreen)
		r.overlay = false
	}
	fmt.Fprint(r.writer, resetPos)
	if err := r.template.Execute(r.writer, r.templateData); err != nil {
		r.logger.Error("unable to execute template in game()", slog.String("error", err.Error()))
	}
}

func (r *render) lobby(m message) {
	r.overlay = true
	fmt.Fprint(r.writer, "\033[10;9H+--------------------------------------+")
	fmt.Fprintf(r.writer, "\033[11;9H|%s|", center(m.title, 38))
	fmt.Fprint(r.writer, "\033[12;9H|                                      |")
	fmt.Fprintf(r.writer, "\033[13;9H|%s|", center(m.options, 38))
	fmt.Fprint(r.writer, "\033[14;9H+--------------------------------------+")
}

func center(s string, width int) string {
	if len(s) > width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

func loadTemplate() *template.Template {
	funcMap := template.FuncMap{
		"stack":      stack,
		"nextPiece":  nextPiece,
		"holdPiece":  holdPiece,
		"statistics": statistics,
		"title":      title,
		"danger":     danger,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	l := strings.ReplaceAll(layout, "\n", "\r\n")
	l = strings.ReplaceAll(l, "Terminal Tetris", "\033[1mTerminal Tetris\033[0m")
	return template.Must(template.New("layout").Funcs(funcMap).Parse(l))
}

// cells returns the stack with the falling piece and its ghost drawn in.
func cells(td *templateData) [rows][cols]string {
	rendered := [rows][cols]string{}
	for y := range rows {
		for x := range cols {
			rendered[y][x] = "  "
		}
	}
	if td == nil || td.Snap == nil {
		return rendered
	}
	s := td.Snap

	for y, row := range s.Stack {
		for x, v := range row {
			if y < rows && x < cols {
				rendered[y][x] = palette.Cell(v)
			}
		}
	}
	if s.Tetromino == nil {
		return rendered
	}
	if !td.NoGhost {
		for _, p := range s.Ghost {
			if inside(p) {
				rendered[p.Row][p.Col] = "[]"
			}
		}
	}
	for _, p := range s.Cells {
		if inside(p) {
			rendered[p.Row][p.Col] = palette.Cell(s.Tetromino.Shape)
		}
	}
	return rendered
}

func inside(p tetris.Point) bool {
	return p.Row >= 0 && p.Row < rows && p.Col >= 0 && p.Col < cols
}

func stack(td *templateData) []string {
	c := cells(td)
	out := make([]string, rows)
	for i, r := range c {
		out[i] = strings.Join(r[:], "")
	}
	return out
}

func nextPiece(td *templateData) []string {
	if td == nil || td.Snap == nil || len(td.Snap.Next) == 0 {
		return preview("")
	}
	return preview(td.Snap.Next[0])
}

func holdPiece(td *templateData) []string {
	if td == nil || td.Snap == nil {
		return preview("")
	}
	return preview(td.Snap.Hold)
}

// preview draws a shape in its spawn rotation on two rows of four cells,
// pushed to the left.
func preview(shape tetris.Shape) []string {
	grid := [2][4]string{}
	for y := range grid {
		for x := range grid[y] {
			grid[y][x] = "  "
		}
	}
	if shape != "" {
		offsets := tetris.Offsets(shape, 0)
		minCol := 4
		for _, p := range offsets {
			minCol = min(minCol, p.Col)
		}
		for _, p := range offsets {
			if p.Row < 2 && p.Col-minCol < 4 {
				grid[p.Row][p.Col-minCol] = palette.Cell(shape)
			}
		}
	}
	return []string{strings.Join(grid[0][:], ""), strings.Join(grid[1][:], "")}
}

// statistics lists how many pieces of each shape were played, two per line.
func statistics(td *templateData) []string {
	out := make([]string, 4)
	for i, s := range tetris.Shapes {
		n := 0
		if td != nil && td.Snap != nil {
			n = td.Snap.Statistics[s]
		}
		entry := fmt.Sprintf("%s %-4d ", palette.Cell(s), n)
		out[i/2] += entry
	}
	return out
}

func title(td *templateData) string {
	if td.Name == "" {
		return ""
	}
	return "Player: " + td.Name
}

func danger(td *templateData) string {
	if td.Snap != nil && td.Snap.Danger {
		return "\033[5m\033[31m!! DANGER !!\033[0m"
	}
	return "            "
}
