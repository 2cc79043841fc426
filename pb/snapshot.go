package pb

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	"tetris/tetris"
)

// empty marks an empty cell in the rows of the encoded stack.
const empty = '.'

var phases = map[string]tetris.Phase{}

func init() {
	for _, p := range []tetris.Phase{tetris.NotStarted, tetris.Running, tetris.Paused, tetris.GameOver} {
		phases[p.String()] = p
	}
}

// Encode turns a snapshot into a Struct. Every stack row is a string with one
// character per cell.
func Encode(s *tetris.Snapshot) (*structpb.Struct, error) {
	stack := make([]any, len(s.Stack))
	for i, row := range s.Stack {
		var b strings.Builder
		for _, c := range row {
			if c == "" {
				b.WriteRune(empty)
				continue
			}
			b.WriteString(string(c))
		}
		stack[i] = b.String()
	}
	next := make([]any, len(s.Next))
	for i, n := range s.Next {
		next[i] = string(n)
	}
	stats := make(map[string]any, len(s.Statistics))
	for k, v := range s.Statistics {
		stats[string(k)] = v
	}

	m := map[string]any{
		"game_id":    s.GameID,
		"phase":      s.Phase.String(),
		"stack":      stack,
		"hold":       string(s.Hold),
		"can_hold":   s.CanHold,
		"next":       next,
		"score":      s.Score,
		"level":      s.Level,
		"lines":      s.LinesClear,
		"statistics": stats,
		"danger":     s.Danger,
	}
	if s.Tetromino != nil {
		m["piece"] = map[string]any{
			"shape":    string(s.Tetromino.Shape),
			"rotation": s.Tetromino.Rotation,
			"row":      s.Tetromino.Row,
			"col":      s.Tetromino.Col,
		}
		m["cells"] = points(s.Cells)
		m["ghost"] = points(s.Ghost)
	}
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return st, nil
}

func points(ps []tetris.Point) []any {
	out := make([]any, len(ps))
	for i, p := range ps {
		out[i] = []any{p.Row, p.Col}
	}
	return out
}

// Decode is the reverse of Encode.
func Decode(st *structpb.Struct) (*tetris.Snapshot, error) {
	if st == nil {
		return nil, errors.New("nil snapshot")
	}
	d := decoder{fields: st.GetFields()}
	s := &tetris.Snapshot{
		GameID:     d.string("game_id"),
		Hold:       tetris.Shape(d.string("hold")),
		CanHold:    d.fields["can_hold"].GetBoolValue(),
		Score:      d.int("score"),
		Level:      d.int("level"),
		LinesClear: d.int("lines"),
		Danger:     d.fields["danger"].GetBoolValue(),
		Statistics: map[tetris.Shape]int{},
	}

	phase, ok := phases[d.string("phase")]
	if !ok {
		return nil, fmt.Errorf("unknown phase %q", d.string("phase"))
	}
	s.Phase = phase

	for _, v := range d.fields["stack"].GetListValue().GetValues() {
		row := make([]tetris.Shape, 0, len(v.GetStringValue()))
		for _, c := range v.GetStringValue() {
			if c == empty {
				row = append(row, "")
				continue
			}
			row = append(row, tetris.Shape(c))
		}
		s.Stack = append(s.Stack, row)
	}
	for _, v := range d.fields["next"].GetListValue().GetValues() {
		s.Next = append(s.Next, tetris.Shape(v.GetStringValue()))
	}
	for k, v := range d.fields["statistics"].GetStructValue().GetFields() {
		s.Statistics[tetris.Shape(k)] = int(v.GetNumberValue())
	}

	if piece := d.fields["piece"].GetStructValue(); piece != nil {
		p := decoder{fields: piece.GetFields()}
		s.Tetromino = &tetris.Piece{
			Shape:    tetris.Shape(p.string("shape")),
			Rotation: p.int("rotation"),
			Row:      p.int("row"),
			Col:      p.int("col"),
		}
		var err error
		if s.Cells, err = d.points("cells"); err != nil {
			return nil, err
		}
		if s.Ghost, err = d.points("ghost"); err != nil {
			return nil, err
		}
	}
	return s, nil
}

type decoder struct {
	fields map[string]*structpb.Value
}

func (d decoder) string(key string) string { return d.fields[key].GetStringValue() }
func (d decoder) int(key string) int       { return int(d.fields[key].GetNumberValue()) }

func (d decoder) points(key string) ([]tetris.Point, error) {
	var out []tetris.Point
	for _, v := range d.fields[key].GetListValue().GetValues() {
		pair := v.GetListValue().GetValues()
		if len(pair) != 2 {
			return nil, fmt.Errorf("invalid point in %s: %v", key, v)
		}
		out = append(out, tetris.Point{Row: int(pair[0].GetNumberValue()), Col: int(pair[1].GetNumberValue())})
	}
	return out, nil
}
