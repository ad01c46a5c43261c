package layout

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/wgforge/wgeom"
)

// --- Writing ---------------------------------------------------------------

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Write persists the layout in the S-expression exchange format. Cells are
// written in index order, so indices survive a round trip.
func (m *Memory) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "(layout\n  (dbu %s)\n", num(m.DBU))
	for _, l := range m.layers {
		fmt.Fprintf(bw, "  (layer %d %d)\n", l.Layer, l.Datatype)
	}
	for _, c := range m.cells {
		fmt.Fprintf(bw, "  (cell %s", strconv.Quote(c.Name))
		for _, s := range c.Shapes {
			fmt.Fprintf(bw, "\n    (path (layer %d) (width %s)\n      (pts", s.Layer, num(s.Path.Width()))
			for i, p := range s.Path.Points() {
				if i > 0 && i%8 == 0 {
					bw.WriteString("\n       ")
				}
				fmt.Fprintf(bw, " (xy %s %s)", num(p.X()), num(p.Y()))
			}
			bw.WriteString("))")
		}
		for _, inst := range c.Insts {
			mirror := ""
			if inst.Trans.Mirror {
				mirror = " mirror"
			}
			fmt.Fprintf(bw, "\n    (inst %d (trans %d%s %s %s)", inst.Child, inst.Trans.Rot, mirror,
				num(inst.Trans.Disp.X()), num(inst.Trans.Disp.Y()))
			if a := inst.Array; a != nil {
				fmt.Fprintf(bw, " (array %s %s %s %s %d %d)", num(a.A.X()), num(a.A.Y()),
					num(a.B.X()), num(a.B.Y()), a.NA, a.NB)
			}
			bw.WriteString(")")
		}
		bw.WriteString(")\n")
	}
	bw.WriteString(")\n")
	return bw.Flush()
}

// WriteFile writes the layout to a file.
func (m *Memory) WriteFile(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = m.Write(f); err != nil {
		f.Close()
		return err
	}
	tracer().Infof("wrote %s to %s", m, name)
	return f.Close()
}

// --- Reading ---------------------------------------------------------------

var exchangeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `;[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Number", Pattern: `[-+]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
})

type fileAST struct {
	DBU    float64     `LParen "layout" LParen "dbu" @Number RParen`
	Layers []*layerAST `@@*`
	Cells  []*cellAST  `@@* RParen`
}

type layerAST struct {
	Layer    int `LParen "layer" @Number`
	Datatype int `@Number RParen`
}

type cellAST struct {
	Name  string     `LParen "cell" @String`
	Items []*itemAST `@@* RParen`
}

type itemAST struct {
	Path *pathAST `  @@`
	Inst *instAST `| @@`
}

type pathAST struct {
	Layer int         `LParen "path" LParen "layer" @Number RParen`
	Width float64     `LParen "width" @Number RParen`
	Pts   []*pointAST `LParen "pts" @@+ RParen RParen`
}

type pointAST struct {
	X float64 `LParen "xy" @Number`
	Y float64 `@Number RParen`
}

type instAST struct {
	Child int       `LParen "inst" @Number`
	Trans *transAST `@@`
	Array *arrayAST `@@? RParen`
}

type transAST struct {
	Rot    int     `LParen "trans" @Number`
	Mirror bool    `@"mirror"?`
	X      float64 `@Number`
	Y      float64 `@Number RParen`
}

type arrayAST struct {
	AX float64 `LParen "array" @Number`
	AY float64 `@Number`
	BX float64 `@Number`
	BY float64 `@Number`
	NA int     `@Number`
	NB int     `@Number RParen`
}

var exchangeParser = participle.MustBuild[fileAST](
	participle.Lexer(exchangeLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(3),
)

// Read parses a layout in the exchange format.
func Read(r io.Reader) (*Memory, error) {
	ast, err := exchangeParser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("%w: exchange format: %v", wgeom.ErrInvalidParameter, err)
	}
	return ast.memory()
}

// ReadString parses a layout from a string.
func ReadString(s string) (*Memory, error) {
	return Read(strings.NewReader(s))
}

// ReadFile parses a layout file.
func ReadFile(name string) (*Memory, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	tracer().Infof("read %s from %s", m, name)
	return m, nil
}

func (ast *fileAST) memory() (*Memory, error) {
	m := NewMemory()
	m.DBU = ast.DBU
	for _, l := range ast.Layers {
		m.Layer(l.Layer, l.Datatype)
	}
	// create all cells first, instances may refer forward
	for _, c := range ast.Cells {
		if _, err := m.CreateCell(c.Name); err != nil {
			return nil, err
		}
	}
	for ci, c := range ast.Cells {
		for _, item := range c.Items {
			switch {
			case item.Path != nil:
				pts := make([]wgeom.Pair, len(item.Path.Pts))
				for i, p := range item.Path.Pts {
					pts[i] = wgeom.P(p.X, p.Y)
				}
				path, err := wgeom.NewPath(pts, item.Path.Width)
				if err != nil {
					return nil, fmt.Errorf("cell %q: %w", c.Name, err)
				}
				if err = m.Insert(CellIndex(ci), LayerIndex(item.Path.Layer), path); err != nil {
					return nil, fmt.Errorf("cell %q: %w", c.Name, err)
				}
			case item.Inst != nil:
				in := item.Inst
				trans := Trans{Rot: in.Trans.Rot, Mirror: in.Trans.Mirror, Disp: wgeom.P(in.Trans.X, in.Trans.Y)}
				var arr *Array
				if in.Array != nil {
					arr = &Array{
						A:  wgeom.P(in.Array.AX, in.Array.AY),
						B:  wgeom.P(in.Array.BX, in.Array.BY),
						NA: in.Array.NA,
						NB: in.Array.NB,
					}
				}
				if err := m.Instantiate(CellIndex(ci), CellIndex(in.Child), trans, arr); err != nil {
					return nil, fmt.Errorf("cell %q: %w", c.Name, err)
				}
			}
		}
	}
	return m, nil
}
