package cfg

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Builder assembles a Graph incrementally, either by parsing the textual
// notation via Parse or by calling AddBlock/AddEdge/AddInstruction
// directly.
//
// Notation, one statement per line, blank lines and lines starting with
// "#" ignored:
//
//	label:                 begins a new block
//	x := op a, b, ...      appends an assignment to the current block
//	goto label             unconditional edge, ends the current block
//	if x goto l1 else l2   conditional edge, ends the current block
//	ret                    no successors, ends the current block
type Builder struct {
	g       *Graph
	current *Block
	errs    []error
}

// NewBuilder creates an empty Builder. The first block passed to AddBlock
// becomes the graph's entry.
func NewBuilder() *Builder {
	return &Builder{
		g: &Graph{blocks: map[string]*Block{}},
	}
}

// AddBlock starts a new block with the given label. It becomes the
// Builder's current block, into which subsequent instructions and edges
// are added.
func (b *Builder) AddBlock(label string) *Block {
	if _, exists := b.g.blocks[label]; exists {
		b.errs = append(b.errs, fmt.Errorf("cfg: duplicate block label %q", label))
	}
	blk := &Block{Label: label, graph: b.g}
	b.g.blocks[label] = blk
	b.g.order = append(b.g.order, label)
	if b.g.entry == "" {
		b.g.entry = label
	}
	b.current = blk
	return blk
}

// AddInstruction appends an instruction to the current block.
func (b *Builder) AddInstruction(insn Instruction) {
	if b.current == nil {
		b.errs = append(b.errs, fmt.Errorf("cfg: instruction outside of any block: %v", insn))
		return
	}
	b.current.Instructions = append(b.current.Instructions, insn)
}

// AddEdge records a successor label for the current block.
func (b *Builder) AddEdge(label string) {
	if b.current == nil {
		b.errs = append(b.errs, fmt.Errorf("cfg: edge outside of any block: -> %s", label))
		return
	}
	b.current.succLabels = append(b.current.succLabels, label)
}

// Finish validates the graph — every referenced label must have been
// defined, and an entry must exist — and returns it, or the accumulated
// errors.
func (b *Builder) Finish() (*Graph, error) {
	if len(b.g.blocks) == 0 {
		return nil, fmt.Errorf("cfg: empty graph")
	}
	for _, blk := range b.g.blocks {
		for _, l := range blk.succLabels {
			if _, ok := b.g.blocks[l]; !ok {
				b.errs = append(b.errs, fmt.Errorf("cfg: block %q references undefined label %q", blk.Label, l))
			}
		}
	}
	if len(b.errs) > 0 {
		msgs := make([]string, len(b.errs))
		for i, e := range b.errs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("cfg: %d error(s):\n%s", len(b.errs), strings.Join(msgs, "\n"))
	}
	return b.g, nil
}

// Parse reads the textual notation from r into a fresh Builder and
// finishes it.
func Parse(r io.Reader) (*Graph, error) {
	b := NewBuilder()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			b.AddBlock(strings.TrimSuffix(line, ":"))
			continue
		}

		if err := b.parseStatement(line); err != nil {
			b.errs = append(b.errs, fmt.Errorf("cfg: line %d: %w", lineNo, err))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return b.Finish()
}

func (b *Builder) parseStatement(line string) error {
	fields := strings.Fields(line)
	switch {
	case line == "ret":
		b.AddInstruction(Instruction{Op: "ret"})

	case fields[0] == "goto":
		if len(fields) != 2 {
			return fmt.Errorf("malformed goto: %q", line)
		}
		b.AddInstruction(Instruction{Op: "goto", Args: []string{fields[1]}})
		b.AddEdge(fields[1])

	case fields[0] == "if":
		// if x goto l1 else l2
		if len(fields) != 6 || fields[2] != "goto" || fields[4] != "else" {
			return fmt.Errorf("malformed if: %q", line)
		}
		cond, thenLabel, elseLabel := fields[1], fields[3], fields[5]
		b.AddInstruction(Instruction{Op: "if", Args: []string{cond, thenLabel, elseLabel}})
		b.AddEdge(thenLabel)
		b.AddEdge(elseLabel)

	case strings.Contains(line, ":="):
		parts := strings.SplitN(line, ":=", 2)
		dst := strings.TrimSpace(parts[0])
		rhs := strings.TrimSpace(parts[1])
		rhsFields := strings.FieldsFunc(rhs, func(r rune) bool { return r == ' ' || r == ',' })
		var op string
		var args []string
		if len(rhsFields) > 0 {
			op, args = rhsFields[0], rhsFields[1:]
		}
		b.AddInstruction(Instruction{Op: op, Dst: dst, Args: args})

	default:
		return fmt.Errorf("unrecognized statement: %q", line)
	}
	return nil
}
