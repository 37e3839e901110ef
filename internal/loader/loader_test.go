package loader

import (
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/turing/internal/tm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wcw = `2
2,#,9,R
9,x,9,R
9,_,0,L
2,1,4,R,x
4,0,4,R
4,1,4,R
4,#,6,R
6,x,6,R
6,1,7,L,x
7,x,7,L
7,#,8,L
8,0,8,L
8,1,8,L
8,x,2,R
2,0,3,R,x
3,0,3,R
3,1,3,R
3,#,5,R
5,x,5,R
5,0,7,L,x
0
101#101
`

func TestParseExample(t *testing.T) {
	d, err := ParseString(wcw)
	require.NoError(t, err)

	assert.Equal(t, tm.State(2), d.Start)
	assert.Equal(t, "101#101", d.Word)
	assert.Equal(t, 20, d.Table.Len())

	tr, ok := d.Table.Lookup(2, '1')
	require.True(t, ok)
	assert.Equal(t, tm.State(4), tr.To)
	assert.Equal(t, tm.Right, tr.Move)
	assert.Equal(t, tm.WriteSymbol('x'), tr.Write)

	tr, ok = d.Table.Lookup(9, tm.Blank)
	require.True(t, ok)
	assert.Equal(t, tm.Accept, tr.To)
	assert.Equal(t, tm.NoWrite, tr.Write)
}

func TestParseTransition(t *testing.T) {
	tests := []struct {
		line string
		want tm.Transition
	}{
		{"2,#,9,R", tm.Transition{From: 2, Read: '#', To: 9, Move: tm.Right}},
		{"12,1,4,L,x", tm.Transition{From: 12, Read: '1', To: 4, Move: tm.Left, Write: tm.WriteSymbol('x')}},
		{"3,_,1,L,_", tm.Transition{From: 3, Read: tm.Blank, To: tm.Reject, Move: tm.Left, Write: tm.WriteSymbol(tm.Blank)}},
		{"3,,,4,R,,", tm.Transition{From: 3, Read: ',', To: 4, Move: tm.Right, Write: tm.WriteSymbol(',')}},
		{"5,λ,6,R,µ", tm.Transition{From: 5, Read: 'λ', To: 6, Move: tm.Right, Write: tm.WriteSymbol('µ')}},
		{"2,a,0,R, ", tm.Transition{From: 2, Read: 'a', To: tm.Accept, Move: tm.Right, Write: tm.WriteSymbol(' ')}},
		{"2, ,3,L", tm.Transition{From: 2, Read: ' ', To: 3, Move: tm.Left}},
		{"2,a,3,R  ", tm.Transition{From: 2, Read: 'a', To: 3, Move: tm.Right}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseTransition(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTransitionErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
	}{
		{"missing fields", "2,1,4", tm.ErrMalformedDescription},
		{"non-integer state", "a,1,4,R", tm.ErrMalformedDescription},
		{"non-integer target", "2,1,b,R", tm.ErrMalformedDescription},
		{"multi-character symbol", "2,10,4,R", tm.ErrMalformedDescription},
		{"multi-character write", "2,1,4,R,xy", tm.ErrMalformedDescription},
		{"dangling comma", "2,1,4,R,", tm.ErrMalformedDescription},
		{"from accept state", "0,1,4,R", tm.ErrMalformedDescription},
		{"bad direction", "2,1,4,U", tm.ErrInvalidDirection},
		{"lower-case direction", "2,1,4,r", tm.ErrInvalidDirection},
		{"non-ascii direction", "2,1,4,Ř", tm.ErrInvalidDirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTransition(tt.line)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseDescriptionErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
		line int
	}{
		{"empty", "", tm.ErrMalformedDescription, 0},
		{"bad start", "x\n0\nab\n", tm.ErrMalformedDescription, 1},
		{"negative start", "-2\n0\nab\n", tm.ErrMalformedDescription, 1},
		{"no terminator", "2\n2,a,0,R\n", tm.ErrMalformedDescription, 2},
		{"duplicate", "2\n2,a,0,R\n2,a,1,L\n0\na\n", tm.ErrDuplicateTransition, 3},
		{"invalid direction", "2\n2,a,0,S\n0\na\n", tm.ErrInvalidDirection, 2},
		{"blank in word", "2\n0\na_b\n", tm.ErrMalformedDescription, 3},
		{"trailing content", "2\n0\nab\ncd\n", tm.ErrMalformedDescription, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var se *SyntaxError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.line, se.Line)
			assert.True(t, IsLoadError(err))
		})
	}
}

func TestParseToleratesBlankLinesAndMissingWord(t *testing.T) {
	d, err := ParseString("\n  3 \n\n3,a,0,R\n 0\n")
	require.NoError(t, err)
	assert.Equal(t, tm.State(3), d.Start)
	assert.Equal(t, "", d.Word)
	assert.Equal(t, 1, d.Table.Len())
}

func TestRoundTrip(t *testing.T) {
	d, err := ParseString(wcw)
	require.NoError(t, err)

	text := Format(d)
	again, err := ParseString(text)
	require.NoError(t, err)

	assert.Equal(t, d.Start, again.Start)
	assert.Equal(t, d.Word, again.Word)
	assert.Equal(t, d.Table.Transitions(), again.Table.Transitions())

	for _, q := range d.Table.States() {
		for _, s := range "01#x_" {
			want, wantOK := d.Table.Lookup(q, tm.Symbol(s))
			got, gotOK := again.Table.Lookup(q, tm.Symbol(s))
			assert.Equal(t, wantOK, gotOK, "lookup (%d,%c)", q, s)
			assert.Equal(t, want, got, "lookup (%d,%c)", q, s)
		}
	}

	assert.Equal(t, text, Format(again))
}

func TestRoundTripSpaceSymbols(t *testing.T) {
	table, err := tm.NewTableFrom(
		tm.Transition{From: 2, Read: 'a', To: 3, Move: tm.Right, Write: tm.WriteSymbol(' ')},
		tm.Transition{From: 3, Read: ' ', To: tm.Accept, Move: tm.Left},
	)
	require.NoError(t, err)
	d := &Description{Start: 2, Table: table, Word: "a"}

	text := Format(d)
	assert.Equal(t, "2\n2,a,3,R, \n3, ,0,L\n0\na\n", text)

	again, err := ParseString(text)
	require.NoError(t, err)
	assert.Equal(t, d.Table.Transitions(), again.Table.Transitions())
	assert.Equal(t, text, Format(again))
}

func TestParseCRLF(t *testing.T) {
	d, err := ParseString("2\r\n2,a,0,R,b\r\n0\r\naa\r\n")
	require.NoError(t, err)
	assert.Equal(t, "aa", d.Word)

	tr, ok := d.Table.Lookup(2, 'a')
	require.True(t, ok)
	assert.Equal(t, tm.WriteSymbol('b'), tr.Write)
}

func TestFormatKeepsCommaSymbols(t *testing.T) {
	d, err := ParseString("2\n2,,,0,R,,\n0\n,,\n")
	require.NoError(t, err)
	assert.Equal(t, "2\n2,,,0,R,,\n0\n,,\n", Format(d))
}

func TestDescriptionMachine(t *testing.T) {
	d, err := ParseString(strings.Replace(wcw, "101#101", "101#100", 1))
	require.NoError(t, err)

	m, err := d.Machine(tm.Config{TapeSize: 16})
	require.NoError(t, err)
	assert.Equal(t, tm.State(2), m.State())

	_, err = d.Machine(tm.Config{TapeSize: 7})
	assert.ErrorIs(t, err, tm.ErrTapeTooSmall)
	assert.True(t, IsLoadError(err))
}

func TestWithWord(t *testing.T) {
	d, err := ParseString(wcw)
	require.NoError(t, err)

	other, err := d.WithWord("0#0")
	require.NoError(t, err)
	assert.Equal(t, "0#0", other.Word)
	assert.Equal(t, "101#101", d.Word)
	assert.Same(t, d.Table, other.Table)

	_, err = d.WithWord("0 0")
	assert.ErrorIs(t, err, tm.ErrMalformedDescription)
}
