package config

import (
	"sort"

	"github.com/san-kum/turing/internal/loader"
)

type Preset struct {
	Summary     string
	Description string
	// Words are sample inputs used by batch runs.
	Words []string
}

var Presets = map[string]Preset{
	"wcw": {
		Summary: "recognizes { w#w | w in {0,1}* }",
		Description: `2
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
`,
		Words: []string{"101#101", "101#100", "#", "0#0", "10#1", "101"},
	},
	"unary-add": {
		Summary: "adds two unary numbers written as 1..1+1..1",
		Description: `2
2,1,2,R
2,+,3,R,1
3,1,3,R
3,_,4,L
4,1,0,L,_
0
11+111
`,
		Words: []string{"11+111", "+1", "1+", "+"},
	},
	"parity": {
		Summary: "accepts binary words with an even number of 1s",
		Description: `2
2,0,2,R
2,1,3,R
2,_,0,L
3,0,3,R
3,1,2,R
3,_,1,L
0
1001
`,
		Words: []string{"1001", "1011", "", "0", "1"},
	},
	"runaway": {
		Summary: "walks right forever and overflows the tape",
		Description: `2
2,_,2,R
2,a,2,R
0
a
`,
		Words: []string{"a"},
	},
}

func GetPreset(name string) (Preset, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load parses the preset's description.
func (p Preset) Load() (*loader.Description, error) {
	return loader.ParseString(p.Description)
}
