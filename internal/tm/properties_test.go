package tm_test

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/turing/internal/loader"
	"github.com/san-kum/turing/internal/tm"
)

const wcwDescription = `2
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
`

func load(text string) *loader.Description {
	d, err := loader.ParseString(text)
	Expect(err).NotTo(HaveOccurred())
	return d
}

func run(d *loader.Description, cfg tm.Config, obs ...tm.Observer) (*tm.Result, error) {
	m, err := d.Machine(cfg)
	Expect(err).NotTo(HaveOccurred())
	for _, o := range obs {
		m.AddObserver(o)
	}
	return m.Run(context.Background())
}

var _ = Describe("Machine", func() {
	Describe("the w#w recognizer", func() {
		DescribeTable("verdicts",
			func(word string, want tm.Verdict) {
				res, err := run(load(wcwDescription+word+"\n"), tm.DefaultConfig())
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Verdict).To(Equal(want))
			},
			Entry("equal halves", "101#101", tm.Accepted),
			Entry("last symbol differs", "101#100", tm.Rejected),
			Entry("empty halves", "#", tm.Accepted),
			Entry("right half shorter", "10#1", tm.Rejected),
			Entry("no separator", "101", tm.Rejected),
		)
	})

	Describe("step accounting", func() {
		It("advances the step counter by exactly one per step", func() {
			var seen []int
			obs := tm.ObserverFunc(func(s tm.Snapshot) { seen = append(seen, s.Steps) })

			res, err := run(load(wcwDescription+"110#110\n"), tm.DefaultConfig(), obs)
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(HaveLen(res.Steps + 1))
			for i, s := range seen {
				Expect(s).To(Equal(i))
			}
		})
	})

	Describe("transitions without a write", func() {
		It("never change the cell they read", func() {
			d := load(wcwDescription + "1001#1001\n")
			m, err := d.Machine(tm.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())

			for !m.Halted() {
				head := m.Tape().Head()
				before := m.Tape().Window()[head]
				Expect(m.Step()).To(Succeed())
				if last := m.Last(); last != nil && !last.Write.Set {
					Expect(m.Tape().Window()[head]).To(Equal(before))
				}
			}
		})
	})

	Describe("the left edge", func() {
		It("clamps repeated left moves at cell 0", func() {
			d := load("2\n2,a,3,L\n3,a,4,L\n4,a,0,L\n0\na\n")
			var heads []int
			res, err := run(d, tm.DefaultConfig(), tm.ObserverFunc(func(s tm.Snapshot) {
				heads = append(heads, s.Head)
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Verdict).To(Equal(tm.Accepted))
			Expect(heads).To(Equal([]int{0, 0, 0, 0}))
		})
	})

	Describe("the start state", func() {
		It("halts with zero steps when it is the accept state", func() {
			res, err := run(load("0\n2,a,1,R\n0\na\n"), tm.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Steps).To(BeZero())
			Expect(res.Verdict).To(Equal(tm.Accepted))
		})

		It("halts with zero steps when it is the reject state", func() {
			res, err := run(load("1\n0\na\n"), tm.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Steps).To(BeZero())
			Expect(res.Verdict).To(Equal(tm.Rejected))
		})
	})

	Describe("an incomplete transition table", func() {
		It("rejects and moves left instead of aborting", func() {
			d := load("2\n2,a,3,R\n3,a,3,R\n0\naab\n")
			var last tm.Snapshot
			res, err := run(d, tm.DefaultConfig(), tm.ObserverFunc(func(s tm.Snapshot) { last = s }))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Verdict).To(Equal(tm.Rejected))
			Expect(last.Head).To(Equal(1))
			Expect(last.Last).To(BeNil())
			Expect(string(runes(last.Tape))).To(Equal("aab"))
		})
	})

	Describe("the right edge", func() {
		It("fails with a tape overflow instead of wrapping or clamping", func() {
			const n = 6
			d := load("2\n2,_,2,R,1\n2,a,2,R\n0\na\n")
			res, err := run(d, tm.Config{TapeSize: n})
			Expect(err).To(MatchError(tm.ErrTapeOverflow))
			Expect(res.Verdict).To(Equal(tm.Overflow))
			Expect(res.Head).To(Equal(n - 1))
			Expect(res.Width).To(Equal(n))
		})
	})

	Describe("round trip through the text format", func() {
		It("reloads to an equivalent table", func() {
			d := load(wcwDescription + "0#0\n")
			again := load(loader.Format(d))
			for _, q := range d.Table.States() {
				for _, s := range strings.Split("0,1,#,x,_,y", ",") {
					sym := tm.Symbol([]rune(s)[0])
					a, aok := d.Table.Lookup(q, sym)
					b, bok := again.Table.Lookup(q, sym)
					Expect(bok).To(Equal(aok))
					Expect(b).To(Equal(a))
				}
			}
		})
	})
})

func runes(s []tm.Symbol) []rune {
	r := make([]rune, len(s))
	for i, c := range s {
		r[i] = rune(c)
	}
	return r
}
