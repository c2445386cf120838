// Package report aggregates classification outcomes for auditing.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"jmoreno/gastos-csv/internal/models"
)

// Summary is one run's aggregate view: counts per kind, per top-level
// category and per cascade layer. The layer counts are the provenance audit
// the cascade's layer field exists for.
type Summary struct {
	RunID   string
	Total   int
	ByKind  map[string]int
	ByCat1  map[string]int
	ByLayer map[int]int
}

// NewSummary creates an empty Summary with a fresh run ID.
func NewSummary() *Summary {
	return &Summary{
		RunID:   uuid.New().String(),
		ByKind:  make(map[string]int),
		ByCat1:  make(map[string]int),
		ByLayer: make(map[int]int),
	}
}

// AddResult records one classification outcome.
func (s *Summary) AddResult(kind, cat1 string, layer int) {
	s.Total++
	s.ByKind[kind]++
	s.ByCat1[cat1]++
	s.ByLayer[layer]++
}

// FromTransactions builds a Summary over stored rows. Layer provenance is
// not persisted, so ByLayer stays empty here.
func FromTransactions(txs []*models.Transaction) *Summary {
	s := NewSummary()
	for _, t := range txs {
		kind := t.Kind
		if kind == "" {
			kind = models.KindUnclassified
		}
		cat1 := t.Cat1
		if cat1 == "" {
			cat1 = models.Cat1Unclassified
		}
		s.Total++
		s.ByKind[kind]++
		s.ByCat1[cat1]++
	}
	return s
}

// Render formats the summary as a plain text table.
func (s *Summary) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run %s: %d transactions\n\n", s.RunID, s.Total)

	b.WriteString("By kind:\n")
	writeCounts(&b, s.ByKind)

	b.WriteString("\nBy category:\n")
	writeCounts(&b, s.ByCat1)

	if len(s.ByLayer) > 0 {
		b.WriteString("\nBy layer:\n")
		layers := make([]int, 0, len(s.ByLayer))
		for l := range s.ByLayer {
			layers = append(layers, l)
		}
		sort.Ints(layers)
		for _, l := range layers {
			fmt.Fprintf(&b, "  %-24d %6d\n", l, s.ByLayer[l])
		}
	}

	return b.String()
}

func writeCounts(b *strings.Builder, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "  %-24s %6d\n", k, counts[k])
	}
}
