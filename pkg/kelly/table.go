package kelly

import (
	"regexp"
	"strconv"
	"strings"
)

// paragraphSep separates scraped paragraphs
const paragraphSep = "\n\n"

// ordinalPrefix matches the "<N>. " numbering the scraper puts in front of each paragraph
var ordinalPrefix = regexp.MustCompile(`^(\d+)\.\s`)

// RowResult is one sized table row.
// Row is the 0-based index of the row's paragraph triple and SourceOrdinal the
// scraper's number on the row's first paragraph (0 when absent). Writers pair
// results with page rows using these rather than slice position.
type RowResult struct {
	Row           int     `json:"row"`
	SourceOrdinal int     `json:"sourceOrdinal"`
	EV            string  `json:"ev"`
	Odds          string  `json:"odds"`
	BookPrice     string  `json:"bookPrice"`
	ImpliedOdds   string  `json:"impliedOdds"`
	BetSize       string  `json:"betSize"`
	Status        Outcome `json:"status"`
}

// ParseTableBlock sizes every complete (ev, true odds, book odds) paragraph triple in raw.
// Paragraphs are split on blank lines after trimming the block; a trailing partial
// triple is dropped. Output order matches input order.
func ParseTableBlock(raw string, params Params) []RowResult {
	paragraphs := strings.Split(strings.TrimSpace(raw), paragraphSep)

	rows := make([]RowResult, 0, len(paragraphs)/3)
	for i := 0; i+2 < len(paragraphs); i += 3 {
		ev, ordinal := stripOrdinal(paragraphs[i])
		trueOdds, _ := stripOrdinal(paragraphs[i+1])
		bookOdds, _ := stripOrdinal(paragraphs[i+2])

		bet := KellyBetSize(trueOdds, bookOdds, params)

		rows = append(rows, RowResult{
			Row:           i / 3,
			SourceOrdinal: ordinal,
			EV:            ev,
			Odds:          trueOdds,
			BookPrice:     bookOdds,
			ImpliedOdds:   ImpliedProbability(trueOdds).String(),
			BetSize:       bet.String(),
			Status:        bet.Outcome,
		})
	}

	return rows
}

// stripOrdinal removes a leading "<N>. " and returns the rest with N
func stripOrdinal(paragraph string) (string, int) {
	m := ordinalPrefix.FindStringSubmatchIndex(paragraph)
	if m == nil {
		return paragraph, 0
	}
	n, err := strconv.Atoi(paragraph[m[2]:m[3]])
	if err != nil {
		n = 0
	}
	return paragraph[m[1]:], n
}
