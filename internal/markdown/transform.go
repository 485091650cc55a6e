package markdown

import "strings"

// Transform converts one page of OCR markdown into an ordered block
// sequence. It never fails: lines that match no markdown shape degrade to
// plain paragraph blocks. A single forward pass classifies each line;
// consecutive bullet lines accumulate and are flushed as a group when a
// blank line or the end of input is reached.
func Transform(markdown string) []Block {
	lines := strings.Split(markdown, "\n")

	var blocks []Block
	var pending []string

	flushList := func() {
		for i, text := range pending {
			blocks = append(blocks, Block{
				Kind:        KindListItem,
				Text:        text,
				LastInGroup: i == len(pending)-1,
			})
		}
		pending = pending[:0]
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, Block{Kind: KindHeading, Level: 3, Text: line[4:]})
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, Block{Kind: KindHeading, Level: 2, Text: line[3:]})
		case strings.HasPrefix(line, "# "):
			blocks = append(blocks, Block{Kind: KindHeading, Level: 1, Text: line[2:]})
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			pending = append(pending, line[2:])
		case strings.TrimSpace(line) == "":
			if len(pending) > 0 {
				flushList()
			} else {
				blocks = append(blocks, Block{Kind: KindSpacer})
			}
		default:
			blocks = append(blocks, Block{Kind: KindParagraph, Runs: splitRuns(line)})
		}
	}
	// Input that ends mid-list still terminates the group.
	flushList()

	return blocks
}

// splitRuns breaks a paragraph line into styled runs in reading order.
// Bold spans are delimited by ** and italic spans by a single *; a marker
// with no closing counterpart is kept as literal text.
func splitRuns(line string) []Run {
	var runs []Run
	var plain strings.Builder

	flushPlain := func() {
		if plain.Len() > 0 {
			runs = append(runs, Run{Text: plain.String()})
			plain.Reset()
		}
	}

	i := 0
	for i < len(line) {
		if strings.HasPrefix(line[i:], "**") {
			if end := strings.Index(line[i+2:], "**"); end >= 0 {
				flushPlain()
				if end > 0 {
					runs = append(runs, Run{Text: line[i+2 : i+2+end], Bold: true})
				}
				i += end + 4
				continue
			}
		} else if line[i] == '*' {
			if end := strings.IndexByte(line[i+1:], '*'); end >= 0 {
				flushPlain()
				if end > 0 {
					runs = append(runs, Run{Text: line[i+1 : i+1+end], Italic: true})
				}
				i += end + 2
				continue
			}
		}
		plain.WriteByte(line[i])
		i++
	}
	flushPlain()

	return runs
}
