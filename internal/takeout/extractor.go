package takeout

import (
	"fmt"
	"io"
	"strings"

	"watchlens/domain/core"

	"golang.org/x/net/html"
)

// Class markers of the Takeout export layout. Each event lives in one
// mdl-grid: a primary body cell (verb, title anchor, channel anchor, trailing
// timestamp text) and a secondary caption cell (products, ad details).
const (
	classContentCell = "content-cell"
	classBodyCell    = "mdl-typography--body-1"
	classCaptionCell = "mdl-typography--caption"

	adMarker = "From Google Ads"
)

// Extract walks the document and returns one Fragment per viewing event, in
// document order. Advertisement fragments and fragments opening with an
// unknown verb are dropped entirely, not emitted as empty records.
//
// A document that cannot be read at all fails with core.ErrNotParseable. A
// document with no event cells (a non-Takeout HTML file) yields an empty
// slice; the processor turns that into the distinguishable "no valid records"
// condition.
func Extract(r io.Reader) ([]Fragment, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNotParseable, err)
	}

	// Candidates keep their document position even when later dropped, so a
	// trailing caption cell always annotates the body cell it belongs to.
	type candidate struct {
		frag  Fragment
		valid bool
		isAd  bool
	}
	var candidates []candidate

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" {
			class := attrValue(n, "class")
			if strings.Contains(class, classContentCell) {
				switch {
				case strings.Contains(class, classBodyCell):
					frag, ok := parseBodyCell(n)
					candidates = append(candidates, candidate{frag: frag, valid: ok})
					return // cell contents already consumed
				case strings.Contains(class, classCaptionCell):
					if len(candidates) > 0 && strings.Contains(innerText(n), adMarker) {
						candidates[len(candidates)-1].isAd = true
					}
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var fragments []Fragment
	for _, c := range candidates {
		if c.valid && !c.isAd {
			fragments = append(fragments, c.frag)
		}
	}
	return fragments, nil
}

// cellLine is one <br>-separated line of a body cell: its visible text plus
// any anchors that occurred on it.
type cellLine struct {
	text  string
	links []cellLink
}

type cellLink struct {
	text string
	href string
}

// parseBodyCell splits a body cell into lines and interprets them:
// line 0 holds the verb and the video anchor (or bare title text), an
// optional middle line holds the channel anchor, and the last link-free line
// holds the raw timestamp. Returns ok=false for cells opening with neither
// verb phrase.
func parseBodyCell(cell *html.Node) (Fragment, bool) {
	lines := splitLines(cell)
	if len(lines) == 0 {
		return Fragment{}, false
	}

	var frag Fragment
	first := lines[0]

	switch {
	case strings.HasPrefix(first.text, VerbListened):
		frag.Verb = VerbListened
	case strings.HasPrefix(first.text, VerbWatched):
		frag.Verb = VerbWatched
	default:
		return Fragment{}, false
	}

	if len(first.links) > 0 {
		frag.Title = first.links[0].text
		frag.VideoURL = first.links[0].href
	} else {
		frag.Title = strings.TrimSpace(strings.TrimPrefix(first.text, frag.Verb))
	}
	if frag.Title == "" && frag.VideoURL == "" {
		// Nothing to identify the event by; ad stubs look like this.
		return Fragment{}, false
	}

	rest := lines[1:]
	if len(rest) > 0 {
		last := rest[len(rest)-1]
		if len(last.links) == 0 && last.text != "" {
			frag.RawTimestamp = last.text
			rest = rest[:len(rest)-1]
		}
	}
	for _, ln := range rest {
		if len(ln.links) > 0 {
			frag.ChannelTitle = ln.links[0].text
			frag.ChannelURL = ln.links[0].href
			break
		}
	}

	return frag, true
}

// splitLines flattens a cell's inline content into <br>-separated lines.
// Empty lines are dropped.
func splitLines(cell *html.Node) []cellLine {
	var lines []cellLine
	current := cellLine{}
	var text strings.Builder

	flush := func() {
		current.text = strings.TrimSpace(text.String())
		if current.text != "" || len(current.links) > 0 {
			lines = append(lines, current)
		}
		current = cellLine{}
		text.Reset()
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode:
				text.WriteString(c.Data)
			case c.Type == html.ElementNode && c.Data == "br":
				flush()
			case c.Type == html.ElementNode && c.Data == "a":
				current.links = append(current.links, cellLink{
					text: strings.TrimSpace(innerText(c)),
					href: attrValue(c, "href"),
				})
			default:
				walk(c)
			}
		}
	}
	walk(cell)
	flush()

	return lines
}

// innerText concatenates all text nodes under n.
func innerText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
