package entity

// Token is one recognized text string with its bounding box in pixel space.
// Tokens are immutable once normalized; GroupNum is the only field the
// clusterer is allowed to rewrite.
type Token struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FontSize   float64 `json:"fontSize"`
	GroupNum   int     `json:"groupNum"`
}

// DocToken is a text run in document coordinate space (origin bottom-left),
// as produced by the document text-run parser collaborator.
type DocToken struct {
	Text     string
	X        float64
	Y        float64
	Width    float64
	FontSize float64
}

// TextBlock is a cluster of tokens judged to form one logical visual unit:
// an address block, an item row group, a totals panel.
type TextBlock []Token

// Text joins the member token texts with single spaces.
func (b TextBlock) Text() string {
	if len(b) == 0 {
		return ""
	}
	out := b[0].Text
	for _, t := range b[1:] {
		out += " " + t.Text
	}
	return out
}

// Coordinate records where a value was read from, for visualization.
type Coordinate struct {
	Text   string `json:"text"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// CoordinatesOf captures the bounding boxes of a token slice.
func CoordinatesOf(tokens []Token) []Coordinate {
	coords := make([]Coordinate, 0, len(tokens))
	for _, t := range tokens {
		coords = append(coords, Coordinate{
			Text:   t.Text,
			X:      t.X,
			Y:      t.Y,
			Width:  t.Width,
			Height: t.Height,
		})
	}
	return coords
}
