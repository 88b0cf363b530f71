package render

import "github.com/xuri/excelize/v2"

// stylePalette builds every cell style once per render and hands out the
// excelize style ids. Currency-dependent styles are cached by format string.
type stylePalette struct {
	f *excelize.File

	clear      int
	caption    int
	infoLabel  int
	infoValue  int
	header     int
	data       int
	totalLabel int

	price      map[string]int // data style + price number format
	totalValue map[string]int // bold + price number format

	sepBar       int
	banner       int
	summaryLabel int
	summaryValue map[string]int
	grandLabel   int
	grandValue   map[string]int
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
}

func mediumBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 2, Color: "000000"},
		{Type: "right", Style: 2, Color: "000000"},
		{Type: "top", Style: 2, Color: "000000"},
		{Type: "bottom", Style: 2, Color: "000000"},
	}
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func newStylePalette(f *excelize.File) (*stylePalette, error) {
	p := &stylePalette{
		f:            f,
		price:        make(map[string]int),
		totalValue:   make(map[string]int),
		summaryValue: make(map[string]int),
		grandValue:   make(map[string]int),
	}

	var err error
	if p.clear, err = f.NewStyle(&excelize.Style{}); err != nil {
		return nil, err
	}
	if p.caption, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Size: 9, Color: "808080"},
	}); err != nil {
		return nil, err
	}
	if p.infoLabel, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 9},
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:    thinBorder(),
	}); err != nil {
		return nil, err
	}
	if p.infoValue, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 9},
		Border: thinBorder(),
	}); err != nil {
		return nil, err
	}
	if p.header, err = f.NewStyle(&excelize.Style{
		Fill:      solidFill("3498DB"),
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	}); err != nil {
		return nil, err
	}
	if p.data, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	}); err != nil {
		return nil, err
	}
	if p.totalLabel, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
	}); err != nil {
		return nil, err
	}
	if p.sepBar, err = f.NewStyle(&excelize.Style{
		Fill:   solidFill("2C3E50"),
		Border: thinBorder(),
	}); err != nil {
		return nil, err
	}
	if p.banner, err = f.NewStyle(&excelize.Style{
		Fill:      solidFill("1A5276"),
		Font:      &excelize.Font{Bold: true, Size: 13, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	}); err != nil {
		return nil, err
	}
	if p.summaryLabel, err = f.NewStyle(&excelize.Style{
		Fill:      solidFill("EBF5FB"),
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "2C3E50"},
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:    mediumBorder(),
	}); err != nil {
		return nil, err
	}
	if p.grandLabel, err = f.NewStyle(&excelize.Style{
		Fill:      solidFill("1A5276"),
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:    mediumBorder(),
	}); err != nil {
		return nil, err
	}

	return p, nil
}

// priceStyle returns the item-cell style carrying the given number format.
func (p *stylePalette) priceStyle(format string) (int, error) {
	if id, ok := p.price[format]; ok {
		return id, nil
	}
	id, err := p.f.NewStyle(&excelize.Style{
		Alignment:    &excelize.Alignment{Vertical: "center", WrapText: true},
		Border:       thinBorder(),
		CustomNumFmt: &format,
	})
	if err != nil {
		return 0, err
	}
	p.price[format] = id
	return id, nil
}

// totalValueStyle returns the bold totals-cell style carrying the given
// number format.
func (p *stylePalette) totalValueStyle(format string) (int, error) {
	if id, ok := p.totalValue[format]; ok {
		return id, nil
	}
	id, err := p.f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 11},
		CustomNumFmt: &format,
	})
	if err != nil {
		return 0, err
	}
	p.totalValue[format] = id
	return id, nil
}

// summaryValueStyle returns the emphasized summary value style for the
// given number format.
func (p *stylePalette) summaryValueStyle(format string) (int, error) {
	if id, ok := p.summaryValue[format]; ok {
		return id, nil
	}
	id, err := p.f.NewStyle(&excelize.Style{
		Fill:         solidFill("D4E6F1"),
		Font:         &excelize.Font{Bold: true, Size: 12, Color: "1A5276"},
		Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:       mediumBorder(),
		CustomNumFmt: &format,
	})
	if err != nil {
		return 0, err
	}
	p.summaryValue[format] = id
	return id, nil
}

// grandValueStyle returns the grand-total value style for the given number
// format.
func (p *stylePalette) grandValueStyle(format string) (int, error) {
	if id, ok := p.grandValue[format]; ok {
		return id, nil
	}
	id, err := p.f.NewStyle(&excelize.Style{
		Fill:         solidFill("1A5276"),
		Font:         &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:       mediumBorder(),
		CustomNumFmt: &format,
	})
	if err != nil {
		return 0, err
	}
	p.grandValue[format] = id
	return id, nil
}
