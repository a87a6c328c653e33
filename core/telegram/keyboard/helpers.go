package keyboard

import tele "gopkg.in/telebot.v4"

// InlineBtn describes a single inline keyboard button. Exactly one of
// Data or URL should be set.
type InlineBtn struct {
	Text string
	// Data becomes the callback key; Payload is appended after '|'.
	Data    string
	Payload string
	// URL makes the button open a link instead of firing a callback.
	URL string
}

// Inline builds a reply markup from rows of buttons.
func Inline(rows ...[]InlineBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	built := make([][]tele.Btn, 0, len(rows))
	for _, row := range rows {
		btns := make([]tele.Btn, 0, len(row))
		for _, b := range row {
			switch {
			case b.URL != "":
				btns = append(btns, markup.URL(b.Text, b.URL))
			default:
				btns = append(btns, markup.Data(b.Text, b.Data, b.Payload))
			}
		}
		built = append(built, btns)
	}
	markupRows := make([]tele.Row, 0, len(built))
	for _, btns := range built {
		markupRows = append(markupRows, markup.Row(btns...))
	}
	markup.Inline(markupRows...)
	return markup
}

// Row is a convenience for a single-row keyboard.
func Row(btns ...InlineBtn) *tele.ReplyMarkup {
	return Inline(btns)
}
