package printer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNewDocumentDefaults(t *testing.T) {
	doc := NewDocument(0)
	assert.Equal(t, 32, doc.Width())
	// The stream opens with the initialize command
	assert.Equal(t, []byte{ESC, '@'}, doc.Bytes())
}

func TestSplitWidth(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{"shorter than width", "hola", 10, []string{"hola"}},
		{"exactly width", "1234567890", 10, []string{"1234567890"}},
		{"hard split", "123456789012345", 10, []string{"1234567890", "12345"}},
		{"double split", "aaaaabbbbbcc", 5, []string{"aaaaa", "bbbbb", "cc"}},
		{"empty", "", 10, []string{""}},
		{"accented runes counted once", "Chicharrón de Pescado", 10, []string{"Chicharrón", " de Pescad", "o"}},
		{"rune never severed at boundary", strings.Repeat("a", 4) + "ño", 5, []string{"aaaañ", "o"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitWidth(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			for _, line := range got {
				assert.True(t, utf8.ValidString(line))
			}
		})
	}
}

func TestTextCenteredAccented(t *testing.T) {
	doc := NewDocument(32)
	doc.Reset()
	doc.TextCentered("Chicharrón")

	// 10 characters on 32 columns: 11 spaces of left padding
	out := strings.TrimPrefix(string(doc.Bytes()), string([]byte{ESC, '@'}))
	assert.Equal(t, strings.Repeat(" ", 11)+"Chicharrón\n", out)
}

func TestTextRightAccented(t *testing.T) {
	doc := NewDocument(12)
	doc.Reset()
	doc.TextRight("envío")

	out := strings.TrimPrefix(string(doc.Bytes()), string([]byte{ESC, '@'}))
	assert.Equal(t, "       envío\n", out)
}

func TestTextCenteredLeftBias(t *testing.T) {
	doc := NewDocument(10)
	doc.Reset()
	doc.TextCentered("abc")

	// 7 leftover columns: 3 on the left, 4 implicit on the right
	out := strings.TrimPrefix(string(doc.Bytes()), string([]byte{ESC, '@'}))
	assert.Equal(t, "   abc\n", out)
}

func TestTextCenteredLargeTrimsPadding(t *testing.T) {
	doc := NewDocument(32)
	doc.Reset()
	doc.TextCenteredLarge("PARA LLEVAR")

	out := strings.TrimPrefix(string(doc.Bytes()), string([]byte{ESC, '@'}))
	// (32-11)/2 = 10 columns, minus 5 for the enlarged glyphs
	assert.Equal(t, "     PARA LLEVAR\n", out)
}

func TestTextRight(t *testing.T) {
	doc := NewDocument(10)
	doc.Reset()
	doc.TextRight("abc")

	out := strings.TrimPrefix(string(doc.Bytes()), string([]byte{ESC, '@'}))
	assert.Equal(t, "       abc\n", out)
}

func TestTextWrappedHardSplit(t *testing.T) {
	doc := NewDocument(5)
	doc.Reset()
	doc.TextWrapped("abcdefgh")

	out := strings.TrimPrefix(string(doc.Bytes()), string([]byte{ESC, '@'}))
	assert.Equal(t, "abcde\nfgh\n", out)
}

func TestSeparator(t *testing.T) {
	doc := NewDocument(8)
	doc.Reset()
	doc.Separator('=')

	out := strings.TrimPrefix(string(doc.Bytes()), string([]byte{ESC, '@'}))
	assert.Equal(t, "========\n", out)
}

func TestKeyValue(t *testing.T) {
	doc := NewDocument(16)
	doc.Reset()
	doc.KeyValue("Total", "S/.10.00")

	out := strings.TrimPrefix(string(doc.Bytes()), string([]byte{ESC, '@'}))
	assert.Equal(t, "Total   S/.10.00\n", out)
}

func TestControlCommands(t *testing.T) {
	doc := NewDocument(32)
	doc.Reset()
	doc.SetAlign(AlignCenter).SetBold(true).SetFontSize(FontTall).Cut()

	want := []byte{ESC, '@', ESC, 'a', 1, ESC, 'E', 1, GS, '!', FontTall, GS, 'V', 0x00}
	assert.Equal(t, want, doc.Bytes())
}
