package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ascii", "John Smith", "john smith"},
		{"vietnamese diacritics", "Nguyễn Văn Bình", "nguyen van binh"},
		{"dyet", "Đặng Thùy Trâm", "dang thuy tram"},
		{"mixed case", "TRẦN Hưng Đạo", "tran hung dao"},
		{"extra whitespace", "  Lê   Lợi  ", "le loi"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.input))
		})
	}
}

func TestFold_Idempotent(t *testing.T) {
	in := "Phạm Ngũ Lão"
	once := Fold(in)
	assert.Equal(t, once, Fold(once))
}
