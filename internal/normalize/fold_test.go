package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"１２．５ｇ", "12.5g"},
		{"＃０１　レッド", "#01 レッド"},
		{"￥２，２００", "¥2,200"},
		{"３〜５ｇ", "3~5g"},
		{"３～５ｇ", "3~5g"},
		{"ＳＰ：サスペンド", "SP:サスペンド"},
		{"ジャークベイト", "ジャークベイト"},
		{"already ascii", "already ascii"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestFoldIdempotent(t *testing.T) {
	for _, s := range []string{"１/２ｏｚ", "税込￥１，９８０", "ｶﾀｶﾅ", "〜ミノー〜", ""} {
		once := Fold(s)
		assert.Equal(t, once, Fold(once), s)
	}
}
