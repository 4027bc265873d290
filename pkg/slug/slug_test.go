// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "One Piece", "one-piece"},
		{"punctuation stripped", "One  Piece!!", "one-piece"},
		{"accents removed", "Béserk Café", "beserk-cafe"},
		{"numbers preserved", "Chapter 1051", "chapter-1051"},
		{"leading and trailing junk", "  --Solo Leveling-- ", "solo-leveling"},
		{"already slugged", "jujutsu-kaisen", "jujutsu-kaisen"},
		{"uppercase collapses", "DRAGON BALL Z", "dragon-ball-z"},
		{"empty input", "", ""},
		{"only symbols", "!!!***", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, From(tc.input))
		})
	}
}

func TestFromIsDeterministic(t *testing.T) {
	first := From("Kimetsu no Yaiba: Mugen Train")
	second := From("Kimetsu no Yaiba: Mugen Train")
	assert.Equal(t, first, second)
}
