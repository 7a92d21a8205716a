package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"rightmove-engine/internal/domain"
)

func TestPrintTableTruncatesOnRuneBoundary(t *testing.T) {
	// long description of multi-byte runes; a byte-indexed cut would split one
	long := strings.Repeat("é", 80)
	var b strings.Builder
	printTable(&b, []domain.PropertyRecord{
		{Price: 150000, Beds: 3, Address: "1 First Street", Description: long},
	})

	out := b.String()
	if !utf8.ValidString(out) {
		t.Fatal("table output contains a split rune")
	}
	if !strings.Contains(out, strings.Repeat("é", 57)+"...") {
		t.Error("long description was not truncated to 57 runes")
	}
}

func TestPrintTableKeepsShortDescriptions(t *testing.T) {
	var b strings.Builder
	printTable(&b, []domain.PropertyRecord{
		{Price: 85000, Beds: 1, Address: "2 Second Street", Description: "Second."},
	})
	if !strings.Contains(b.String(), "Second.") {
		t.Errorf("short description altered: %q", b.String())
	}
}
