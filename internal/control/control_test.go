package control

import (
	"testing"

	"github.com/sambacha/jgo/internal/token"
)

func nameLine(words ...string) Line {
	ws := make([]token.Word, len(words))
	for i, w := range words {
		ws[i] = token.Name(w)
	}
	return Line{Words: ws}
}

func TestResolveIfElse(t *testing.T) {
	lines := []Line{
		nameLine("if.", "y"),
		nameLine("a"),
		nameLine("else."),
		nameLine("b"),
		nameLine("end."),
	}
	words, err := Resolve(lines)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 1 || words[0].Kind != token.KIfBlock {
		t.Fatalf("got %+v", words)
	}
	block := words[0].Control.(IfBlock)
	if len(block.Branches) != 1 || len(block.Else) != 1 {
		t.Fatalf("block = %+v", block)
	}
}

func TestResolveForWithBothNames(t *testing.T) {
	lines := []Line{
		nameLine("for_item_idx.", "y"),
		nameLine("item"),
		nameLine("end."),
	}
	words, err := Resolve(lines)
	if err != nil {
		t.Fatal(err)
	}
	block := words[0].Control.(ForBlock)
	if block.ItemVar != "item" || block.IndexVar != "idx" {
		t.Fatalf("block = %+v", block)
	}
}

func TestResolveNestedIfInsideWhile(t *testing.T) {
	lines := []Line{
		nameLine("while.", "y"),
		nameLine("if.", "x"),
		nameLine("a"),
		nameLine("end."),
		nameLine("end."),
	}
	words, err := Resolve(lines)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 1 || words[0].Kind != token.KWhileBlock {
		t.Fatalf("got %+v", words)
	}
	wb := words[0].Control.(WhileBlock)
	if len(wb.Body) != 1 {
		t.Fatalf("expected 1 grouped body line (the nested if.), got %d", len(wb.Body))
	}
}

func TestResolveIfWithInlineDo(t *testing.T) {
	lines := []Line{
		nameLine("if.", "y", "do."),
		nameLine("a"),
		nameLine("end."),
	}
	words, err := Resolve(lines)
	if err != nil {
		t.Fatal(err)
	}
	block := words[0].Control.(IfBlock)
	if len(block.Branches) != 1 {
		t.Fatalf("block = %+v", block)
	}
	cond := block.Branches[0].Cond
	if len(cond) != 1 || cond[0].Name != "y" {
		t.Fatalf("cond = %+v, want just [y] with do. stripped", cond)
	}
}

func TestUnmatchedEndIsControlError(t *testing.T) {
	lines := []Line{nameLine("end.")}
	if _, err := Resolve(lines); err == nil {
		t.Fatal("expected a ControlError for a stray end.")
	}
}
