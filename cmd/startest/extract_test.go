package main

import (
	"strings"
	"testing"
)

func TestExtractSingleOkCase(t *testing.T) {
	input := "// test assignment\n" +
		"x = 1\n"
	cases, err := Extract(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(cases) != 1 {
		t.Fatalf("got %d cases, want 1", len(cases))
	}
	if cases[0].Name != "assignment" || cases[0].Err {
		t.Errorf("got %+v", cases[0])
	}
	if cases[0].Code != "x = 1" {
		t.Errorf("got code %q", cases[0].Code)
	}
}

func TestExtractErrCase(t *testing.T) {
	input := "// test_err bad-def\n" +
		"def\n"
	cases, err := Extract(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(cases) != 1 || !cases[0].Err {
		t.Fatalf("got %+v", cases)
	}
}

func TestExtractMultipleCases(t *testing.T) {
	input := "// test one\n" +
		"x = 1\n" +
		"\n" +
		"// test_err two\n" +
		"def\n" +
		"\n" +
		"// test three\n" +
		"y = 2\n"
	cases, err := Extract(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(cases) != 3 {
		t.Fatalf("got %d cases, want 3", len(cases))
	}
	names := []string{cases[0].Name, cases[1].Name, cases[2].Name}
	want := []string{"one", "two", "three"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("case %d: got name %q, want %q", i, names[i], want[i])
		}
	}
	if cases[1].Err != true {
		t.Error("expected case 1 to be an err case")
	}
}

func TestExtractIgnoresContentBeforeFirstDirective(t *testing.T) {
	input := "// just a comment, not a directive\n" +
		"// test real\n" +
		"pass\n"
	cases, err := Extract(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(cases) != 1 || cases[0].Name != "real" {
		t.Fatalf("got %+v", cases)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	cases, err := Extract(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if len(cases) != 0 {
		t.Errorf("got %d cases, want 0", len(cases))
	}
}
