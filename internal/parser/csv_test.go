package parser_test

import (
	"errors"
	"io"
	"testing"

	"github.com/mohammadpnp/product-importer/internal/parser"
)

func TestReaderMapsRowsOntoHeader(t *testing.T) {
	t.Parallel()

	r, err := parser.New([]byte("sku,name,description\nABC-1,Widget,A widget\nabc-2,Gadget,\n"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	first, err := r.Next()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first.Line != 1 {
		t.Fatalf("unexpected line: %d", first.Line)
	}
	if first.Get("sku") != "ABC-1" || first.Get("name") != "Widget" || first.Get("description") != "A widget" {
		t.Fatalf("unexpected record: %v %v %v", first.Get("sku"), first.Get("name"), first.Get("description"))
	}

	second, err := r.Next()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if second.Get("sku") != "abc-2" || second.Get("description") != "" {
		t.Fatalf("unexpected record: %v %v", second.Get("sku"), second.Get("description"))
	}

	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestReaderPadsShortRows(t *testing.T) {
	t.Parallel()

	r, err := parser.New([]byte("sku,name,description\nABC-1\n"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	rec, err := r.Next()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Get("sku") != "ABC-1" {
		t.Fatalf("unexpected sku: %q", rec.Get("sku"))
	}
	if rec.Get("name") != "" || rec.Get("description") != "" {
		t.Fatalf("expected missing fields to be empty, got %q and %q", rec.Get("name"), rec.Get("description"))
	}
}

func TestReaderTruncatesLongRows(t *testing.T) {
	t.Parallel()

	r, err := parser.New([]byte("sku,name\nABC-1,Widget,extra,cells\n"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	rec, err := r.Next()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Get("sku") != "ABC-1" || rec.Get("name") != "Widget" {
		t.Fatalf("unexpected record: %v %v", rec.Get("sku"), rec.Get("name"))
	}
	if rec.Get("extra") != "" {
		t.Fatal("unexpected field beyond header")
	}
}

func TestReaderRejectsInvalidUTF8(t *testing.T) {
	t.Parallel()

	_, err := parser.New([]byte{0xff, 0xfe, 0x00, 0x41})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, parser.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestReaderRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := parser.New(nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, parser.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestReaderReadAllPreservesOrder(t *testing.T) {
	t.Parallel()

	r, err := parser.New([]byte("sku,name\nA,first\nB,second\nA,third\n"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[2].Get("sku") != "A" || records[2].Get("name") != "third" {
		t.Fatalf("unexpected last record: %v %v", records[2].Get("sku"), records[2].Get("name"))
	}
	if records[2].Line != 3 {
		t.Fatalf("unexpected line: %d", records[2].Line)
	}
}
