package geo

import (
	"context"
	"errors"
	"runtime"
	"testing"
)

func TestNopLocatorReportsNoLocator(t *testing.T) {
	_, err := NopLocator{}.Locate(context.Background())
	if !errors.Is(err, ErrNoLocator) {
		t.Errorf("got %v, want ErrNoLocator", err)
	}
}

func TestCommandLocatorEmptyCommand(t *testing.T) {
	l := &CommandLocator{}
	_, err := l.Locate(context.Background())
	if !errors.Is(err, ErrNoLocator) {
		t.Errorf("got %v, want ErrNoLocator", err)
	}
}

func TestCommandLocatorParsesFix(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on echo")
	}
	l := &CommandLocator{Command: `echo {"latitude":51.5,"longitude":-0.12,"accuracy":65}`}
	fix, err := l.Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if fix.Latitude != 51.5 || fix.Longitude != -0.12 || fix.Accuracy != 65 {
		t.Errorf("fix: got %+v", fix)
	}
}

func TestCommandLocatorRejectsEmptyFix(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on echo")
	}
	l := &CommandLocator{Command: `echo {"latitude":0,"longitude":0}`}
	if _, err := l.Locate(context.Background()); err == nil {
		t.Error("expected an error for a zero fix")
	}
}

func TestCommandLocatorBadOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on echo")
	}
	l := &CommandLocator{Command: "echo not-json"}
	if _, err := l.Locate(context.Background()); err == nil {
		t.Error("expected a parse error")
	}
}
