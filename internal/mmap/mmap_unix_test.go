//go:build unix

package mmap

import (
	"testing"
)

func TestAnonZeroedAndWritable(t *testing.T) {
	data, release, err := Anon(4096)
	if err != nil {
		t.Fatalf("Anon: %v", err)
	}
	defer func() {
		if releaseErr := release(); releaseErr != nil {
			t.Fatalf("release: %v", releaseErr)
		}
	}()
	if len(data) != 4096 {
		t.Fatalf("len mismatch: got %d want %d", len(data), 4096)
	}
	for i, b := range data {
		if b != 0 {
			t.Fatalf("byte %d not zeroed: 0x%x", i, b)
		}
	}
	data[0] = 0xde
	data[4095] = 0xef
	if data[0] != 0xde || data[4095] != 0xef {
		t.Fatalf("mapping not writable")
	}
}

func TestAnonReleaseTwice(t *testing.T) {
	_, release, err := Anon(16)
	if err != nil {
		t.Fatalf("Anon: %v", err)
	}
	if err := release(); err != nil {
		t.Fatalf("first release: %v", err)
	}
	if err := release(); err != nil {
		t.Fatalf("second release: %v", err)
	}
}

func TestAnonInvalidSize(t *testing.T) {
	if _, _, err := Anon(0); err == nil {
		t.Fatalf("expected error for zero size")
	}
	if _, _, err := Anon(-1); err == nil {
		t.Fatalf("expected error for negative size")
	}
}
