// media_loader.go - cartridge/system ROM and Art Studio NVRAM loading

package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// loadRomWords reads a ROM image and unpacks it into the word slice
// the console expects, little-endian, zero-padding any remainder if
// the file is shorter than wantWords.
func loadRomWords(path string, wantWords int) ([]uint16, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("media_loader: read %s: %w", path, err)
	}
	words := make([]uint16, wantWords)
	n := len(data) / 2
	if n > wantWords {
		n = wantWords
	}
	for i := 0; i < n; i++ {
		words[i] = uint16(data[2*i]) | uint16(data[2*i+1])<<8
	}
	return words, nil
}

// nvramFile wraps an Art Studio save file with an advisory exclusive
// lock for the process's lifetime, so two instances of the emulator
// can't both flush conflicting NVRAM contents to the same path.
type nvramFile struct {
	f    *os.File
	path string
}

// openNvram opens (creating if absent) the save file at path and
// takes a non-blocking exclusive flock on it. Returns the words read
// from it (zero-filled to artNvramWords if shorter or newly created).
func openNvram(path string) (*nvramFile, []uint16, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("media_loader: open nvram %s: %w", path, err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("media_loader: nvram %s is locked by another instance: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("media_loader: read nvram %s: %w", path, err)
	}
	words := make([]uint16, artNvramWords)
	n := len(data) / 2
	if n > artNvramWords {
		n = artNvramWords
	}
	for i := 0; i < n; i++ {
		words[i] = uint16(data[2*i]) | uint16(data[2*i+1])<<8
	}
	return &nvramFile{f: f, path: path}, words, nil
}

// Flush writes the current NVRAM contents back to disk.
func (nf *nvramFile) Flush(words []uint16) error {
	data := make([]byte, len(words)*2)
	for i, w := range words {
		data[2*i] = byte(w)
		data[2*i+1] = byte(w >> 8)
	}
	if _, err := nf.f.WriteAt(data, 0); err != nil {
		return fmt.Errorf("media_loader: write nvram %s: %w", nf.path, err)
	}
	return nf.f.Sync()
}

// Close releases the flock and closes the file.
func (nf *nvramFile) Close() error {
	unix.Flock(int(nf.f.Fd()), unix.LOCK_UN)
	return nf.f.Close()
}
