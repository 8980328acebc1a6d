package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/SwiftGuides/HexColorCode-Extension/hexcolor"
)

// CreatePack reads .hxpl files and writes a .hxpack to outputFile.
// Entries keep the input order and are named after the file base name.
func CreatePack(inputFiles []string, outputFile string, comp hexcolor.PackCompression) error {
	if len(inputFiles) == 0 {
		return fmt.Errorf("no .hxpl files provided")
	}
	type item struct {
		entry hexcolor.PackEntry
		err   error
	}
	items := make([]item, len(inputFiles))

	var wg sync.WaitGroup
	for i := range inputFiles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := inputFiles[i]
			b, err := os.ReadFile(path)
			if err != nil {
				items[i].err = err
				return
			}
			e, err := hexcolor.EntryFromFile(filepath.Base(path), b)
			if err != nil {
				items[i].err = fmt.Errorf("%s: %w", path, err)
				return
			}
			items[i].entry = e
		}(i)
	}
	wg.Wait()

	pack := &hexcolor.Pack{Entries: make([]hexcolor.PackEntry, len(items))}
	seen := make(map[string]bool, len(items))
	for i, it := range items {
		if it.err != nil {
			return it.err
		}
		if seen[it.entry.Name] {
			return fmt.Errorf("duplicate entry name %q (%s)", it.entry.Name, inputFiles[i])
		}
		seen[it.entry.Name] = true
		pack.Entries[i] = it.entry
	}
	start := time.Now()
	data, err := pack.Marshal(comp)
	if err != nil {
		return err
	}
	logger.WithField("compression", comp).Infof("packed %d palettes in %d ms", len(pack.Entries), time.Since(start).Milliseconds())
	return os.WriteFile(outputFile, data, 0o644)
}

// UnpackToDir writes the .hxpl files of a .hxpack into outputDir.
func UnpackToDir(packFile, outputDir string) error {
	data, err := os.ReadFile(packFile)
	if err != nil {
		return err
	}
	pack, _, err := hexcolor.UnmarshalPack(data)
	if err != nil {
		return err
	}
	names := make([]string, len(pack.Entries))
	seen := make(map[string]bool, len(pack.Entries))
	for i, e := range pack.Entries {
		name := filepath.Base(e.Name)
		if name == "." || name == ".." || name == string(filepath.Separator) {
			return fmt.Errorf("invalid entry name %q", e.Name)
		}
		if seen[name] {
			return fmt.Errorf("duplicate entry name %q", e.Name)
		}
		seen[name] = true
		names[i] = name
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	var wg sync.WaitGroup
	errCh := make(chan error, len(pack.Entries))
	for i, e := range pack.Entries {
		wg.Add(1)
		go func(name string, e hexcolor.PackEntry) {
			defer wg.Done()
			if err := os.WriteFile(filepath.Join(outputDir, name), e.File(), 0o644); err != nil {
				errCh <- err
			}
		}(names[i], e)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}
