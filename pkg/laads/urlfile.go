package laads

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// WriteURLFile writes urls to path, one per line. Unless overwrite is set,
// an existing file at path is left untouched and ErrOutputExists is
// returned. An empty url list is reported as ErrNoURLs rather than
// producing an empty file.
func WriteURLFile(path string, urls []string, overwrite bool) error {
	if len(urls) == 0 {
		return ErrNoURLs
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrOutputExists, path)
		}
		return err
	}

	w := bufio.NewWriter(f)
	for _, u := range urls {
		if _, err := fmt.Fprintln(w, u); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
