package output

import (
	"context"
	"fmt"
	"os"
)

// WriteFile renders report into path. The file is created if missing; it is
// truncated unless appendMode is set, in which case the report is added after
// the existing content.
func WriteFile(ctx context.Context, path string, appendMode bool, f Formatter, report *Report) (err error) {
	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(path, flags, 0644) // #nosec G304 -- user-provided output path is expected
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	if err := f.Format(ctx, report, file); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
