package cleaner

import "fmt"

// Error reports which stage of cleaning a file failed.
type Error struct {
	// Op is the failed stage: "read", "parse", "encode", "verify" or "write".
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
