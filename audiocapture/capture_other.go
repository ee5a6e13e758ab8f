//go:build !darwin

package audiocapture

// newEngine returns ErrUnsupported on non-macOS platforms.
func newEngine() (engine, error) {
	return nil, ErrUnsupported
}
