//go:build !linux

package detect

func totalMemoryGB() (float64, bool) {
	return 0, false
}
