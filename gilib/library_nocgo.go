//go:build !cgo

package gilib

func defaultLoader() Loader {
	return NullLoader{}
}
