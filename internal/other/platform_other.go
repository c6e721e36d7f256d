//go:build !linux

package other

func kernelRelease() string { return "" }
