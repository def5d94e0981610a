//go:build !cgo

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "viewer: built without cgo; OpenGL and GLFW need cgo")
	os.Exit(1)
}
