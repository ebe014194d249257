// Command codefence views documents with decorated, foldable code fences and
// inspects how fences are parsed and scanned.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
