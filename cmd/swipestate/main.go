// Command swipestate inspects and edits the local draft and interaction
// state the same way the client does.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
