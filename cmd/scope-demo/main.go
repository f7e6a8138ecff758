// Command scope-demo runs a small suite that exercises every kind of test,
// including ones that fail on purpose.
package main

import "scope/pkg/scope"

func main() {
	scope.Main()
}
