// Command xframes-hello shows "Hello, world" in an xframes window and logs
// every event the renderer reports until Enter is pressed or the process is
// interrupted.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
