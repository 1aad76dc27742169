// Command flowconv is a CLI for the FlowLang/FlowXML toolkit: lexing,
// parsing, running, formatting, and diagramming flowchart programs.
package main

import "github.com/flowconv/flowconv/cmd/flowconv/cmd"

func main() {
	cmd.Execute()
}
