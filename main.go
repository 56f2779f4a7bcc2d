package main

import "github.com/PradipLalpura/RexOS/cmd/rexos"

func main() {
	rexos.Execute()
}
