// Package main provides the tcconsole binary: the game's command console
// driven from a terminal or a pipe.
package main

func main() {
	Execute()
}
