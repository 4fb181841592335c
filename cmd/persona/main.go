/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/Judith-olmand/persona/cmd/persona/cmd"
)

func main() {
	cmd.Execute()
}
