package main

import (
	"fmt"
	"os"

	"github.com/PauloHFS/bizbloom/internal/cmd"
)

func main() {
	if len(os.Args) < 2 {
		cmd.RunServer()
		return
	}

	switch os.Args[1] {
	case "server":
		cmd.RunServer()
	case "build-index":
		cmd.RunBuildIndex(os.Args[2:])
	case "help", "-h", "--help":
		showHelp()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		showHelp()
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("BizBloom matcher - Single Binary Console")
	fmt.Println("Usage: ./bizbloom [command] [args]")
	fmt.Println("\nAvailable commands:")
	fmt.Println("  server       Start the matching API (default)")
	fmt.Println("  build-index  Build the competitor corpus (args: -out <dir> -inputs <a.csv,b.csv>)")
	fmt.Println("  help         Show this help message")
}
