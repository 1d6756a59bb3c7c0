// Package main provides the Lattice CLI.
package main

import (
	"fmt"
	"os"

	"github.com/lattice-ml/lattice/device"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Lattice %s\n", version)
			return
		case "devices":
			listDevices()
			return
		}
	}

	fmt.Println("Lattice - GPU Sparse Containers for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  devices    List available GPU adapters")
}

func listDevices() {
	adapters, err := device.ListAdapters()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(adapters) == 0 {
		fmt.Println("No GPU adapters found")
		return
	}
	for i, info := range adapters {
		fmt.Printf("[%d] %s (%s)\n", i, info.Device, info.Vendor)
	}
}
