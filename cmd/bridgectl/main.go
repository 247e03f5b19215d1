package main

// main is the entry point for the bridgectl CLI.
func main() {
	Execute()
}
