package main

var version = "dev"

func main() {
	SetVersion(version)
	Execute()
}
