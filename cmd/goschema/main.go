package main

import "github.com/dbsmedya/goschema/cmd/goschema/cmd"

func main() {
	cmd.Execute()
}
