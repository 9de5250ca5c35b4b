package main

import "github.com/datastax/table-data-apis/cmd"

func main() {
	cmd.Execute()
}
