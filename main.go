// Copyright © 2024 The lispread authors

package main

import "github.com/luthersystems/lispread/cmd"

func main() {
	cmd.Execute()
}
