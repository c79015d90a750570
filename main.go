// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/jmodpath/jmodpath/cmd/jmodpath"

func main() {
	cmd.Execute()
}
