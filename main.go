// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/widgetkit/cmd/widgetkit"

func main() {
	cmd.Execute()
}
