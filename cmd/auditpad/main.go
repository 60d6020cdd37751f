// auditpad — single-operator checklist audits with local storage and
// JSON exchange between devices.
package main

import "github.com/storeops/auditpad/internal/cli"

func main() {
	cli.Execute()
}
