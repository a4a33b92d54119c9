// Package cli implements the interactive TaskFlow command-line client.
//
// The REPL accepts:
//
//	register | login | logout | me
//	list (l)
//	add <title>
//	done <id|#> | undone <id|#>
//	rename <id|#> <title>
//	delete <id|#>
//	help | exit | quit
//
// Task arguments accept either a task id or the 1-based position shown by
// the last "list".
package cli
