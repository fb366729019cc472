// Command catalogctl is a thin administrative inspector over a catalog
// store: it opens the store, drives migrations, and dumps or edits
// repository rows. It does not implement SQL planning, networked access,
// or replication.
package main

func main() {
	Execute()
}
