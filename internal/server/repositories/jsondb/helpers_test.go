package jsondb

import "strconv"

// counterNext reads a decimal counter kept in the "counter" user's email
// and returns the incremented value.
func (d *Document) counterNext() string {
	n := 0
	if u, ok := d.Users["counter"]; ok {
		n, _ = strconv.Atoi(u.Email)
	}
	return strconv.Itoa(n + 1)
}
