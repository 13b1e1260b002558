package data

import "strings"

// toPointers converts a collected row slice into the pointer slice the
// service layer works with.
func toPointers[T any](in []T) []*T {
	out := make([]*T, len(in))
	for i := range in {
		out[i] = &in[i]
	}
	return out
}

// prefixedUserColumns qualifies userColumns with a table alias for
// joined queries.
func prefixedUserColumns(alias string) string {
	cols := strings.Split(userColumns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}
