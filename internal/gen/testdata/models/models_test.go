package models

import "github.com/reoring/partial"

type Ignored struct {
	partial.Partial[Ignored]
	Z int
}
