package models

import (
	"time"

	p "github.com/reoring/partial"
)

type Meta struct {
	Version int
}

type User struct {
	p.Partial[User]
	Meta
	Name        string `json:"name"`
	Age         int
	BankBalance float64   `partial:"name=balance"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Skipped     string    `json:"-"`
	A, B        *int
	internal    string
}

type Plain struct {
	X int
}

type Borrowed struct {
	p.Partial[User]
	Y int
}

type Empty struct {
	p.Partial[Empty]
}
