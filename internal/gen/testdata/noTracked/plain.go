package plain

type Plain struct {
	X int
}
