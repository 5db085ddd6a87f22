//go:build !race

package inventory

func passwordHashCost() int {
	return 14
}
