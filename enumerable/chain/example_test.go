package chain_test

import (
	"fmt"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable/chain"
)

func ExampleGroup() {
	groups, _ := chain.Group(chain.FromSlice([]int{1, 2, 3, 4, 5}), func(item int, _ any) bool {
		return item%2 == 0
	}).ToObject()

	fmt.Println(groups[false], groups[true])
	// Output: [1 3 5] [2 4]
}

func ExampleChain_Sort() {
	sorted := chain.FromSlice([]int{2, 4, 3, 1, 5}).Sort(nil)

	_ = sorted.Each(func(item int, index any) {
		fmt.Print(item, "@", index, " ")
	})
	fmt.Println()
	// Output: 1@3 2@0 3@2 4@1 5@4
}
