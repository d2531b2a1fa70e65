// Package chain provides lazy, composable, order-preserving operators over enumerable sources.
//
// A Chain is a singly-linked list of operator nodes rooted at a source. Building a chain performs no
// work at all; every node only holds its predecessor and its parameters. Work happens when a terminal
// operation (Each, ToArray, ToObject, Reduce, FirstValue, ...) pulls from the last node's enumerator,
// which in turn pulls from its predecessor.
//
// Type-preserving operators are methods, operators changing the element type are package functions
// because Go methods cannot declare type parameters:
//
//	adults, err := chain.Map(
//		chain.FromSlice(people).
//			Filter(func(p Person, _ any) bool { return p.Age >= 18 }).
//			Sort(func(a, b Person) int { return cmp.Compare(a.Name, b.Name) }),
//		func(p Person, _ any) string { return p.Name },
//	).ToArray()
//
// The operator constructors are looked up in a factory table owned by the chain root
// (see Factories and FromWithFactories), so custom operators can be plugged in per chain.
package chain
