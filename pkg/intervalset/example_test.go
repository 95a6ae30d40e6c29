package intervalset_test

import (
	"fmt"

	"github.com/henderiw/rangeset/pkg/intervalset"
)

func Example() {
	busy := intervalset.NewOrdered[int]()
	busy.Add(10, 20)
	busy.Add(30, 40)
	busy.Add(20, 25)

	fmt.Println(busy.Items())

	slot := intervalset.SearchForSpace(busy, 15, 10, func(v, size int) int { return v + size })
	fmt.Println(slot)
	// Output:
	// [[10, 25] [30, 40]]
	// [40, 50]
}
