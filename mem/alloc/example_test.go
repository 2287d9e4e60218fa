package alloc_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joshuapare/memkit/mem/alloc"
)

func show(flags []bool) string {
	var sb strings.Builder
	for _, f := range flags {
		if f {
			sb.WriteString("[X]")
		} else {
			sb.WriteString("[-]")
		}
	}
	return sb.String()
}

func Example() {
	fa, err := alloc.NewFirstFit(10, nil)
	if err != nil {
		panic(err)
	}
	defer fa.Close()

	a, _ := fa.Alloc(4)
	b, _ := fa.Alloc(3)
	fmt.Println(a-fa.Base(), b-fa.Base(), show(fa.Status()))

	_ = fa.Free(a, 4)
	fmt.Println(show(fa.Status()))

	// No free run of 5 exists; the allocator compacts and retries.
	c, _ := fa.Alloc(5)
	fmt.Println(c-fa.Base(), show(fa.Status()))

	_, err = fa.Alloc(3)
	fmt.Println(errors.Is(err, alloc.ErrOutOfMemory))

	// Output:
	// 0x0 0x4 [X][X][X][X][X][X][X][-][-][-]
	// [-][-][-][-][X][X][X][-][-][-]
	// 0x3 [X][X][X][X][X][X][X][X][-][-]
	// true
}

func ExampleOptions_trackSizes() {
	fa, err := alloc.NewFirstFit(8, &alloc.Options{TrackSizes: true})
	if err != nil {
		panic(err)
	}
	defer fa.Close()

	a, _ := fa.Alloc(4)
	fmt.Println(fa.Free(a, 2) != nil)
	fmt.Println(fa.Free(a, 4))
	fmt.Println(errors.Is(fa.Free(a, 4), alloc.ErrBadFree))

	// Output:
	// true
	// <nil>
	// true
}
