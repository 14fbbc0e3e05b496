package lang_test

import (
	"fmt"

	"github.com/ardnew/pagebind/lang"
)

func Example_resolve() {
	model := lang.Mapping(
		lang.Entry{Key: "MVPInstance", Value: lang.Mapping(
			lang.Entry{Key: "name", Value: lang.Scalar("SKA Mid")},
		)},
	)

	fmt.Println(lang.Resolve(model, "MVPInstance.name"))
	fmt.Printf("%q\n", lang.Resolve(model, "MVPInstance.missing").String())
	// Output:
	// SKA Mid
	// ""
}

func Example_placeholders() {
	for token := range lang.Placeholders("a {x.y} b {z}") {
		fmt.Println(token)
	}
	// Output:
	// x.y
	// z
}
