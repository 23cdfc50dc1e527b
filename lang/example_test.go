package lang_test

import (
	"context"
	"fmt"
	"os"

	"github.com/ardnew/elconf/lang"
)

func Example() {
	doc, err := lang.Parse(context.Background(), `
network "lan" {
    bridge.name = br0
    ip { address = 10.20.30.1 }
}`, lang.WithIDMapper(lang.MapIDToElem("name")))
	if err != nil {
		fmt.Println(err)

		return
	}

	if err := doc.Format(os.Stdout); err != nil {
		fmt.Println(err)
	}

	// Output:
	// network {
	//     name lan;
	//     bridge {
	//         name = br0
	//     }
	//     ip {
	//         address = 10.20.30.1
	//     }
	// }
}

func ExampleNode_FindAll() {
	root, err := lang.ParseNode(context.Background(), `
group "g1" { vm alpha; vm beta; }
group "g2" { vm gamma; }
`, lang.WithIDMapper(lang.MapIDToElem("name")))
	if err != nil {
		fmt.Println(err)

		return
	}

	vms, err := root.FindAll(`./group[name="g1"]/vm`)
	if err != nil {
		fmt.Println(err)

		return
	}

	for _, vm := range vms {
		fmt.Println(vm.Text)
	}

	// Output:
	// alpha
	// beta
}

func ExampleMerge() {
	base, _ := lang.ParseNode(context.Background(),
		`vm { cpu = 1; mem = 512 }`, lang.WithSingleRoot(true))
	change, _ := lang.ParseNode(context.Background(),
		`vm { mem = 2048; disk x; }`, lang.WithSingleRoot(true))

	lang.Merge(change, base)

	fmt.Print(base)

	// Output:
	// vm {
	//     cpu = 1
	//     mem = 2048
	//     disk x;
	// }
}

func ExampleToStruct() {
	root, _ := lang.ParseNode(context.Background(),
		`vm { name = a }`, lang.WithSingleRoot(true))

	fmt.Println(lang.ToStruct(root))

	// Output:
	// map[vm:[map[name:a]]]
}

func ExampleParse_error() {
	_, err := lang.Parse(context.Background(), "vm {\n  name = \n}",
		lang.WithFilename("vm.conf"))

	fmt.Println(err)

	// Output:
	// vm.conf:3:1: syntax error: unexpected "}", expected value
}
